package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bianoble/scriptpm/internal/script"
)

// ScriptPerm is the mode of downloaded script files.
const ScriptPerm os.FileMode = 0755

// errTooLarge marks a body that exceeded MaxSize.
var errTooLarge = errors.New("file exceeds max size")

// ContentFetcher streams a script file to disk, hashing exactly the bytes
// written.
type ContentFetcher struct {
	Transport
}

// Fetch downloads url into dest and returns the hex sha256 of the written
// bytes. When expectedHash is non-empty and differs, dest is removed and a
// *script.IntegrityError is returned. Transport failures never leave dest
// behind.
func (f *ContentFetcher) Fetch(ctx context.Context, url, dest, expectedHash string) (string, error) {
	resp, cancel, err := f.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer cancel()
	defer resp.Body.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, ScriptPerm)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}

	digest, err := f.copy(out, resp.Body)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing %s: %w", dest, closeErr)
	}
	if err != nil {
		_ = os.Remove(dest)
		return "", &script.TransportError{URL: url, Err: err}
	}

	if expectedHash != "" && !strings.EqualFold(digest, expectedHash) {
		_ = os.Remove(dest)
		return "", &script.IntegrityError{Path: dest, Expected: strings.ToLower(expectedHash), Actual: digest}
	}

	return digest, nil
}

func (f *ContentFetcher) copy(dst io.Writer, body io.Reader) (string, error) {
	h := sha256.New()
	w := io.MultiWriter(dst, h)

	if f.MaxSize <= 0 {
		if _, err := io.Copy(w, body); err != nil {
			return "", err
		}
		return hex.EncodeToString(h.Sum(nil)), nil
	}

	n, err := io.Copy(w, io.LimitReader(body, f.MaxSize+1))
	if err != nil {
		return "", err
	}
	if n > f.MaxSize {
		return "", fmt.Errorf("%w of %d bytes", errTooLarge, f.MaxSize)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
