package script

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
)

// DefaultVersion is assigned to newly registered scripts.
const DefaultVersion = "1.0.0"

// Register builds a catalog record for a local file: a fresh random id,
// the file's base name and its sha256 digest.
func Register(file, version string) (Record, error) {
	if version == "" {
		version = DefaultVersion
	}

	hash, err := HashFile(file)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:      uuid.NewString(),
		Name:    path.Base(strings.ReplaceAll(file, "\\", "/")),
		Version: version,
		Hash:    hash,
	}, nil
}

// HashFile returns the hex sha256 digest of the file at path.
func HashFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", file, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", file, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashBytes returns the hex sha256 digest of data.
func HashBytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
