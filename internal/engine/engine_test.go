package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianoble/scriptpm/internal/sandbox"
	"github.com/bianoble/scriptpm/internal/script"
)

// mockDownloader serves predefined content by URL and enforces the expected
// hash the way source.ContentFetcher does.
type mockDownloader struct {
	content map[string][]byte // url -> body
	errs    map[string]error  // url -> transport failure
	partial bool              // leave a partial file behind on failure
	calls   []string
}

func (m *mockDownloader) Fetch(ctx context.Context, url, dest, expectedHash string) (string, error) {
	m.calls = append(m.calls, url)

	if err, ok := m.errs[url]; ok {
		if m.partial {
			_ = os.WriteFile(dest, []byte("partial"), 0644)
		}
		return "", err
	}

	body, ok := m.content[url]
	if !ok {
		return "", &script.TransportError{URL: url, Status: 404}
	}
	if err := os.WriteFile(dest, body, 0755); err != nil {
		return "", err
	}

	digest := script.HashBytes(body)
	if expectedHash != "" && !strings.EqualFold(digest, expectedHash) {
		_ = os.Remove(dest)
		return "", &script.IntegrityError{Path: dest, Expected: expectedHash, Actual: digest}
	}
	return digest, nil
}

func testURL(name string) string {
	return "https://catalog.test/library/scripts/" + name
}

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0755); err != nil {
		t.Fatal(err)
	}
}

func readScript(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

// assertNoLeftovers fails if rollback or temp files remain in dir.
func assertNoLeftovers(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if sandbox.IsBackup(e.Name()) {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func rec(id, name, version, content string) script.Record {
	return script.Record{ID: id, Name: name, Version: version, Hash: script.HashBytes([]byte(content))}
}

func errNetwork(url string) error {
	return &script.TransportError{URL: url, Err: fmt.Errorf("connection refused")}
}

func readFileErr(dir, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(dir, name))
}
