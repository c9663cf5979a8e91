package state

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bianoble/scriptpm/internal/script"
)

func TestReadMissingFile(t *testing.T) {
	records, err := Read(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestReadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("{{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Read(path)
	var ferr *script.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
	if !strings.Contains(err.Error(), "state file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	records, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0", len(records))
	}
}

func TestStoreLoadCorruptDegradesToEmpty(t *testing.T) {
	home := t.TempDir()
	if err := os.WriteFile(PathIn(home), []byte(`[{"id": "a", "name": `), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	s := NewStore(home, log.New(&buf))

	records := s.Load()
	if records == nil || len(records) != 0 {
		t.Errorf("records = %v, want empty non-nil", records)
	}
	if !strings.Contains(buf.String(), "ignoring unreadable state file") {
		t.Errorf("expected warning in log, got %q", buf.String())
	}
}

func TestStoreLoadWrongShape(t *testing.T) {
	home := t.TempDir()
	if err := os.WriteFile(PathIn(home), []byte(`{"id": "a"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(home, nil)
	if records := s.Load(); len(records) != 0 {
		t.Errorf("records = %v, want empty", records)
	}
}

func TestStoreLoadCollapsesDuplicates(t *testing.T) {
	home := t.TempDir()
	data := `[
    {"id": "a", "name": "foo.sh", "version": "1.0.0", "hash": "h1"},
    {"id": "b", "name": "bar.sh", "version": "1.0.0", "hash": "h2"},
    {"id": "a", "name": "foo.sh", "version": "2.0.0", "hash": "h3"}
]`
	if err := os.WriteFile(PathIn(home), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	records := NewStore(home, nil).Load()
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[1].ID != "a" || records[1].Version != "2.0.0" {
		t.Errorf("last entry should win, got %+v", records[1])
	}
}

func TestSaveAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	original := []script.Record{
		{ID: "a", Name: "foo.sh", Version: "1.0.0", Hash: "abc"},
		{ID: "b", Name: "bar.py", Version: "0.3", Hash: "def"},
	}

	if err := Save(path, original); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read after Save: %v", err)
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("loaded = %+v, want %+v", loaded, original)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp file should not remain, found %d entries", len(entries))
	}
}

func TestSaveNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Save(path, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("content = %q, want []", string(data))
	}
}

func TestSaveUsesFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Save(path, []script.Record{{ID: "a", Name: "foo.sh", Version: "1", Hash: "h"}}); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	for _, key := range []string{`"id"`, `"name"`, `"version"`, `"hash"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("state file missing key %s: %s", key, data)
		}
	}
}

func TestSaveMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", FileName)
	if err := Save(path, nil); err == nil {
		t.Fatal("expected error writing into missing directory")
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	home := t.TempDir()
	s := NewStore(home, nil)

	if err := s.Save([]script.Record{{ID: "a", Name: "first.sh", Version: "1"}}); err != nil {
		t.Fatal(err)
	}
	if err := s.Save([]script.Record{{ID: "b", Name: "second.sh", Version: "1"}}); err != nil {
		t.Fatal(err)
	}

	records := s.Load()
	if len(records) != 1 || records[0].Name != "second.sh" {
		t.Errorf("records = %+v", records)
	}
}
