// Package state persists the list of installed scripts.
package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bianoble/scriptpm/internal/sandbox"
	"github.com/bianoble/scriptpm/internal/script"
)

// FileName is the installed-state file kept in the home directory.
const FileName = "installed-script.json"

// PathIn returns the installed-state file path for a home directory.
func PathIn(home string) string {
	return filepath.Join(home, FileName)
}

// Read strictly decodes the installed-state file. A missing file yields an
// empty list; an unparsable one yields a *script.FormatError.
func Read(path string) ([]script.Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []script.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state file %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []script.Record{}, nil
	}

	var records []script.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &script.FormatError{Source: "state file " + path, Err: err}
	}
	if records == nil {
		records = []script.Record{}
	}
	return records, nil
}

// Save writes the full list atomically.
func Save(path string, records []script.Record) error {
	if records == nil {
		records = []script.Record{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	data = append(data, '\n')

	if err := sandbox.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("saving state file %s: %w", path, err)
	}
	return nil
}

// Store loads and saves the installed-state file at Path, degrading to an
// empty list when the file is missing or unreadable.
type Store struct {
	Path   string
	Logger *log.Logger
}

// NewStore returns a Store for the state file inside home.
func NewStore(home string, logger *log.Logger) *Store {
	return &Store{Path: PathIn(home), Logger: logger}
}

// Load never fails. Corruption is logged and treated as nothing installed;
// duplicate ids are collapsed, keeping the last entry.
func (s *Store) Load() []script.Record {
	records, err := Read(s.Path)
	if err != nil {
		s.logger().Warn("ignoring unreadable state file", "path", s.Path, "err", err)
		return []script.Record{}
	}

	normal := Normalize(records)
	if len(normal) != len(records) {
		s.logger().Warn("collapsed duplicate state entries", "path", s.Path, "before", len(records), "after", len(normal))
	}
	return normal
}

// Save persists records to the store's path.
func (s *Store) Save(records []script.Record) error {
	if err := Save(s.Path, records); err != nil {
		return err
	}
	s.logger().Debug("saved state", "path", s.Path, "scripts", len(records))
	return nil
}

func (s *Store) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}
