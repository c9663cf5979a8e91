package engine

import (
	"os"
	"strings"

	"github.com/bianoble/scriptpm/internal/sandbox"
	"github.com/bianoble/scriptpm/internal/script"
)

// Script states reported by StatusEngine.
const (
	StateCurrent  = "current"
	StateOutdated = "outdated"
	StateOrphaned = "orphaned"
	StateMissing  = "missing"
	StateModified = "modified"
)

// StatusEngine computes the state of every installed script.
type StatusEngine struct {
	ScriptDir string
}

// Status reports on each installed record. A nil catalog skips the catalog
// comparison; file checks always run.
func (e *StatusEngine) Status(catalog, installed []script.Record) []ScriptStatus {
	statuses := make([]ScriptStatus, 0, len(installed))

	for _, rec := range installed {
		s := ScriptStatus{Record: rec}

		match, inCatalog := script.Find(catalog, rec.ID)
		if inCatalog {
			s.Available = match.Version
		}

		switch fileState := e.fileState(rec); {
		case fileState != "":
			s.State = fileState
		case catalog == nil:
			s.State = StateCurrent
		case !inCatalog:
			s.State = StateOrphaned
		case !match.SameVersion(rec):
			s.State = StateOutdated
		default:
			s.State = StateCurrent
		}

		statuses = append(statuses, s)
	}

	return statuses
}

// fileState returns "missing" or "modified" when the file on disk does not
// match rec, and "" when it does.
func (e *StatusEngine) fileState(rec script.Record) string {
	path, err := sandbox.ScriptPath(e.ScriptDir, rec.Name)
	if err != nil {
		return StateMissing
	}
	if _, err := os.Stat(path); err != nil {
		return StateMissing
	}
	if rec.Hash == "" {
		return ""
	}
	actual, err := script.HashFile(path)
	if err != nil {
		return StateMissing
	}
	if !strings.EqualFold(actual, rec.Hash) {
		return StateModified
	}
	return ""
}
