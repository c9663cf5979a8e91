package engine

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/bianoble/scriptpm/internal/script"
)

// Downloader writes the content at url to dest and returns its hex sha256.
// A non-empty expectedHash must be enforced: on mismatch dest is removed and
// a *script.IntegrityError returned.
type Downloader interface {
	Fetch(ctx context.Context, url, dest, expectedHash string) (string, error)
}

// RecordChange pairs an installed record with its catalog counterpart.
type RecordChange struct {
	Before script.Record
	After  script.Record
}

// RecordFailure is an update that was rolled back.
type RecordFailure struct {
	Before script.Record
	After  script.Record
	Err    error
}

func (f RecordFailure) Error() string {
	return f.Before.Name + " " + f.Before.Version + " -> " + f.After.Version + ": " + f.Err.Error()
}

func (f RecordFailure) Unwrap() error {
	return f.Err
}

// UpdateResult holds the outcome of a reconcile run.
type UpdateResult struct {
	Updated  []RecordChange
	Failed   []RecordFailure
	Pending  []RecordChange // dry-run only
	Current  []script.Record
	Orphaned []script.Record // installed but absent from the catalog
	Skipped  []script.Record // filtered out by UpdateOptions.Only

	// Installed is the resulting installed state, to be persisted once.
	Installed []script.Record
}

// InstallResult holds the outcome of an install.
type InstallResult struct {
	Record    script.Record
	Previous  *script.Record // set when the id was already installed
	Installed []script.Record
}

// ScriptStatus describes one installed script.
type ScriptStatus struct {
	Record    script.Record
	Available string // catalog version, empty when unknown
	State     string // "current", "outdated", "orphaned", "missing", "modified"
}

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return log.New(io.Discard)
	}
	return l
}
