package engine

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bianoble/scriptpm/internal/sandbox"
	"github.com/bianoble/scriptpm/internal/script"
	"github.com/bianoble/scriptpm/internal/state"
)

// UpdateEngine brings installed scripts up to the catalog version, one at a
// time, rolling a script back when its replacement cannot be downloaded.
type UpdateEngine struct {
	Downloader Downloader
	ScriptURL  func(name string) string
	ScriptDir  string
	VerifyHash bool
	Logger     *log.Logger
}

// UpdateOptions configures an update operation.
type UpdateOptions struct {
	DryRun bool
	Only   []string // ids or names; empty = all installed scripts
}

// Update reconciles installed against catalog. It does not persist anything;
// result.Installed is the state to save.
func (e *UpdateEngine) Update(ctx context.Context, catalog, installed []script.Record, opts UpdateOptions) (*UpdateResult, error) {
	if e.Downloader == nil || e.ScriptURL == nil {
		return nil, errors.New("update engine is missing a downloader")
	}

	logger := orDiscard(e.Logger)
	result := &UpdateResult{}
	selected := selector(opts.Only)

	working := make([]script.Record, len(installed))
	copy(working, installed)

	for _, old := range installed {
		if !selected(old) {
			result.Skipped = append(result.Skipped, old)
			continue
		}

		match, ok := script.Find(catalog, old.ID)
		if !ok {
			logger.Debug("not in catalog, leaving as is", "script", old.Name, "id", old.ID)
			result.Orphaned = append(result.Orphaned, old)
			continue
		}

		if match.SameVersion(old) {
			if match.Hash != old.Hash {
				logger.Debug("catalog hash differs at same version, ignoring", "script", old.Name, "version", old.Version)
			}
			result.Current = append(result.Current, old)
			continue
		}

		change := RecordChange{Before: old, After: match}
		if opts.DryRun {
			result.Pending = append(result.Pending, change)
			continue
		}

		var err error
		working, err = e.replace(ctx, logger, working, old, match)
		if err != nil {
			logger.Warn("update failed, kept previous version",
				"script", old.Name, "from", old.Version, "to", match.Version, "err", err)
			result.Failed = append(result.Failed, RecordFailure{Before: old, After: match, Err: err})
			continue
		}

		logger.Info("updated", "script", match.Name, "from", old.Version, "to", match.Version)
		result.Updated = append(result.Updated, change)
	}

	result.Installed = working
	return result, nil
}

// replace performs the guarded replace of old by match. On failure the
// returned state still holds old, at its original position, and old's file
// is back in place.
func (e *UpdateEngine) replace(ctx context.Context, logger *log.Logger, working []script.Record, old, match script.Record) ([]script.Record, error) {
	dest, err := sandbox.ScriptPath(e.ScriptDir, match.Name)
	if err != nil {
		return working, &script.FormatError{Source: "catalog entry " + match.ID, Err: err}
	}
	oldPath, err := sandbox.ScriptPath(e.ScriptDir, old.Name)
	if err != nil {
		return working, fmt.Errorf("locating installed file: %w", err)
	}

	if dest != oldPath {
		if _, err := os.Lstat(dest); err == nil {
			return working, fmt.Errorf("renamed script target %s already exists", match.Name)
		}
	}

	// Rollback point.
	backup := sandbox.BackupPath(e.ScriptDir)
	hasBackup := true
	if err := os.Rename(oldPath, backup); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return working, fmt.Errorf("moving %s aside: %w", old.Name, err)
		}
		hasBackup = false
		logger.Warn("installed file is missing, updating without rollback point", "script", old.Name)
	}

	pos := script.Index(working, old.ID)
	next := state.Remove(working, old.ID)

	expected := ""
	if e.VerifyHash {
		expected = match.Hash
	}

	if _, err := e.Downloader.Fetch(ctx, e.ScriptURL(match.Name), dest, expected); err != nil {
		e.rollback(logger, dest, oldPath, backup, hasBackup)
		return state.InsertAt(next, pos, old), err
	}

	if hasBackup {
		if err := os.Remove(backup); err != nil {
			logger.Warn("could not remove rollback copy", "path", backup, "err", err)
		}
	}

	return state.Upsert(next, match), nil
}

func (e *UpdateEngine) rollback(logger *log.Logger, dest, oldPath, backup string, hasBackup bool) {
	if err := os.Remove(dest); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not remove partial download", "path", dest, "err", err)
	}
	if !hasBackup {
		return
	}
	if err := os.Rename(backup, oldPath); err != nil {
		logger.Error("rollback failed, previous version left at backup path", "backup", backup, "want", oldPath, "err", err)
	}
}

func selector(only []string) func(script.Record) bool {
	if len(only) == 0 {
		return func(script.Record) bool { return true }
	}
	want := make(map[string]bool, len(only))
	for _, s := range only {
		want[s] = true
	}
	return func(r script.Record) bool {
		return want[r.ID] || want[r.Name]
	}
}
