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

// InstallEngine installs a single catalog entry, always verifying its hash.
type InstallEngine struct {
	Downloader Downloader
	ScriptURL  func(name string) string
	ScriptDir  string
	Logger     *log.Logger
}

// Install downloads catalog[index] into the script directory and returns the
// new installed state. index is zero-based. Nothing on disk changes unless
// the download verifies.
func (e *InstallEngine) Install(ctx context.Context, catalog, installed []script.Record, index int) (*InstallResult, error) {
	if e.Downloader == nil || e.ScriptURL == nil {
		return nil, errors.New("install engine is missing a downloader")
	}
	if index < 0 || index >= len(catalog) {
		return nil, &script.SelectionError{Index: index, Count: len(catalog)}
	}

	logger := orDiscard(e.Logger)
	rec := catalog[index]

	dest, err := sandbox.ScriptPath(e.ScriptDir, rec.Name)
	if err != nil {
		return nil, &script.FormatError{Source: "catalog entry " + rec.ID, Err: err}
	}
	if rec.Hash == "" {
		return nil, &script.FormatError{Source: "catalog entry " + rec.ID, Problems: []string{fmt.Sprintf("script '%s': 'hash' is required to install", rec.Name)}}
	}

	tmp := sandbox.TempPath(e.ScriptDir)
	url := e.ScriptURL(rec.Name)
	logger.Debug("downloading", "script", rec.Name, "url", url)

	if _, err := e.Downloader.Fetch(ctx, url, tmp, rec.Hash); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("installing %s: %w", rec.Name, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("installing %s: moving download into place: %w", rec.Name, err)
	}

	result := &InstallResult{
		Record:    rec,
		Installed: state.Upsert(installed, rec),
	}

	if prev, ok := script.Find(installed, rec.ID); ok {
		result.Previous = &prev
		if prev.Name != rec.Name {
			e.removeStale(logger, prev.Name)
		}
	}

	logger.Info("installed", "script", rec.Name, "version", rec.Version)
	return result, nil
}

// removeStale deletes a previous version's file left under an old name.
func (e *InstallEngine) removeStale(logger *log.Logger, name string) {
	path, err := sandbox.ScriptPath(e.ScriptDir, name)
	if err != nil {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("could not remove previous file", "path", path, "err", err)
	}
}
