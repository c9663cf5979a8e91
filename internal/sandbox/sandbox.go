package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BackupPrefix marks rollback copies kept in the script directory while a
// script is being replaced.
const BackupPrefix = ".scriptpm-"

// ScriptPath joins a catalog script name onto the script directory.
// The name must be a plain file name, and the resulting path, after
// resolving symlinks, must stay inside dir.
func ScriptPath(dir, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving script directory: %w", err)
	}
	realDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return "", fmt.Errorf("resolving script directory symlinks: %w", err)
	}

	candidate := filepath.Join(realDir, name)
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		// Not there yet, or a dangling link; the candidate itself is contained.
		if os.IsNotExist(err) {
			return candidate, nil
		}
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}

	if filepath.Dir(resolved) != realDir {
		return "", fmt.Errorf("script '%s' resolves to '%s' which is outside the script directory '%s'", name, resolved, realDir)
	}
	return candidate, nil
}

// ValidateName checks that name can be used both as a URL path segment and
// as a file name directly inside the script directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("script name is empty")
	case name == "." || name == "..":
		return fmt.Errorf("script name '%s' is not a file name", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("script name '%s' must not contain path separators", name)
	case strings.HasPrefix(name, BackupPrefix):
		return fmt.Errorf("script name '%s' uses the reserved prefix '%s'", name, BackupPrefix)
	}
	return nil
}

// BackupPath returns a fresh, collision-free path inside dir for holding a
// script during a guarded replace.
func BackupPath(dir string) string {
	return filepath.Join(dir, BackupPrefix+uuid.NewString()+".bak")
}

// TempPath returns a fresh path inside dir for a download that has not been
// verified yet.
func TempPath(dir string) string {
	return filepath.Join(dir, BackupPrefix+uuid.NewString()+".part")
}

// WriteFileAtomic writes content to a temp file next to path, then renames it
// into place. Readers observe either the old file or the complete new one.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory keeps the rename on one filesystem.
	tmp, err := os.CreateTemp(dir, BackupPrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", path, err)
	}

	success = true
	return nil
}

// IsBackup reports whether a directory entry name is a rollback or temp file
// left by scriptpm.
func IsBackup(name string) bool {
	return strings.HasPrefix(name, BackupPrefix)
}
