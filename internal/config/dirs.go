package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/bianoble/scriptpm/internal/script"
)

// Directories is the pair of directories a scriptpm run operates on.
type Directories struct {
	Home      string // holds installed-script.json
	ScriptDir string // holds the installed script files
}

// Check verifies both directories exist. It never creates them.
func (d Directories) Check() error {
	if err := checkDir("home", d.Home); err != nil {
		return err
	}
	return checkDir("script_dir", d.ScriptDir)
}

func checkDir(key, path string) error {
	if path == "" {
		return &script.ConfigurationError{Key: key, Err: errors.New("directory is not set")}
	}
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &script.ConfigurationError{Key: key, Path: path, Err: errors.New("directory does not exist")}
		}
		return &script.ConfigurationError{Key: key, Path: path, Err: err}
	}
	if !fi.IsDir() {
		return &script.ConfigurationError{Key: key, Path: path, Err: fmt.Errorf("not a directory")}
	}
	return nil
}
