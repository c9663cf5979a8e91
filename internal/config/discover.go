package config

import (
	"os"
	"path/filepath"
)

const configFileName = "scriptpm.yaml"
const configDirName = "scriptpm"

// Environment variables consulted by ApplyEnv, highest precedence first.
var (
	homeEnv      = []string{"SCRIPTPM_HOME", "PYHOME"}
	scriptDirEnv = []string{"SCRIPTPM_SCRIPTS", "PYSCRIPTS"}
	catalogEnv   = []string{"SCRIPTPM_CATALOG_URL"}
)

// DefaultPath returns the platform-standard user config path, or
// scriptpm.yaml in the working directory if no user config dir is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, configDirName, configFileName)
}

// ApplyEnv overlays directory and catalog settings from the environment.
// lookup is usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := firstEnv(lookup, homeEnv); ok {
		cfg.Home = v
	}
	if v, ok := firstEnv(lookup, scriptDirEnv); ok {
		cfg.ScriptDir = v
	}
	if v, ok := firstEnv(lookup, catalogEnv); ok {
		cfg.Catalog.URL = v
	}
}

func firstEnv(lookup func(string) (string, bool), keys []string) (string, bool) {
	for _, k := range keys {
		if v, ok := lookup(k); ok && v != "" {
			return v, true
		}
	}
	return "", false
}
