package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bianoble/scriptpm/internal/config"
	"github.com/bianoble/scriptpm/pkg/scriptpm"
)

// resolvedConfigPath returns --config or the user config default.
func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// loadConfig reads the config file if present, then applies the
// environment and command-line overrides.
func loadConfig(lookup func(string) (string, bool)) (*config.Config, error) {
	path := resolvedConfigPath()
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}

	config.ApplyEnv(cfg, lookup)

	if homeDir != "" {
		cfg.Home = homeDir
	}
	if scriptDir != "" {
		cfg.ScriptDir = scriptDir
	}
	if catalogURL != "" {
		cfg.Catalog.URL = catalogURL
	}
	return cfg, nil
}

// newLogger returns the stderr logger, levelled by --verbose and --quiet.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "scriptpm"})
	switch {
	case verbose:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	}
	return logger
}

// clientOptions maps a resolved config onto library options.
func clientOptions(cfg *config.Config, logger *log.Logger) scriptpm.Options {
	return scriptpm.Options{
		Home:                   cfg.Home,
		ScriptDir:              cfg.ScriptDir,
		CatalogURL:             cfg.Catalog.URL,
		Manifest:               cfg.Catalog.Manifest,
		ScriptsPath:            cfg.Catalog.ScriptsPath,
		SkipUpdateVerification: !cfg.VerifyUpdates(),
		Timeout:                cfg.Timeout(),
		MaxSize:                cfg.HTTP.MaxSize,
		Logger:                 logger,
	}
}

// newClient builds a library client from config, environment and flags.
func newClient() (*scriptpm.Client, error) {
	cfg, err := loadConfig(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return scriptpm.New(clientOptions(cfg, newLogger()))
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}

// shortHash abbreviates a hex digest for display.
func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
