package config

import "time"

// Defaults applied to fields left empty in the config file.
const (
	DefaultCatalogURL  = "https://fzed51.github.io/python-library"
	DefaultManifest    = "scripts-catalog.json"
	DefaultScriptsPath = "library/scripts"
	DefaultTimeout     = 30 * time.Second
)

// Config represents the scriptpm.yaml configuration file.
type Config struct {
	Version   int        `yaml:"version"`
	Catalog   Catalog    `yaml:"catalog"`
	Home      string     `yaml:"home,omitempty"`
	ScriptDir string     `yaml:"script_dir,omitempty"`
	Update    Update     `yaml:"update,omitempty"`
	HTTP      HTTPConfig `yaml:"http,omitempty"`
}

// Catalog locates the remote manifest and script files.
type Catalog struct {
	URL         string `yaml:"url"`
	Manifest    string `yaml:"manifest,omitempty"`
	ScriptsPath string `yaml:"scripts_path,omitempty"`
}

// Update controls the reconcile run.
type Update struct {
	// VerifyHash checks updated files against the catalog hash.
	// Nil means true.
	VerifyHash *bool `yaml:"verify_hash,omitempty"`
}

// HTTPConfig tunes the HTTP transport.
type HTTPConfig struct {
	Timeout string `yaml:"timeout,omitempty"`  // Go duration, e.g. "30s"
	MaxSize int64  `yaml:"max_size,omitempty"` // bytes, 0 = no limit
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{Version: 1}
	applyDefaults(cfg)
	return cfg
}

// Directories returns the home and script directories.
func (c *Config) Directories() Directories {
	return Directories{Home: c.Home, ScriptDir: c.ScriptDir}
}

// VerifyUpdates reports whether updated files are hash-checked.
func (c *Config) VerifyUpdates() bool {
	if c.Update.VerifyHash == nil {
		return true
	}
	return *c.Update.VerifyHash
}

// Timeout returns the parsed HTTP timeout. Validate rejects bad values, so
// an unparsable one here falls back to the default.
func (c *Config) Timeout() time.Duration {
	if c.HTTP.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

func applyDefaults(cfg *Config) {
	if cfg.Catalog.URL == "" {
		cfg.Catalog.URL = DefaultCatalogURL
	}
	if cfg.Catalog.Manifest == "" {
		cfg.Catalog.Manifest = DefaultManifest
	}
	if cfg.Catalog.ScriptsPath == "" {
		cfg.Catalog.ScriptsPath = DefaultScriptsPath
	}
}
