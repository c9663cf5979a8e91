package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a scriptpm.yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &cfg, nil
}

// LoadOptional behaves like Load but returns Default when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d: only version 1 is supported", cfg.Version))
	}

	if cfg.Catalog.URL == "" {
		errs = append(errs, "catalog: 'url' is required")
	} else if u, err := url.Parse(cfg.Catalog.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Sprintf("catalog: invalid url '%s': must be an absolute http(s) URL", cfg.Catalog.URL))
	}

	if cfg.HTTP.Timeout != "" {
		d, err := time.ParseDuration(cfg.HTTP.Timeout)
		if err != nil {
			errs = append(errs, fmt.Sprintf("http: invalid timeout '%s': use a duration like '30s'", cfg.HTTP.Timeout))
		} else if d < 0 {
			errs = append(errs, fmt.Sprintf("http: timeout '%s' must not be negative", cfg.HTTP.Timeout))
		}
	}

	if cfg.HTTP.MaxSize < 0 {
		errs = append(errs, fmt.Sprintf("http: max_size %d must not be negative", cfg.HTTP.MaxSize))
	}

	return errs
}
