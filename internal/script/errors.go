package script

import (
	"fmt"
	"strings"
)

// TransportError is a network or HTTP status failure.
type TransportError struct {
	URL    string
	Status int // HTTP status code, 0 when no response was received
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FormatError reports a catalog or state payload that is not a well-formed
// list of records.
type FormatError struct {
	Source   string
	Problems []string
	Err      error
}

func (e *FormatError) Error() string {
	switch {
	case len(e.Problems) > 0:
		return fmt.Sprintf("malformed %s:\n  - %s", e.Source, strings.Join(e.Problems, "\n  - "))
	case e.Err != nil:
		return fmt.Sprintf("malformed %s: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("malformed %s", e.Source)
	}
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IntegrityError reports a downloaded file whose digest does not match the
// expected hash.
type IntegrityError struct {
	Path     string
	Expected string
	Actual   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("hash mismatch for %s: expected %s, got %s", e.Path, e.Expected, e.Actual)
}

// SelectionError reports a catalog index outside the catalog bounds.
// Index is zero-based.
type SelectionError struct {
	Index int
	Count int
}

func (e *SelectionError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("script #%d does not exist: the catalog is empty", e.Index+1)
	}
	return fmt.Sprintf("script #%d does not exist: choose a number between 1 and %d", e.Index+1, e.Count)
}

// ConfigurationError reports a missing or unusable required setting,
// typically a directory that does not exist.
type ConfigurationError struct {
	Key  string
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	msg := e.Key
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "configuration: " + msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
