package scriptpm

import (
	"github.com/bianoble/scriptpm/internal/engine"
	"github.com/bianoble/scriptpm/internal/script"
	"github.com/bianoble/scriptpm/internal/source"
)

// Type aliases re-export internal types as the public API.

type Record = script.Record

type TransportError = script.TransportError
type FormatError = script.FormatError
type IntegrityError = script.IntegrityError
type SelectionError = script.SelectionError
type ConfigurationError = script.ConfigurationError

type UpdateOptions = engine.UpdateOptions
type UpdateResult = engine.UpdateResult
type RecordChange = engine.RecordChange
type RecordFailure = engine.RecordFailure
type InstallResult = engine.InstallResult
type ScriptStatus = engine.ScriptStatus

type HTTPClient = source.HTTPClient

// Script states reported by Status.
const (
	StateCurrent  = engine.StateCurrent
	StateOutdated = engine.StateOutdated
	StateOrphaned = engine.StateOrphaned
	StateMissing  = engine.StateMissing
	StateModified = engine.StateModified
)
