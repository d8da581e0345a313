package options

import "errors"

// Sentinel errors returned by descriptor accessors and registry operations.
// Callers are expected to match with errors.Is; most are wrapped with the
// offending option or group name.
var (
	// ErrNoValue is returned by Value when no value was supplied.
	// Check ValueSupplied before calling Value.
	ErrNoValue = errors.New("option does not contain a value")

	// ErrNoDefault is returned by Default when no default was recorded.
	// Check DefaultSupplied before calling Default.
	ErrNoDefault = errors.New("option does not contain a default value")

	// ErrEmptyName is returned when a descriptor is declared with an empty name.
	ErrEmptyName = errors.New("option name cannot be empty")

	// ErrEmptyGroupName is returned when a group with an empty help name is registered.
	ErrEmptyGroupName = errors.New("group name cannot be empty")

	// ErrSchemaConflict is returned when a registered name is re-registered
	// with a different schema (name, type, help, short name or flags).
	ErrSchemaConflict = errors.New("option already registered with a different schema")

	// ErrUnknownFormat is returned when an input file's format cannot be determined.
	ErrUnknownFormat = errors.New("unable to determine input file format")

	// ErrInputNotFound is returned when the input file does not exist.
	ErrInputNotFound = errors.New("input file not found")
)
