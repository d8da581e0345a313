package options

import (
	"fmt"
	"log/slog"
)

// Interface is the registry contract shared by every options backend. The
// core is agnostic to where input values come from (a parsed file, a
// programmatic map) and to where diagnostics go (the injected Sink).
type Interface interface {
	// RegisterGroup atomically adds all of the group's descriptors.
	// Name-collision policy is backend-defined.
	RegisterGroup(g *Group) error

	// WasSupplied reports whether the named option received a value.
	WasSupplied(name string) bool

	// SuppliedNames returns the sorted names that received values.
	SuppliedNames() []string

	// CheckUnregistered reports, via sink, every input option name never
	// claimed by a registered descriptor. Non-fatal by design; the caller
	// decides what to do about stale or renamed options.
	CheckUnregistered(sink Sink)

	// Insert adds a value to the input store unless one already exists
	// (first-write-wins).
	Insert(name string, value any) error

	// Replace unconditionally overwrites the input store value.
	Replace(name string, value any) error

	// PositionalTokens returns the ordered free-standing tokens that bound
	// to no named option.
	PositionalTokens() []string
}

// Sink receives non-fatal diagnostics.
type Sink interface {
	Warnf(format string, args ...any)
}

// SlogSink adapts a slog.Logger to the Sink contract. A zero SlogSink uses
// slog.Default.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Warnf(format string, args ...any) {
	l := s.Logger
	if l == nil {
		l = slog.Default()
	}
	l.Warn(fmt.Sprintf(format, args...))
}
