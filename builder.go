package options

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidatorFunc validates a fully registered Registry and returns an error
// if the configuration is unacceptable.
type ValidatorFunc func(r *Registry) error

// Builder provides a fluent interface for assembling a registry: input
// sources, declared groups and validators, applied in one Build call.
type Builder struct {
	input      map[string]any
	file       string
	positional []string
	groups     []*Group
	validators []ValidatorFunc
}

// NewBuilder creates a new registry builder.
func NewBuilder() *Builder {
	return &Builder{
		input: make(map[string]any),
	}
}

// WithInput merges programmatic input values. Programmatic values take
// precedence over file values for the same name.
func (b *Builder) WithInput(input map[string]any) *Builder {
	for name, value := range input {
		b.input[name] = value
	}
	return b
}

// WithFile sets the input file path (TOML, JSON or YAML).
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithPositional appends positional tokens.
func (b *Builder) WithPositional(tokens ...string) *Builder {
	b.positional = append(b.positional, tokens...)
	return b
}

// WithGroups appends groups to register during Build, in order.
func (b *Builder) WithGroups(groups ...*Group) *Builder {
	b.groups = append(b.groups, groups...)
	return b
}

// WithValidator adds a validation function that runs after all groups are
// registered. Multiple validators execute in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads the input sources, registers all groups (the canonical pass)
// and runs the validators.
func (b *Builder) Build() (*Registry, error) {
	input := make(map[string]any)

	if b.file != "" {
		fileInput, err := loadInputFile(b.file)
		if err != nil {
			return nil, err
		}
		for name, value := range fileInput {
			input[name] = value
		}
	}

	// Programmatic input overrides file input.
	for name, value := range b.input {
		input[name] = value
	}

	r := NewRegistry(input, b.positional)

	for _, g := range b.groups {
		if err := r.RegisterGroup(g); err != nil {
			return nil, fmt.Errorf("failed to register group %q: %w", g.Name(), err)
		}
	}

	for _, validator := range b.validators {
		if err := validator(r); err != nil {
			return nil, fmt.Errorf("registry validation failed: %w", err)
		}
	}

	return r, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Registry {
	r, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("registry build failed: %v", err))
	}
	return r
}

// BuildAndScan builds the registry and decodes its effective values into the
// provided target struct pointer.
func (b *Builder) BuildAndScan(target any) (*Registry, error) {
	r, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := r.Scan(target); err != nil {
		return nil, fmt.Errorf("failed to scan built registry into target: %w", err)
	}

	return r, nil
}

// RequireNecessary returns a validator that fails when any Necessary
// descriptor received no value.
func RequireNecessary() ValidatorFunc {
	return func(r *Registry) error {
		if missing := r.MissingNecessary(); len(missing) > 0 {
			return fmt.Errorf("missing necessary options: %s", strings.Join(missing, ", "))
		}
		return nil
	}
}

// RejectViolations returns a validator that fails when any registered
// descriptor carries a recorded one-of violation.
func RejectViolations() ValidatorFunc {
	return func(r *Registry) error {
		r.mutex.RLock()
		defer r.mutex.RUnlock()

		names := make([]string, 0, len(r.options))
		for name := range r.options {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if msg := r.options[name].Base().oneOfErr; msg != "" {
				return errors.New(msg)
			}
		}
		return nil
	}
}
