package options

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is the canonical-pass Interface backend. It is constructed over a
// programmatic input store (name -> raw value) plus positional tokens;
// RegisterGroup performs the canonical pass for each group, feeding matching
// input values into the group's descriptors with the canonical flag set.
type Registry struct {
	mutex      sync.RWMutex
	options    map[string]Option   // first registered descriptor per name
	input      map[string]any      // raw input store
	supplied   map[string]struct{} // names that transitioned to supplied
	positional []string
}

// NewRegistry creates a registry over the given input store and positional
// tokens. Both may be nil. The input map is copied.
func NewRegistry(input map[string]any, positional []string) *Registry {
	r := &Registry{
		options:    make(map[string]Option),
		input:      make(map[string]any, len(input)),
		supplied:   make(map[string]struct{}),
		positional: append([]string(nil), positional...),
	}
	for name, value := range input {
		r.input[name] = value
	}
	return r
}

// RegisterGroup atomically adds all of the group's descriptors and runs the
// canonical pass for them: every descriptor whose name appears in the input
// store receives the value with the canonical flag set.
//
// Collision policy: re-registering a schema-equal descriptor is allowed (the
// first instance stays the one stored, but the new instance still receives
// the supplied value); a schema conflict fails the whole group before any
// descriptor is added.
func (r *Registry) RegisterGroup(g *Group) error {
	if g.Name() == "" {
		return ErrEmptyGroupName
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// Validate first so the group is added all-or-nothing.
	for _, opt := range g.opts {
		b := opt.Base()
		if b.name == "" {
			return fmt.Errorf("group %q: %w", g.name, ErrEmptyName)
		}
		if existing, ok := r.options[b.name]; ok && !SchemaEqual(existing, opt) {
			return fmt.Errorf("option --%s in group %q: %w", b.name, g.name, ErrSchemaConflict)
		}
	}

	var setErrors []error
	for _, opt := range g.opts {
		name := opt.Base().name
		if _, ok := r.options[name]; !ok {
			r.options[name] = opt
		}
		raw, ok := r.input[name]
		if !ok {
			continue
		}
		if err := opt.setSupplied(raw, true); err != nil {
			setErrors = append(setErrors, err)
			continue
		}
		r.supplied[name] = struct{}{}
	}

	return errors.Join(setErrors...)
}

// WasSupplied reports whether the named option received a value.
func (r *Registry) WasSupplied(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, ok := r.supplied[name]
	return ok
}

// SuppliedNames returns the sorted names that received values.
func (r *Registry) SuppliedNames() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.supplied))
	for name := range r.supplied {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CheckUnregistered reports, via sink, every input name with no registered
// descriptor, in sorted order. Nothing is raised; stale options are a
// caller-policy concern.
func (r *Registry) CheckUnregistered(sink Sink) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var unknown []string
	for name := range r.input {
		if _, ok := r.options[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)

	for _, name := range unknown {
		sink.Warnf("unrecognized option: --%s", name)
	}
}

// Insert adds a value to the input store unless one already exists
// (first-write-wins, mirroring the write-once discipline of located
// descriptors at registry scope). If the name is already registered, the
// descriptor receives the value through a non-canonical set, so bound
// variables stay untouched.
func (r *Registry) Insert(name string, value any) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.input[name]; exists {
		return nil
	}
	return r.store(name, value)
}

// Replace unconditionally overwrites the input store value. Registered
// descriptors receive the value through a non-canonical set.
func (r *Registry) Replace(name string, value any) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.store(name, value)
}

// store writes the input value and propagates it to a registered descriptor.
// Caller holds the write lock.
func (r *Registry) store(name string, value any) error {
	r.input[name] = value

	opt, ok := r.options[name]
	if !ok {
		return nil
	}
	if err := opt.setSupplied(value, false); err != nil {
		return err
	}
	r.supplied[name] = struct{}{}
	return nil
}

// PositionalTokens returns the ordered free-standing tokens.
func (r *Registry) PositionalTokens() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return append([]string(nil), r.positional...)
}

// EffectiveValues returns a snapshot of every registered descriptor's
// supplied-or-default value. Descriptors with neither are omitted.
func (r *Registry) EffectiveValues() map[string]any {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	values := make(map[string]any, len(r.options))
	for name, opt := range r.options {
		if v, ok := effectiveValue(opt); ok {
			values[name] = v
		}
	}
	return values
}

// MissingNecessary returns the sorted names of Necessary descriptors that
// received no value. Useful as a builder validator.
func (r *Registry) MissingNecessary() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var missing []string
	for name, opt := range r.options {
		if !opt.Base().necessary {
			continue
		}
		if _, ok := r.supplied[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Debug returns a formatted dump of every registered descriptor, its
// effective value and its constraint state.
func (r *Registry) Debug() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.options))
	for name := range r.options {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Registry Debug Info:\n")
	for _, name := range names {
		opt := r.options[name]
		_, wasSupplied := r.supplied[name]
		b.WriteString(fmt.Sprintf("  --%s (%s):\n", name, opt.Base().typ))
		if v, ok := effectiveValue(opt); ok {
			b.WriteString(fmt.Sprintf("    Value: %v\n", v))
		} else {
			b.WriteString("    Value: <unset>\n")
		}
		b.WriteString(fmt.Sprintf("    Supplied: %t\n", wasSupplied))
		if msg := opt.Base().oneOfErr; msg != "" {
			b.WriteString(fmt.Sprintf("    Violation: %s\n", msg))
		}
	}
	if len(r.positional) > 0 {
		b.WriteString(fmt.Sprintf("  Positional: %v\n", r.positional))
	}
	return b.String()
}

var _ Interface = (*Registry)(nil)
