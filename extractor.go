package options

import (
	"sort"
	"strings"
)

// NameExtractor is an Interface backend for signature discovery rather than
// parsing. It records only which group help-names were requested; descriptor
// values are never retained. Running the exact declaration code path against
// a NameExtractor reveals which groups an abstract configuration would
// activate, so a cache key or version identifier can be derived before any
// real configuration is materialized.
type NameExtractor struct {
	groupNames map[string]struct{}
}

// NewNameExtractor creates an empty extractor.
func NewNameExtractor() *NameExtractor {
	return &NameExtractor{
		groupNames: make(map[string]struct{}),
	}
}

// RegisterGroup records the group's help name. Duplicates are ignored;
// descriptor values are discarded.
func (e *NameExtractor) RegisterGroup(g *Group) error {
	if g.Name() == "" {
		return ErrEmptyGroupName
	}
	e.groupNames[g.Name()] = struct{}{}
	return nil
}

// GeneratedName derives the signature from the accumulated group-name set:
// distinct names, lexicographically sorted, joined with "_". The same
// requested-group set always yields the same string regardless of
// registration order. The sort-then-join rule and the "_" delimiter are part
// of the external contract; downstream consumers use the result as a cache
// or version key.
func (e *NameExtractor) GeneratedName() string {
	names := make([]string, 0, len(e.groupNames))
	for name := range e.groupNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, "_")
}

// GroupNames returns the sorted distinct group names seen so far.
func (e *NameExtractor) GroupNames() []string {
	names := make([]string, 0, len(e.groupNames))
	for name := range e.groupNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WasSupplied always reports false; no values are ever recorded.
func (e *NameExtractor) WasSupplied(string) bool { return false }

// SuppliedNames always reports empty.
func (e *NameExtractor) SuppliedNames() []string { return nil }

// CheckUnregistered is a no-op; there is no input store to validate against.
func (e *NameExtractor) CheckUnregistered(Sink) {}

// Insert is a no-op; no value store exists.
func (e *NameExtractor) Insert(string, any) error { return nil }

// Replace is a no-op; no value store exists.
func (e *NameExtractor) Replace(string, any) error { return nil }

// PositionalTokens is always empty.
func (e *NameExtractor) PositionalTokens() []string { return nil }

var _ Interface = (*NameExtractor)(nil)

// ExtractName runs the groups through a fresh NameExtractor and returns the
// generated signature.
func ExtractName(groups ...*Group) (string, error) {
	e := NewNameExtractor()
	for _, g := range groups {
		if err := e.RegisterGroup(g); err != nil {
			return "", err
		}
	}
	return e.GeneratedName(), nil
}
