package options

// Group is a named bundle of option descriptors presented together in help
// output and registered atomically into a backend. The name doubles as the
// unit of identity for name extraction.
type Group struct {
	name string
	opts []Option
}

// NewGroup creates a group with the given help name.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

// Name returns the group's help name.
func (g *Group) Name() string { return g.name }

// Add appends descriptors to the group.
func (g *Group) Add(opts ...Option) *Group {
	g.opts = append(g.opts, opts...)
	return g
}

// AddNecessary marks the descriptor as necessary and appends it. A group is
// considered activated when at least one of its necessary options is supplied.
func (g *Group) AddNecessary(opt Option) *Group {
	opt.Base().necessary = true
	g.opts = append(g.opts, opt)
	return g
}

// Options returns the descriptors in declaration order.
func (g *Group) Options() []Option {
	return append([]Option(nil), g.opts...)
}

// ContainsNecessary reports whether any descriptor carries the Necessary flag.
func (g *Group) ContainsNecessary() bool {
	for _, opt := range g.opts {
		if opt.Base().necessary {
			return true
		}
	}
	return false
}
