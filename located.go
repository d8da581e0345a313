package options

// LocatedOption is a typed option descriptor bound to an external variable.
// The contract: the bound variable is written at most once, and only by a
// SetValue flagged as canonical. Non-canonical sets (programmatic overrides,
// replay, dry-run validation) update the descriptor's tracked value but never
// touch the live variable consumers read.
type LocatedOption[T Value] struct {
	TypedOption[T]

	location *T
	written  bool
}

// NewLocated declares a typed option descriptor bound to target. target may
// be nil, in which case the descriptor behaves like a plain TypedOption.
func NewLocated[T Value](name string, target *T) *LocatedOption[T] {
	o := &LocatedOption[T]{
		TypedOption: *New[T](name),
		location:    target,
	}
	o.onSet = o.bind
	return o
}

// bind forwards canonical values to the bound variable, once.
func (o *LocatedOption[T]) bind(v T, canonical bool) {
	if !canonical || o.written || o.location == nil {
		return
	}
	*o.location = v
	o.written = true
}
