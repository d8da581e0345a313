package options

// Visitor is the double-dispatch contract for type-specific cross-cutting
// passes (serialization, help rendering, schema migration) over a
// heterogeneous set of descriptors. Embed NoopVisitor to implement only the
// kinds a pass cares about.
type Visitor interface {
	VisitInt32(*TypedOption[int32])
	VisitInt64(*TypedOption[int64])
	VisitUint32(*TypedOption[uint32])
	VisitUint64(*TypedOption[uint64])
	VisitFloat32(*TypedOption[float32])
	VisitBool(*TypedOption[bool])
	VisitString(*TypedOption[string])
	VisitStringSlice(*TypedOption[[]string])
}

// NoopVisitor implements every Visitor method as a no-op.
type NoopVisitor struct{}

func (NoopVisitor) VisitInt32(*TypedOption[int32])          {}
func (NoopVisitor) VisitInt64(*TypedOption[int64])          {}
func (NoopVisitor) VisitUint32(*TypedOption[uint32])        {}
func (NoopVisitor) VisitUint64(*TypedOption[uint64])        {}
func (NoopVisitor) VisitFloat32(*TypedOption[float32])      {}
func (NoopVisitor) VisitBool(*TypedOption[bool])            {}
func (NoopVisitor) VisitString(*TypedOption[string])        {}
func (NoopVisitor) VisitStringSlice(*TypedOption[[]string]) {}

var _ Visitor = NoopVisitor{}

// valueVisitor extracts the effective (supplied-or-default) value of a
// descriptor without reflection. Used by the Registry's snapshot, Save and
// Scan paths.
type valueVisitor struct {
	val any
	ok  bool
}

func (v *valueVisitor) VisitInt32(o *TypedOption[int32])          { v.val, v.ok = effective(o) }
func (v *valueVisitor) VisitInt64(o *TypedOption[int64])          { v.val, v.ok = effective(o) }
func (v *valueVisitor) VisitUint32(o *TypedOption[uint32])        { v.val, v.ok = effective(o) }
func (v *valueVisitor) VisitUint64(o *TypedOption[uint64])        { v.val, v.ok = effective(o) }
func (v *valueVisitor) VisitFloat32(o *TypedOption[float32])      { v.val, v.ok = effective(o) }
func (v *valueVisitor) VisitBool(o *TypedOption[bool])            { v.val, v.ok = effective(o) }
func (v *valueVisitor) VisitString(o *TypedOption[string])        { v.val, v.ok = effective(o) }
func (v *valueVisitor) VisitStringSlice(o *TypedOption[[]string]) { v.val, v.ok = effective(o) }

func effective[T Value](o *TypedOption[T]) (any, bool) {
	if o.ValueSupplied() {
		v, _ := o.Value()
		return v, true
	}
	if o.DefaultSupplied() {
		d, _ := o.Default()
		return d, true
	}
	return nil, false
}

// effectiveValue runs the value visitor against a type-erased descriptor.
func effectiveValue(opt Option) (any, bool) {
	var v valueVisitor
	opt.Accept(&v)
	return v.val, v.ok
}
