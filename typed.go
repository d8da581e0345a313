package options

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Scalar enumerates the comparable kinds eligible for one-of constraints.
type Scalar interface {
	int32 | int64 | uint32 | uint64 | float32 | bool | string
}

// Value enumerates every kind an option descriptor may carry. The set is
// closed on purpose: Visitor has one method per member and Accept's dispatch
// relies on exhaustiveness.
type Value interface {
	Scalar | []string
}

// TypedOption is a strongly typed option descriptor. Default and supplied
// values are tracked independently and both start absent; use
// DefaultSupplied and ValueSupplied before the corresponding accessors.
type TypedOption[T Value] struct {
	BaseOption

	value        *T
	defaultValue *T
	oneOf        []T

	// onSet is invoked on every SetValue. Located descriptors use it to
	// forward canonical values to their bound variable.
	onSet func(v T, canonical bool)
}

// New declares a typed option descriptor. The name must be non-empty;
// registration backends reject descriptors with empty names.
func New[T Value](name string) *TypedOption[T] {
	var zero T
	return &TypedOption[T]{
		BaseOption: BaseOption{
			name: name,
			typ:  reflect.TypeOf(zero),
		},
	}
}

// Base returns the shared metadata.
func (o *TypedOption[T]) Base() *BaseOption { return &o.BaseOption }

// WithHelp sets the help text.
func (o *TypedOption[T]) WithHelp(help string) *TypedOption[T] {
	o.help = help
	return o
}

// WithShort sets the short name.
func (o *TypedOption[T]) WithShort(short string) *TypedOption[T] {
	o.shortName = short
	return o
}

// WithKeep marks the option to be kept in saved models.
func (o *TypedOption[T]) WithKeep(keep bool) *TypedOption[T] {
	o.keep = keep
	return o
}

// WithNecessary marks the option as required for group activation.
func (o *TypedOption[T]) WithNecessary(necessary bool) *TypedOption[T] {
	o.necessary = necessary
	return o
}

// WithAllowOverride permits a supplied value to override a saved one.
func (o *TypedOption[T]) WithAllowOverride(allow bool) *TypedOption[T] {
	o.allowOverride = allow
	return o
}

// WithHidden hides the option from help output.
func (o *TypedOption[T]) WithHidden(hidden bool) *TypedOption[T] {
	o.hiddenFromHelp = hidden
	return o
}

// SetDefault records the fallback value.
func (o *TypedOption[T]) SetDefault(v T) *TypedOption[T] {
	o.defaultValue = &v
	return o
}

// DefaultSupplied reports whether a default value was recorded.
func (o *TypedOption[T]) DefaultSupplied() bool { return o.defaultValue != nil }

// Default returns the recorded default value. Calling it without a recorded
// default is a programmer error and returns ErrNoDefault.
func (o *TypedOption[T]) Default() (T, error) {
	if o.defaultValue == nil {
		var zero T
		return zero, fmt.Errorf("option --%s: %w; check DefaultSupplied first", o.name, ErrNoDefault)
	}
	return *o.defaultValue, nil
}

// SetValue records v as the supplied value. canonical flags the set as
// originating from the canonical registration pass; only canonical sets may
// write bound external variables. If a one-of constraint exists and v is not
// a member, a violation message is recorded instead of failing: declarations
// may be populated incrementally, so rejection is deferred to the caller
// inspecting OneOfError.
func (o *TypedOption[T]) SetValue(v T, canonical bool) *TypedOption[T] {
	o.value = &v
	if o.onSet != nil {
		o.onSet(v, canonical)
	}
	if len(o.oneOf) > 0 && !o.oneOfContains(v) {
		o.oneOfErr = invalidChoice(o.name, v, o.oneOf)
	} else {
		o.oneOfErr = ""
	}
	return o
}

// ValueSupplied reports whether a value was supplied. Always safe.
func (o *TypedOption[T]) ValueSupplied() bool { return o.value != nil }

// Value returns the supplied value. Calling it without a supplied value is a
// programmer error and returns ErrNoValue.
func (o *TypedOption[T]) Value() (T, error) {
	if o.value == nil {
		var zero T
		return zero, fmt.Errorf("option --%s: %w; check ValueSupplied first", o.name, ErrNoValue)
	}
	return *o.value, nil
}

// SetOneOf installs the legal-value constraint. An empty set means
// unconstrained. Membership is checked on every subsequent SetValue.
func (o *TypedOption[T]) SetOneOf(vals ...T) *TypedOption[T] {
	o.oneOf = append([]T(nil), vals...)
	return o
}

// OneOf returns the legal-value set, empty when unconstrained.
func (o *TypedOption[T]) OneOf() []T {
	return append([]T(nil), o.oneOf...)
}

func (o *TypedOption[T]) oneOfContains(v T) bool {
	for _, c := range o.oneOf {
		if reflect.DeepEqual(c, v) {
			return true
		}
	}
	return false
}

// Accept dispatches to the Visitor method matching T. The switch is
// exhaustive over the Value constraint.
func (o *TypedOption[T]) Accept(v Visitor) {
	switch opt := any(o).(type) {
	case *TypedOption[int32]:
		v.VisitInt32(opt)
	case *TypedOption[int64]:
		v.VisitInt64(opt)
	case *TypedOption[uint32]:
		v.VisitUint32(opt)
	case *TypedOption[uint64]:
		v.VisitUint64(opt)
	case *TypedOption[float32]:
		v.VisitFloat32(opt)
	case *TypedOption[bool]:
		v.VisitBool(opt)
	case *TypedOption[string]:
		v.VisitString(opt)
	case *TypedOption[[]string]:
		v.VisitStringSlice(opt)
	}
}

// setSupplied coerces a weakly typed input value into T and records it.
func (o *TypedOption[T]) setSupplied(value any, canonical bool) error {
	v, err := coerce[T](value)
	if err != nil {
		return fmt.Errorf("option --%s: %w", o.name, err)
	}
	o.SetValue(v, canonical)
	return nil
}

// coerce converts input-store values (TOML/JSON/YAML primitives, strings from
// programmatic sources) into the descriptor's kind.
func coerce[T Value](input any) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}

	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return out, fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(input); err != nil {
		return out, fmt.Errorf("cannot convert %T to %T: %w", input, out, err)
	}
	return out, nil
}

// invalidChoice renders the fixed one-of violation template. The template is
// part of the external contract and must not change shape.
func invalidChoice[T Value](name string, v T, allowed []T) string {
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("Error: '%v' is not a valid choice for option --%s. Please select from {%s}",
		v, name, strings.Join(parts, ", "))
}
