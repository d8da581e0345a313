package options

import "reflect"

// Option is the type-erased view of a declared option descriptor. Every
// concrete descriptor is a *TypedOption[T] (or embeds one), so the kind set
// stays closed: Accept dispatches to exactly one Visitor method and setSupplied
// coerces into exactly one Go type.
type Option interface {
	// Base exposes the shared, type-independent metadata.
	Base() *BaseOption

	// Accept invokes the Visitor method matching the descriptor's kind.
	Accept(Visitor)

	// setSupplied assigns a weakly typed value to the descriptor. Keeping it
	// unexported closes the interface to descriptors declared in this package.
	setSupplied(value any, canonical bool) error
}

// BaseOption holds the metadata common to every option descriptor. Name and
// type identity are fixed at construction; everything else is declaration-time
// configuration.
type BaseOption struct {
	name           string
	typ            reflect.Type
	help           string
	shortName      string
	keep           bool
	necessary      bool
	allowOverride  bool
	hiddenFromHelp bool
	oneOfErr       string
}

// Name returns the unique option name.
func (b *BaseOption) Name() string { return b.name }

// Type returns the descriptor's value type identity.
func (b *BaseOption) Type() reflect.Type { return b.typ }

// Help returns the help text.
func (b *BaseOption) Help() string { return b.help }

// Short returns the short name, if any.
func (b *BaseOption) Short() string { return b.shortName }

// Keep reports whether the option is marked to be kept in saved models.
func (b *BaseOption) Keep() bool { return b.keep }

// Necessary reports whether the option is required for its group to activate.
func (b *BaseOption) Necessary() bool { return b.necessary }

// AllowOverride reports whether a supplied value may override a saved one.
func (b *BaseOption) AllowOverride() bool { return b.allowOverride }

// Hidden reports whether the option is hidden from help output.
func (b *BaseOption) Hidden() bool { return b.hiddenFromHelp }

// OneOfError returns the recorded one-of violation text, or "" if the last
// supplied value satisfied the constraint. Violations are deferred: they are
// recorded at set time and surfaced only here, so transient invalid states
// during incremental declaration are tolerated.
func (b *BaseOption) OneOfError() string { return b.oneOfErr }

// SchemaEqual reports whether two descriptors declare the same schema: name,
// type identity, help text, short name, Keep and Necessary flags. Default and
// supplied values are deliberately excluded; equality is a statement about the
// declaration, not about any state accumulated since. It never fails, even
// across kinds.
func SchemaEqual(a, b Option) bool {
	ab, bb := a.Base(), b.Base()
	return ab.name == bb.name &&
		ab.typ == bb.typ &&
		ab.help == bb.help &&
		ab.shortName == bb.shortName &&
		ab.keep == bb.keep &&
		ab.necessary == bb.necessary
}
