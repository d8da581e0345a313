package options

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the registry's effective values into the target struct or
// map. Dotted option names map to nested fields; fields are matched through
// the "toml" tag. The target must be a non-nil pointer.
func (r *Registry) Scan(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	for name, value := range r.EffectiveValues() {
		setNestedValue(nested, name, value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("failed to scan effective values into %T: %w", target, err)
	}

	return nil
}
