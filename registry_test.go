package options

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSink collects diagnostics for assertions.
type recordSink struct {
	msgs []string
}

func (s *recordSink) Warnf(format string, args ...any) {
	s.msgs = append(s.msgs, fmt.Sprintf(format, args...))
}

func TestRegistryCanonicalPass(t *testing.T) {
	t.Run("InputValuesAreFed", func(t *testing.T) {
		alpha := New[float32]("alpha").SetDefault(0.5)
		passes := New[int64]("passes").SetDefault(1)

		reg := NewRegistry(map[string]any{"alpha": 0.1}, nil)
		require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha, passes)))

		v, err := alpha.Value()
		require.NoError(t, err)
		assert.Equal(t, float32(0.1), v)

		assert.False(t, passes.ValueSupplied())
		assert.True(t, reg.WasSupplied("alpha"))
		assert.False(t, reg.WasSupplied("passes"))
	})

	t.Run("CanonicalPassWritesBindings", func(t *testing.T) {
		var bits uint32
		opt := NewLocated("bits", &bits)

		reg := NewRegistry(map[string]any{"bits": 18}, nil)
		require.NoError(t, reg.RegisterGroup(NewGroup("feature").Add(opt)))

		assert.Equal(t, uint32(18), bits)
	})

	t.Run("WeaklyTypedInput", func(t *testing.T) {
		bits := New[uint32]("bits")
		quiet := New[bool]("quiet")
		quads := New[[]string]("quadratic")

		reg := NewRegistry(map[string]any{
			"bits":      "24",
			"quiet":     "true",
			"quadratic": "ab,cd",
		}, nil)
		require.NoError(t, reg.RegisterGroup(NewGroup("feature").Add(bits, quiet, quads)))

		b, err := bits.Value()
		require.NoError(t, err)
		assert.Equal(t, uint32(24), b)

		q, err := quiet.Value()
		require.NoError(t, err)
		assert.True(t, q)

		s, err := quads.Value()
		require.NoError(t, err)
		assert.Equal(t, []string{"ab", "cd"}, s)
	})

	t.Run("CoercionFailureSurfacesButGroupRegisters", func(t *testing.T) {
		bad := New[int32]("bits")
		good := New[string]("data")

		reg := NewRegistry(map[string]any{
			"bits": "not a number",
			"data": "train.txt",
		}, nil)
		err := reg.RegisterGroup(NewGroup("feature").Add(bad, good))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bits")

		// The rest of the group still registered and parsed.
		assert.True(t, reg.WasSupplied("data"))
		assert.False(t, reg.WasSupplied("bits"))
	})

	t.Run("EmptyGroupName", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		err := reg.RegisterGroup(NewGroup(""))
		assert.ErrorIs(t, err, ErrEmptyGroupName)
	})

	t.Run("EmptyOptionName", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		err := reg.RegisterGroup(NewGroup("sgd").Add(New[float32]("")))
		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestRegistryCollisionPolicy(t *testing.T) {
	t.Run("SchemaEqualReRegistration", func(t *testing.T) {
		reg := NewRegistry(map[string]any{"alpha": 0.1}, nil)

		first := New[float32]("alpha").WithHelp("learning rate")
		second := New[float32]("alpha").WithHelp("learning rate")

		require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(first)))
		require.NoError(t, reg.RegisterGroup(NewGroup("ftrl").Add(second)))

		// Both instances observed the canonical value.
		v1, _ := first.Value()
		v2, _ := second.Value()
		assert.Equal(t, v1, v2)
	})

	t.Run("SchemaConflictFailsGroupAtomically", func(t *testing.T) {
		reg := NewRegistry(map[string]any{"other": "x"}, nil)
		require.NoError(t, reg.RegisterGroup(
			NewGroup("sgd").Add(New[float32]("alpha").WithHelp("learning rate"))))

		conflicting := New[int64]("alpha").WithHelp("learning rate")
		other := New[string]("other")
		err := reg.RegisterGroup(NewGroup("ftrl").Add(other, conflicting))
		require.ErrorIs(t, err, ErrSchemaConflict)

		// Nothing from the failed group was applied.
		assert.False(t, reg.WasSupplied("other"))
		assert.False(t, other.ValueSupplied())
	})
}

func TestRegistrySuppliedIsolation(t *testing.T) {
	// Setting one name never changes the supplied state of another.
	alpha := New[float32]("alpha")
	passes := New[int64]("passes")

	reg := NewRegistry(nil, nil)
	require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha, passes)))

	require.NoError(t, reg.Replace("alpha", 0.2))
	assert.True(t, reg.WasSupplied("alpha"))
	assert.False(t, reg.WasSupplied("passes"))

	require.NoError(t, reg.Replace("passes", 3))
	assert.True(t, reg.WasSupplied("alpha"))
	assert.True(t, reg.WasSupplied("passes"))

	assert.Equal(t, []string{"alpha", "passes"}, reg.SuppliedNames())
}

func TestRegistryInsertReplace(t *testing.T) {
	t.Run("InsertIsFirstWriteWins", func(t *testing.T) {
		reg := NewRegistry(map[string]any{"alpha": 0.1}, nil)
		require.NoError(t, reg.Insert("alpha", 0.9))

		alpha := New[float32]("alpha")
		require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha)))

		v, err := alpha.Value()
		require.NoError(t, err)
		assert.Equal(t, float32(0.1), v)
	})

	t.Run("InsertSeedsMissingValue", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		require.NoError(t, reg.Insert("alpha", 0.9))

		alpha := New[float32]("alpha")
		require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha)))
		v, err := alpha.Value()
		require.NoError(t, err)
		assert.Equal(t, float32(0.9), v)
	})

	t.Run("ReplaceOverwrites", func(t *testing.T) {
		reg := NewRegistry(map[string]any{"alpha": 0.1}, nil)
		require.NoError(t, reg.Replace("alpha", 0.9))

		alpha := New[float32]("alpha")
		require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha)))
		v, err := alpha.Value()
		require.NoError(t, err)
		assert.Equal(t, float32(0.9), v)
	})

	t.Run("MutationAfterRegistrationIsNotCanonical", func(t *testing.T) {
		var bound float32
		alpha := NewLocated("alpha", &bound)

		reg := NewRegistry(map[string]any{"alpha": 0.1}, nil)
		require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha)))
		require.Equal(t, float32(0.1), bound)

		// Replace updates the descriptor but never the bound variable.
		require.NoError(t, reg.Replace("alpha", 0.9))
		v, err := alpha.Value()
		require.NoError(t, err)
		assert.Equal(t, float32(0.9), v)
		assert.Equal(t, float32(0.1), bound)
	})

	t.Run("EmptyName", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		assert.ErrorIs(t, reg.Insert("", 1), ErrEmptyName)
		assert.ErrorIs(t, reg.Replace("", 1), ErrEmptyName)
	})
}

func TestRegistryCheckUnregistered(t *testing.T) {
	reg := NewRegistry(map[string]any{
		"alpha":        0.1,
		"old_option":   true,
		"typo_opttion": 1,
	}, nil)
	require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(New[float32]("alpha"))))

	sink := &recordSink{}
	reg.CheckUnregistered(sink)

	require.Len(t, sink.msgs, 2)
	assert.Equal(t, "unrecognized option: --old_option", sink.msgs[0])
	assert.Equal(t, "unrecognized option: --typo_opttion", sink.msgs[1])
}

func TestRegistryPositionalTokens(t *testing.T) {
	reg := NewRegistry(nil, []string{"train.txt", "extra"})
	assert.Equal(t, []string{"train.txt", "extra"}, reg.PositionalTokens())

	// Returned slice is a copy.
	tokens := reg.PositionalTokens()
	tokens[0] = "mutated"
	assert.Equal(t, "train.txt", reg.PositionalTokens()[0])
}

func TestRegistryEffectiveValues(t *testing.T) {
	alpha := New[float32]("alpha").SetDefault(0.5)
	passes := New[int64]("passes").SetDefault(1)
	data := New[string]("data")

	reg := NewRegistry(map[string]any{"alpha": 0.1}, nil)
	require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha, passes, data)))

	values := reg.EffectiveValues()
	assert.Equal(t, float32(0.1), values["alpha"]) // supplied wins
	assert.Equal(t, int64(1), values["passes"])    // default fallback
	_, ok := values["data"]
	assert.False(t, ok) // neither supplied nor defaulted
}

func TestRegistryMissingNecessary(t *testing.T) {
	cbType := New[string]("cb_type")
	alpha := New[float32]("alpha")

	reg := NewRegistry(map[string]any{"alpha": 0.1}, nil)
	g := NewGroup("contextual_bandit").AddNecessary(cbType).Add(alpha)
	require.NoError(t, reg.RegisterGroup(g))

	assert.Equal(t, []string{"cb_type"}, reg.MissingNecessary())

	require.NoError(t, reg.Replace("cb_type", "ips"))
	assert.Empty(t, reg.MissingNecessary())
}

func TestRegistryDebug(t *testing.T) {
	alpha := New[float32]("alpha").SetDefault(0.5).SetOneOf(0.1, 0.5)

	reg := NewRegistry(map[string]any{"alpha": 0.3}, []string{"train.txt"})
	require.NoError(t, reg.RegisterGroup(NewGroup("sgd").Add(alpha)))

	out := reg.Debug()
	assert.Contains(t, out, "--alpha")
	assert.Contains(t, out, "Supplied: true")
	assert.Contains(t, out, "Violation:")
	assert.Contains(t, out, "train.txt")
}
