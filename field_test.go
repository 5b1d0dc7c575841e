package formkit_test

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
)

// nonEmpty and minRunes are the sync validators shared across the engine
// tests; they stand in for anything pkg/rules would provide.
func nonEmpty(v string) formkit.Errors {
	if v == "" {
		return formkit.Errors{"required": true}
	}
	return nil
}

func minRunes(n int) formkit.Rule[string] {
	return func(v string) formkit.Errors {
		if utf8.RuneCountInString(v) < n {
			return formkit.Errors{"minlength": n}
		}
		return nil
	}
}

func TestNewField(t *testing.T) {
	t.Run("valid without rules", func(t *testing.T) {
		f := formkit.NewField("hello")
		assert.Equal(t, formkit.StatusValid, f.Status())
		assert.Equal(t, "hello", f.Get())
		assert.Equal(t, "hello", f.Value())
		assert.False(t, f.Dirty())
		assert.False(t, f.Touched())
	})

	t.Run("initial value is validated at construction", func(t *testing.T) {
		f := formkit.NewField("", nonEmpty)
		assert.Equal(t, formkit.StatusInvalid, f.Status())
		assert.True(t, f.Errors().Has("required"))
	})

	t.Run("panics when a validator panics on the initial value", func(t *testing.T) {
		boom := func(string) formkit.Errors { panic("boom") }
		assert.Panics(t, func() { formkit.NewField("x", boom) })
	})
}

func TestFieldSetValue(t *testing.T) {
	t.Run("recomputes status on every change", func(t *testing.T) {
		f := formkit.NewField("", nonEmpty)
		require.Equal(t, formkit.StatusInvalid, f.Status())

		require.NoError(t, f.SetValue("john"))
		assert.Equal(t, formkit.StatusValid, f.Status())
		assert.Nil(t, f.Errors())

		require.NoError(t, f.SetValue(""))
		assert.Equal(t, formkit.StatusInvalid, f.Status())
	})

	t.Run("all failing rules report merged", func(t *testing.T) {
		f := formkit.NewField("abc", nonEmpty, minRunes(5))
		require.NoError(t, f.SetValue("")) // fails both

		errs := f.Errors()
		assert.True(t, errs.Has("required"))
		assert.True(t, errs.Has("minlength"))
	})

	t.Run("only the failing rule contributes", func(t *testing.T) {
		banned := regexp.MustCompile(`(?i)bob`)
		noBannedWord := func(v string) formkit.Errors {
			if banned.MatchString(v) {
				return formkit.Errors{"banned": map[string]any{"value": v}}
			}
			return nil
		}

		f := formkit.NewField("", nonEmpty, minRunes(5), noBannedWord)
		require.NoError(t, f.SetValue("bobby")) // passes the first two

		errs := f.Errors()
		assert.Equal(t, []string{"banned"}, errs.Keys())
		detail, _ := errs.Get("banned")
		assert.Equal(t, map[string]any{"value": "bobby"}, detail)
	})

	t.Run("later rule wins on key collision", func(t *testing.T) {
		first := func(string) formkit.Errors { return formkit.Errors{"k": "first"} }
		second := func(string) formkit.Errors { return formkit.Errors{"k": "second"} }

		f := formkit.NewField("x", first, second)
		v, _ := f.Errors().Get("k")
		assert.Equal(t, "second", v)
	})
}

func TestFieldRevalidateIdempotent(t *testing.T) {
	f := formkit.NewField("", nonEmpty, minRunes(5))
	require.Equal(t, formkit.StatusInvalid, f.Status())
	before := f.Errors()

	require.NoError(t, f.Revalidate())
	require.NoError(t, f.Revalidate())

	assert.Equal(t, formkit.StatusInvalid, f.Status())
	assert.Equal(t, before, f.Errors())
}

func TestFieldNormalizer(t *testing.T) {
	t.Run("dirty compares the normalized value", func(t *testing.T) {
		f := formkit.NewField("name").WithNormalizer(strings.TrimSpace)
		require.NoError(t, f.SetValue("  name  "))
		assert.Equal(t, "name", f.Get())
		assert.False(t, f.Dirty())
	})

	t.Run("applies on every set", func(t *testing.T) {
		f := formkit.NewField("name").WithNormalizer(strings.TrimSpace)
		require.NoError(t, f.SetValue("  alice  "))
		assert.Equal(t, "alice", f.Get())
		assert.True(t, f.Dirty())
	})
}

func TestFieldDirty(t *testing.T) {
	t.Run("set once the value diverges from the initial", func(t *testing.T) {
		f := formkit.NewField("init")
		assert.False(t, f.Dirty())

		require.NoError(t, f.SetValue("init"))
		assert.False(t, f.Dirty())

		require.NoError(t, f.SetValue("changed"))
		assert.True(t, f.Dirty())
	})

	t.Run("stays set when the value returns to the initial", func(t *testing.T) {
		f := formkit.NewField("init")
		require.NoError(t, f.SetValue("changed"))
		require.NoError(t, f.SetValue("init"))
		assert.True(t, f.Dirty())
	})

	t.Run("MarkDirty and MarkPristine override", func(t *testing.T) {
		f := formkit.NewField("init")
		f.MarkDirty()
		assert.True(t, f.Dirty())

		f.MarkPristine()
		assert.False(t, f.Dirty())
	})
}

func TestFieldTouched(t *testing.T) {
	f := formkit.NewField("")
	assert.False(t, f.Touched())

	f.MarkTouched()
	assert.True(t, f.Touched())

	f.MarkUntouched()
	assert.False(t, f.Touched())
}

func TestFieldReset(t *testing.T) {
	f := formkit.NewField("init", nonEmpty)
	require.NoError(t, f.SetValue(""))
	f.MarkTouched()
	require.Equal(t, formkit.StatusInvalid, f.Status())

	require.NoError(t, f.Reset())

	assert.Equal(t, "init", f.Get())
	assert.Equal(t, formkit.StatusValid, f.Status())
	assert.False(t, f.Dirty())
	assert.False(t, f.Touched())
}

func TestFieldResetTo(t *testing.T) {
	f := formkit.NewField("old")
	require.NoError(t, f.SetValue("typed"))
	require.True(t, f.Dirty())

	require.NoError(t, f.ResetTo("new"))

	assert.Equal(t, "new", f.Get())
	assert.Equal(t, "new", f.Initial())
	assert.False(t, f.Dirty())

	require.NoError(t, f.SetValue("old")) // old initial no longer counts as pristine
	assert.True(t, f.Dirty())
}

func TestFieldRuleMutation(t *testing.T) {
	t.Run("SetRules revalidates immediately", func(t *testing.T) {
		f := formkit.NewField("")
		require.Equal(t, formkit.StatusValid, f.Status())

		require.NoError(t, f.SetRules(nonEmpty))
		assert.Equal(t, formkit.StatusInvalid, f.Status())
	})

	t.Run("AddRules appends", func(t *testing.T) {
		f := formkit.NewField("ab", nonEmpty)
		require.Equal(t, formkit.StatusValid, f.Status())

		require.NoError(t, f.AddRules(minRunes(5)))
		assert.Equal(t, formkit.StatusInvalid, f.Status())
		assert.True(t, f.Errors().Has("minlength"))
	})

	t.Run("ClearRules lifts all constraints", func(t *testing.T) {
		f := formkit.NewField("", nonEmpty)
		require.NoError(t, f.ClearRules())
		assert.Equal(t, formkit.StatusValid, f.Status())
	})
}

func TestFieldSetAny(t *testing.T) {
	t.Run("accepts the field's value type", func(t *testing.T) {
		f := formkit.NewField(0)
		require.NoError(t, f.SetAny(42))
		assert.Equal(t, 42, f.Get())
	})

	t.Run("rejects other types", func(t *testing.T) {
		f := formkit.NewField(0)
		err := f.SetAny("42")
		assert.ErrorIs(t, err, formkit.ErrTypeMismatch)
		assert.Equal(t, 0, f.Get())
	})

	t.Run("PatchAny behaves like SetAny on leaves", func(t *testing.T) {
		f := formkit.NewField("a")
		require.NoError(t, f.PatchAny("b"))
		assert.Equal(t, "b", f.Get())
		assert.ErrorIs(t, f.PatchAny(1), formkit.ErrTypeMismatch)
	})
}

func TestFieldValidatorPanic(t *testing.T) {
	boom := func(v string) formkit.Errors {
		if v == "trigger" {
			panic("boom")
		}
		return nil
	}

	f := formkit.NewField("ok", boom)
	require.Equal(t, formkit.StatusValid, f.Status())

	err := f.SetValue("trigger")
	require.ErrorIs(t, err, formkit.ErrValidatorPanic)

	t.Run("control stays usable after the rules are fixed", func(t *testing.T) {
		require.NoError(t, f.SetRules())
		require.NoError(t, f.SetValue("anything"))
		assert.Equal(t, formkit.StatusValid, f.Status())
	})
}

func TestFieldDisable(t *testing.T) {
	f := formkit.NewField("", nonEmpty)
	require.Equal(t, formkit.StatusInvalid, f.Status())

	require.NoError(t, f.Disable())
	assert.Equal(t, formkit.StatusDisabled, f.Status())
	assert.Nil(t, f.Errors())
	assert.True(t, f.Disabled())
	assert.False(t, f.Enabled())

	t.Run("value updates are stored while disabled", func(t *testing.T) {
		require.NoError(t, f.SetValue("typed"))
		assert.Equal(t, "typed", f.Get())
		assert.Equal(t, formkit.StatusDisabled, f.Status())
	})

	t.Run("enable revalidates the current value", func(t *testing.T) {
		require.NoError(t, f.SetValue(""))
		require.NoError(t, f.Enable())
		assert.Equal(t, formkit.StatusInvalid, f.Status())
		assert.True(t, f.Errors().Has("required"))
	})
}
