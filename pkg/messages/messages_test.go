package messages_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/messages"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()
	catalog := messages.Default()

	t.Run("renders plain keys", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "This field is required.", catalog.Message("en", "required", true))
	})

	t.Run("interpolates rule payloads", func(t *testing.T) {
		t.Parallel()
		errs := rules.MinLength(8)("short")
		require.True(t, errs.Has(rules.KeyMinLength))

		msgs := catalog.Localize("en", errs)
		assert.Equal(t, "Must be at least 8 characters.", msgs[rules.KeyMinLength])
	})

	t.Run("joins list payloads", func(t *testing.T) {
		t.Parallel()
		errs := rules.Enum("red", "green")("blue")
		assert.Equal(t, "Must be one of: red, green.", catalog.First("en", errs))
	})

	t.Run("unknown key renders as itself", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "customCheck", catalog.Message("en", "customCheck", nil))
	})
}

func TestLocaleMatching(t *testing.T) {
	t.Parallel()
	catalog := messages.Default()
	require.NoError(t, catalog.Add("de", map[string]string{
		"required": "Pflichtfeld.",
	}))

	t.Run("exact tag", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Pflichtfeld.", catalog.Message("de", "required", true))
	})

	t.Run("regional variant matches base language", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Pflichtfeld.", catalog.Message("de-AT", "required", true))
	})

	t.Run("accept-language header", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Pflichtfeld.",
			catalog.Message("de-CH,de;q=0.9,en;q=0.5", "required", true))
	})

	t.Run("unsupported locale falls back to the first registered", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "This field is required.", catalog.Message("fr", "required", true))
	})

	t.Run("untranslated key falls back to the first registered", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Must be a valid email address.", catalog.Message("de", "email", true))
	})
}

func TestAdd(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed locales", func(t *testing.T) {
		t.Parallel()
		catalog := messages.New()
		err := catalog.Add("not a locale", nil)
		assert.ErrorIs(t, err, messages.ErrInvalidLocale)
	})

	t.Run("overrides merge over existing templates", func(t *testing.T) {
		t.Parallel()
		catalog := messages.Default()
		require.NoError(t, catalog.Add("en", map[string]string{"required": "Fill this in."}))

		assert.Equal(t, "Fill this in.", catalog.Message("en", "required", true))
		assert.Equal(t, "Must be a valid email address.", catalog.Message("en", "email", true))
	})

	t.Run("registration order fixes the fallback", func(t *testing.T) {
		t.Parallel()
		catalog := messages.Default()
		require.NoError(t, catalog.Add("de", map[string]string{"required": "Pflichtfeld."}))
		assert.Equal(t, []string{"en", "de"}, catalog.Locales())
	})
}

func TestEmptyInputs(t *testing.T) {
	t.Parallel()

	t.Run("empty catalog renders keys", func(t *testing.T) {
		t.Parallel()
		catalog := messages.New()
		assert.Equal(t, "required", catalog.Message("en", "required", true))
	})

	t.Run("empty errors", func(t *testing.T) {
		t.Parallel()
		catalog := messages.Default()
		assert.Nil(t, catalog.Localize("en", nil))
		assert.Empty(t, catalog.First("en", formkit.Errors{}))
	})

	t.Run("unknown placeholder stays literal", func(t *testing.T) {
		t.Parallel()
		catalog := messages.New()
		require.NoError(t, catalog.Add("en", map[string]string{"odd": "needs %{missing}"}))
		assert.Equal(t, "needs %{missing}", catalog.Message("en", "odd", rules.LengthDetail{RequiredLength: 2}))
	})
}
