package httpbind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/httpbind"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

func profileForm(t *testing.T) *formkit.Group {
	t.Helper()
	return formkit.MustGroup(map[string]formkit.Control{
		"email":      formkit.NewField("", rules.Required(), rules.Email()),
		"age":        formkit.NewField(int64(0)),
		"score":      formkit.NewField(0.0),
		"newsletter": formkit.NewField(false),
		"address": formkit.MustGroup(map[string]formkit.Control{
			"street": formkit.NewField(""),
		}),
		"tags": formkit.MustArray([]formkit.Control{
			formkit.NewField(""),
			formkit.NewField(""),
		}),
	})
}

func formRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func fieldValue[T any](t *testing.T, form *formkit.Group, path string) T {
	t.Helper()
	c, ok := form.Lookup(path)
	require.True(t, ok, "no control at %q", path)
	f, ok := c.(*formkit.Field[T])
	require.True(t, ok, "control at %q holds %T", path, c.RawValue())
	return f.Get()
}

func TestBindForm(t *testing.T) {
	t.Parallel()

	t.Run("binds dotted paths and coerces types", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := formRequest("email=hero%40example.com&age=34&score=0.9&newsletter=on&address.street=1+Main+St&tags.0=go&tags.1=forms")

		require.NoError(t, httpbind.BindForm(req, form))
		assert.Equal(t, "hero@example.com", fieldValue[string](t, form, "email"))
		assert.Equal(t, int64(34), fieldValue[int64](t, form, "age"))
		assert.InDelta(t, 0.9, fieldValue[float64](t, form, "score"), 0)
		assert.True(t, fieldValue[bool](t, form, "newsletter"))
		assert.Equal(t, "1 Main St", fieldValue[string](t, form, "address.street"))
		assert.Equal(t, "go", fieldValue[string](t, form, "tags.0"))
		assert.Equal(t, "forms", fieldValue[string](t, form, "tags.1"))
		assert.True(t, form.Valid())
	})

	t.Run("a repeated key fills array elements in order", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := formRequest("email=a%40b.co&tags=go&tags=web")

		require.NoError(t, httpbind.BindForm(req, form))
		assert.Equal(t, "go", fieldValue[string](t, form, "tags.0"))
		assert.Equal(t, "web", fieldValue[string](t, form, "tags.1"))
	})

	t.Run("too many values for an array", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := formRequest("tags=a&tags=b&tags=c")

		err := httpbind.BindForm(req, form)
		require.ErrorIs(t, err, httpbind.ErrBadValue)
		assert.ErrorContains(t, err, `field "tags"`)
	})

	t.Run("unknown keys ride along", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := formRequest("csrf_token=abc123&submit=Save&email=a%40b.co")

		require.NoError(t, httpbind.BindForm(req, form))
		assert.Equal(t, "a@b.co", fieldValue[string](t, form, "email"))
	})

	t.Run("unsubmitted controls keep their value", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		street, ok := form.Lookup("address.street")
		require.True(t, ok)
		require.NoError(t, street.SetAny("5 Oak Ave"))

		req := formRequest("email=a%40b.co")
		require.NoError(t, httpbind.BindForm(req, form))
		assert.Equal(t, "5 Oak Ave", fieldValue[string](t, form, "address.street"))
	})

	t.Run("rejects text that is not a number", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := formRequest("age=unknown")

		err := httpbind.BindForm(req, form)
		require.ErrorIs(t, err, httpbind.ErrBadValue)
		assert.ErrorContains(t, err, `field "age"`)
	})

	t.Run("rejects a wrong media type", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader("email=a"))
		req.Header.Set("Content-Type", "text/plain")

		assert.ErrorIs(t, httpbind.BindForm(req, form), httpbind.ErrUnsupportedMediaType)
	})

	t.Run("rejects a missing content type", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader("email=a"))

		assert.ErrorIs(t, httpbind.BindForm(req, form), httpbind.ErrMissingContentType)
	})
}

func TestBindQuery(t *testing.T) {
	t.Parallel()

	t.Run("binds query parameters", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := httptest.NewRequest(http.MethodGet, "/profile?email=hero%40example.com&age=41&newsletter=false", nil)

		require.NoError(t, httpbind.BindQuery(req, form))
		assert.Equal(t, "hero@example.com", fieldValue[string](t, form, "email"))
		assert.Equal(t, int64(41), fieldValue[int64](t, form, "age"))
		assert.False(t, fieldValue[bool](t, form, "newsletter"))
	})

	t.Run("needs no content type", func(t *testing.T) {
		t.Parallel()
		form := profileForm(t)
		req := httptest.NewRequest(http.MethodGet, "/profile?email=a%40b.co", nil)

		require.NoError(t, httpbind.BindQuery(req, form))
	})
}
