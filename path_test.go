package formkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
)

func profileTree(t *testing.T) *formkit.Group {
	t.Helper()
	return formkit.MustGroup(map[string]formkit.Control{
		"user": formkit.MustGroup(map[string]formkit.Control{
			"name": formkit.NewField("john"),
		}),
		"emails": formkit.MustArray([]formkit.Control{
			formkit.NewField("a@x.co"),
			formkit.NewField("b@x.co"),
		}),
	})
}

func TestLookup(t *testing.T) {
	root := profileTree(t)

	t.Run("resolves nested paths", func(t *testing.T) {
		assert.Equal(t, "john", mustLookup(t, root, "user.name").Value())
		assert.Equal(t, "b@x.co", mustLookup(t, root, "emails.1").Value())
	})

	t.Run("empty path resolves to the control itself", func(t *testing.T) {
		self, ok := root.Lookup("")
		require.True(t, ok)
		assert.Same(t, formkit.Control(root), self)
	})

	t.Run("is relative to the receiver", func(t *testing.T) {
		user := mustLookup(t, root, "user")
		assert.Equal(t, "john", mustLookup(t, user, "name").Value())
	})

	t.Run("misses report false", func(t *testing.T) {
		for _, path := range []string{
			"user.missing",
			"emails.9",
			"emails.-1",
			"emails.x",
			"user.name.deeper", // leaf has no children
			".user",
			"user.",
			"user..name",
		} {
			_, ok := root.Lookup(path)
			assert.False(t, ok, "path %q", path)
		}
	})
}

func TestPath(t *testing.T) {
	root := profileTree(t)

	assert.Equal(t, "", root.Path())
	assert.Equal(t, "user", mustLookup(t, root, "user").Path())
	assert.Equal(t, "user.name", mustLookup(t, root, "user.name").Path())
	assert.Equal(t, "emails.1", mustLookup(t, root, "emails.1").Path())

	t.Run("array paths follow renumbering", func(t *testing.T) {
		emails := mustLookup(t, root, "emails").(*formkit.Array)
		second := mustLookup(t, root, "emails.1")

		require.NoError(t, emails.Remove(0))
		assert.Equal(t, "emails.0", second.Path())
	})
}

func TestParentRoot(t *testing.T) {
	root := profileTree(t)
	name := mustLookup(t, root, "user.name")
	user := mustLookup(t, root, "user")

	assert.Same(t, formkit.Control(user), name.Parent())
	assert.Same(t, formkit.Control(root), name.Root())
	assert.Same(t, formkit.Control(root), root.Root())
	assert.Nil(t, root.Parent())
}
