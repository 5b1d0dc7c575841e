package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

const accountsAPI = `
openapi: 3.0.3
info:
  title: Accounts API
  version: 1.0.0
paths:
  /signup:
    post:
      operationId: createAccount
      summary: Create an account
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [email, password]
              properties:
                email:
                  type: string
                  format: email
                  maxLength: 64
                password:
                  type: string
                  minLength: 8
                age:
                  type: integer
                  minimum: 18
                  maximum: 130
                plan:
                  type: string
                  enum: [free, pro]
                  default: free
                newsletter:
                  type: boolean
                  default: true
                tags:
                  type: array
                  minItems: 2
                  items:
                    type: string
                    maxLength: 16
      responses:
        '201':
          description: Created
  /health:
    get:
      operationId: health
      responses:
        '200':
          description: OK
`

func TestFromOpenAPI(t *testing.T) {
	t.Parallel()

	t.Run("builds the request body form", func(t *testing.T) {
		t.Parallel()
		form, err := schema.FromOpenAPI(context.Background(), []byte(accountsAPI), "createAccount", nil)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{
			"email", "password", "age", "plan", "newsletter", "tags",
		}, form.Names())

		email, ok := form.Lookup("email")
		require.True(t, ok)
		assert.True(t, email.Errors().Has("required"), "required membership maps to the required rule")

		password, ok := form.Lookup("password")
		require.True(t, ok)
		assert.True(t, password.Errors().Has("minlength"))

		age, ok := form.Lookup("age")
		require.True(t, ok)
		require.NoError(t, age.SetAny(int64(15)))
		assert.True(t, age.Errors().Has("min"))
		require.NoError(t, age.SetAny(int64(34)))
		assert.True(t, age.Valid())

		plan, ok := form.Lookup("plan")
		require.True(t, ok)
		planField, ok := plan.(*formkit.Field[string])
		require.True(t, ok)
		assert.Equal(t, "free", planField.Get())
		require.NoError(t, planField.SetValue("enterprise"))
		assert.True(t, planField.Errors().Has("enum"))

		newsletter, ok := form.Lookup("newsletter")
		require.True(t, ok)
		nlField, ok := newsletter.(*formkit.Field[bool])
		require.True(t, ok)
		assert.True(t, nlField.Get())

		tags, ok := form.Lookup("tags")
		require.True(t, ok)
		tagsArr, ok := tags.(*formkit.Array)
		require.True(t, ok)
		assert.Equal(t, 2, tagsArr.Len(), "minItems sets the initial element count")
	})

	t.Run("string formats map to format rules", func(t *testing.T) {
		t.Parallel()
		form, err := schema.FromOpenAPI(context.Background(), []byte(accountsAPI), "createAccount", nil)
		require.NoError(t, err)

		email, ok := form.Lookup("email")
		require.True(t, ok)
		require.NoError(t, email.SetAny("not-an-email"))
		assert.True(t, email.Errors().Has("email"))
	})

	t.Run("uses the operation summary as the title", func(t *testing.T) {
		t.Parallel()
		spec, err := schema.ParseOpenAPI(context.Background(), []byte(accountsAPI), "createAccount")
		require.NoError(t, err)
		assert.Equal(t, "Create an account", spec.Title)
	})

	t.Run("unknown operation", func(t *testing.T) {
		t.Parallel()
		_, err := schema.FromOpenAPI(context.Background(), []byte(accountsAPI), "deleteAccount", nil)
		require.ErrorIs(t, err, schema.ErrNoOperation)
		assert.ErrorContains(t, err, "deleteAccount")
	})

	t.Run("operation without a request body", func(t *testing.T) {
		t.Parallel()
		_, err := schema.FromOpenAPI(context.Background(), []byte(accountsAPI), "health", nil)
		assert.ErrorIs(t, err, schema.ErrNoRequestBody)
	})

	t.Run("invalid document", func(t *testing.T) {
		t.Parallel()
		_, err := schema.FromOpenAPI(context.Background(), []byte("\x00not a document"), "x", nil)
		assert.ErrorIs(t, err, schema.ErrInvalidDocument)
	})
}
