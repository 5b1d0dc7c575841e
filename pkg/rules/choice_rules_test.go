package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/rules"
)

func TestEnum(t *testing.T) {
	t.Run("passes for allowed member", func(t *testing.T) {
		rule := rules.Enum("monthly", "yearly")
		assert.Nil(t, rule("monthly"))
		assert.Nil(t, rule("yearly"))
	})

	t.Run("fails with allowed set in payload", func(t *testing.T) {
		errs := rules.Enum("monthly", "yearly")("weekly")
		detail, ok := errs.Get(rules.KeyEnum)
		assert.True(t, ok)
		assert.Equal(t, rules.EnumDetail{
			Allowed: []string{"monthly", "yearly"},
			Actual:  "weekly",
		}, detail)
	})

	t.Run("works with integer enums", func(t *testing.T) {
		rule := rules.Enum(1, 2, 3)
		assert.Nil(t, rule(2))
		assert.True(t, rule(4).Has(rules.KeyEnum))
	})

	t.Run("empty set rejects everything", func(t *testing.T) {
		assert.True(t, rules.Enum[string]()("anything").Has(rules.KeyEnum))
	})
}
