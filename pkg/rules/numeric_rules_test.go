package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/rules"
)

func TestMin(t *testing.T) {
	t.Parallel()
	t.Run("passes when value equals bound", func(t *testing.T) {
		assert.Nil(t, rules.Min(18)(18))
	})

	t.Run("passes when value exceeds bound", func(t *testing.T) {
		assert.Nil(t, rules.Min(18)(21))
	})

	t.Run("fails with bound and value in payload", func(t *testing.T) {
		errs := rules.Min(18)(17)
		detail, ok := errs.Get(rules.KeyMin)
		assert.True(t, ok)
		assert.Equal(t, rules.MinDetail{Min: 18, Actual: 17}, detail)
	})

	t.Run("works with floats", func(t *testing.T) {
		assert.Nil(t, rules.Min(0.5)(0.5))
		assert.True(t, rules.Min(0.5)(0.49).Has(rules.KeyMin))
	})

	t.Run("works with negative bounds", func(t *testing.T) {
		assert.Nil(t, rules.Min(-10)(-5))
		assert.True(t, rules.Min(-10)(-11).Has(rules.KeyMin))
	})
}

func TestMax(t *testing.T) {
	t.Parallel()
	t.Run("passes when value equals bound", func(t *testing.T) {
		assert.Nil(t, rules.Max(100)(100))
	})

	t.Run("fails with bound and value in payload", func(t *testing.T) {
		errs := rules.Max(100)(101)
		detail, ok := errs.Get(rules.KeyMax)
		assert.True(t, ok)
		assert.Equal(t, rules.MaxDetail{Max: 100, Actual: 101}, detail)
	})

	t.Run("works with unsigned types", func(t *testing.T) {
		assert.Nil(t, rules.Max(uint8(200))(uint8(200)))
		assert.True(t, rules.Max(uint8(200))(uint8(201)).Has(rules.KeyMax))
	})
}

func TestBetween(t *testing.T) {
	t.Parallel()
	t.Run("passes inside the range", func(t *testing.T) {
		rule := rules.Between(1, 10)
		assert.Nil(t, rule(1))
		assert.Nil(t, rule(5))
		assert.Nil(t, rule(10))
	})

	t.Run("reports under min when below", func(t *testing.T) {
		errs := rules.Between(1, 10)(0)
		assert.True(t, errs.Has(rules.KeyMin))
		assert.False(t, errs.Has(rules.KeyMax))
	})

	t.Run("reports under max when above", func(t *testing.T) {
		errs := rules.Between(1, 10)(11)
		assert.True(t, errs.Has(rules.KeyMax))
		assert.False(t, errs.Has(rules.KeyMin))
	})
}

func TestNonNegative(t *testing.T) {
	t.Parallel()
	t.Run("passes for zero and positive", func(t *testing.T) {
		assert.Nil(t, rules.NonNegative[int]()(0))
		assert.Nil(t, rules.NonNegative[float64]()(3.14))
	})

	t.Run("fails for negative", func(t *testing.T) {
		assert.True(t, rules.NonNegative[int]()(-1).Has(rules.KeyMin))
	})
}
