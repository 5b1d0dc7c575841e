package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit/pkg/rules"
)

func TestRequired(t *testing.T) {
	t.Run("passes for non-empty string", func(t *testing.T) {
		assert.Nil(t, rules.Required()("hello"))
	})

	t.Run("fails for empty string", func(t *testing.T) {
		errs := rules.Required()("")
		assert.True(t, errs.Has(rules.KeyRequired))
	})

	t.Run("passes for whitespace-only string", func(t *testing.T) {
		assert.Nil(t, rules.Required()("   "))
	})
}

func TestNonBlank(t *testing.T) {
	t.Run("passes for string with content", func(t *testing.T) {
		assert.Nil(t, rules.NonBlank()("  John  "))
	})

	t.Run("fails for empty string", func(t *testing.T) {
		assert.True(t, rules.NonBlank()("").Has(rules.KeyRequired))
	})

	t.Run("fails for whitespace-only string", func(t *testing.T) {
		assert.True(t, rules.NonBlank()(" \t\n ").Has(rules.KeyRequired))
	})
}

func TestNotZero(t *testing.T) {
	t.Run("passes for non-zero int", func(t *testing.T) {
		assert.Nil(t, rules.NotZero[int]()(42))
	})

	t.Run("fails for zero int", func(t *testing.T) {
		assert.True(t, rules.NotZero[int]()(0).Has(rules.KeyRequired))
	})

	t.Run("fails for zero time-like struct", func(t *testing.T) {
		type version struct{ Major, Minor int }
		assert.True(t, rules.NotZero[version]()(version{}).Has(rules.KeyRequired))
	})

	t.Run("passes for non-zero bool", func(t *testing.T) {
		assert.Nil(t, rules.NotZero[bool]()(true))
	})
}

func TestRequiredTrue(t *testing.T) {
	t.Run("passes for true", func(t *testing.T) {
		assert.Nil(t, rules.RequiredTrue()(true))
	})

	t.Run("fails for false", func(t *testing.T) {
		assert.True(t, rules.RequiredTrue()(false).Has(rules.KeyRequired))
	})
}

func TestMinLength(t *testing.T) {
	t.Run("passes when string equals minimum length", func(t *testing.T) {
		assert.Nil(t, rules.MinLength(5)("12345"))
	})

	t.Run("passes when string exceeds minimum length", func(t *testing.T) {
		assert.Nil(t, rules.MinLength(5)("123456"))
	})

	t.Run("fails when string is shorter than minimum", func(t *testing.T) {
		errs := rules.MinLength(5)("1234")
		detail, ok := errs.Get(rules.KeyMinLength)
		assert.True(t, ok)
		assert.Equal(t, rules.LengthDetail{RequiredLength: 5, ActualLength: 4}, detail)
	})

	t.Run("fails for empty string", func(t *testing.T) {
		errs := rules.MinLength(3)("")
		detail, ok := errs.Get(rules.KeyMinLength)
		assert.True(t, ok)
		assert.Equal(t, rules.LengthDetail{RequiredLength: 3, ActualLength: 0}, detail)
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		assert.Nil(t, rules.MinLength(3)("üüü"))
	})
}

func TestMaxLength(t *testing.T) {
	t.Run("passes when string equals maximum length", func(t *testing.T) {
		assert.Nil(t, rules.MaxLength(5)("12345"))
	})

	t.Run("fails when string exceeds maximum length", func(t *testing.T) {
		errs := rules.MaxLength(5)("123456")
		detail, ok := errs.Get(rules.KeyMaxLength)
		assert.True(t, ok)
		assert.Equal(t, rules.LengthDetail{RequiredLength: 5, ActualLength: 6}, detail)
	})

	t.Run("passes for empty string", func(t *testing.T) {
		assert.Nil(t, rules.MaxLength(5)(""))
	})

	t.Run("counts runes not bytes", func(t *testing.T) {
		assert.Nil(t, rules.MaxLength(3)("üüü"))
	})
}

func TestLength(t *testing.T) {
	t.Run("passes when string equals exact length", func(t *testing.T) {
		assert.Nil(t, rules.Length(5)("12345"))
	})

	t.Run("fails when string is shorter", func(t *testing.T) {
		errs := rules.Length(5)("1234")
		detail, ok := errs.Get(rules.KeyLength)
		assert.True(t, ok)
		assert.Equal(t, rules.LengthDetail{RequiredLength: 5, ActualLength: 4}, detail)
	})

	t.Run("fails when string is longer", func(t *testing.T) {
		assert.True(t, rules.Length(5)("123456").Has(rules.KeyLength))
	})
}
