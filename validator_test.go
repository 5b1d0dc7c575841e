package formkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formkit"
)

func TestCompose(t *testing.T) {
	shorter := func(v string) formkit.Errors {
		if len(v) < 3 {
			return formkit.Errors{"minlength": 3}
		}
		return nil
	}
	noSpace := func(v string) formkit.Errors {
		for _, r := range v {
			if r == ' ' {
				return formkit.Errors{"pattern": "no spaces"}
			}
		}
		return nil
	}

	t.Run("passes when every rule passes", func(t *testing.T) {
		rule := formkit.Compose(shorter, noSpace)
		assert.Nil(t, rule("abc"))
	})

	t.Run("collects failures from all rules", func(t *testing.T) {
		rule := formkit.Compose(shorter, noSpace)
		errs := rule("a ")
		assert.True(t, errs.Has("minlength"))
		assert.True(t, errs.Has("pattern"))
	})

	t.Run("later rule wins on key collision", func(t *testing.T) {
		first := func(string) formkit.Errors { return formkit.Errors{"k": "first"} }
		second := func(string) formkit.Errors { return formkit.Errors{"k": "second"} }

		errs := formkit.Compose(first, second)("x")
		v, _ := errs.Get("k")
		assert.Equal(t, "second", v)
	})

	t.Run("skips nil rules", func(t *testing.T) {
		rule := formkit.Compose[string](nil, shorter, nil)
		assert.True(t, rule("a").Has("minlength"))
	})
}
