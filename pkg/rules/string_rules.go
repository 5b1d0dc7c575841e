package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrymomot/formkit"
)

// Required fails on the empty string. Whitespace counts as content; see
// NonBlank for the trimming variant.
func Required() formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return formkit.Errors{KeyRequired: true}
		}
		return nil
	}
}

// NonBlank fails when the string is empty after trimming whitespace.
func NonBlank() formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if strings.TrimSpace(value) == "" {
			return formkit.Errors{KeyRequired: true}
		}
		return nil
	}
}

// NotZero fails when a comparable value equals its type's zero value.
// Reports under the required key.
func NotZero[T comparable]() formkit.Rule[T] {
	return func(value T) formkit.Errors {
		var zero T
		if value == zero {
			return formkit.Errors{KeyRequired: true}
		}
		return nil
	}
}

// RequiredTrue fails unless the value is true. Meant for consent checkboxes
// and similar must-accept inputs; reports under the required key.
func RequiredTrue() formkit.Rule[bool] {
	return func(value bool) formkit.Errors {
		if !value {
			return formkit.Errors{KeyRequired: true}
		}
		return nil
	}
}

// MinLength fails when the string is shorter than n runes. The empty string
// fails like any other short value.
func MinLength(n int) formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if actual := utf8.RuneCountInString(value); actual < n {
			return formkit.Errors{KeyMinLength: LengthDetail{
				RequiredLength: n,
				ActualLength:   actual,
			}}
		}
		return nil
	}
}

// MaxLength fails when the string is longer than n runes.
func MaxLength(n int) formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if actual := utf8.RuneCountInString(value); actual > n {
			return formkit.Errors{KeyMaxLength: LengthDetail{
				RequiredLength: n,
				ActualLength:   actual,
			}}
		}
		return nil
	}
}

// Length fails when the string is not exactly n runes long.
func Length(n int) formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if actual := utf8.RuneCountInString(value); actual != n {
			return formkit.Errors{KeyLength: LengthDetail{
				RequiredLength: n,
				ActualLength:   actual,
			}}
		}
		return nil
	}
}
