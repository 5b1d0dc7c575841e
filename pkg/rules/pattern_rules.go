package rules

import (
	"regexp"

	"github.com/dmitrymomot/formkit"
)

var (
	// Alphanumeric regex
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	// Alpha regex
	alphaRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

	// Numeric string regex
	numericStringRegex = regexp.MustCompile(`^[0-9]+$`)
)

// Pattern fails when the value does not match re. Empty strings pass.
func Pattern(re *regexp.Regexp) formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return formkit.Errors{KeyPattern: PatternDetail{
				RequiredPattern: re.String(),
				ActualValue:     value,
			}}
		}
		return nil
	}
}

// PatternString compiles pattern once and behaves like Pattern. It panics on
// an invalid pattern, mirroring regexp.MustCompile.
func PatternString(pattern string) formkit.Rule[string] {
	return Pattern(regexp.MustCompile(pattern))
}

// Alpha fails when the value contains anything but ASCII letters. Empty
// strings pass.
func Alpha() formkit.Rule[string] {
	return matchRule(alphaRegex, KeyAlpha)
}

// Alphanumeric fails when the value contains anything but ASCII letters and
// digits. Empty strings pass.
func Alphanumeric() formkit.Rule[string] {
	return matchRule(alphanumericRegex, KeyAlphanumeric)
}

// NumericString fails when the value contains anything but ASCII digits.
// Empty strings pass.
func NumericString() formkit.Rule[string] {
	return matchRule(numericStringRegex, KeyNumeric)
}

func matchRule(re *regexp.Regexp, key string) formkit.Rule[string] {
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		if !re.MatchString(value) {
			return formkit.Errors{key: true}
		}
		return nil
	}
}
