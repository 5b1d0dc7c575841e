package rules

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/formkit"
)

// PlainText fails when the value carries any HTML markup. The strict policy
// strips everything; a value that survives stripping unchanged is plain
// text. Empty strings pass.
func PlainText() formkit.Rule[string] {
	return SafeHTML(bluemonday.StrictPolicy())
}

// SafeHTML fails when sanitizing the value under the given policy would
// change it, reporting the sanitized form as a replacement suggestion. A nil
// policy defaults to bluemonday's UGC policy. Empty strings pass.
func SafeHTML(policy *bluemonday.Policy) formkit.Rule[string] {
	if policy == nil {
		policy = bluemonday.UGCPolicy()
	}
	return func(value string) formkit.Errors {
		if value == "" {
			return nil
		}
		if sanitized := policy.Sanitize(value); sanitized != value {
			return formkit.Errors{KeyUnsafeHTML: HTMLDetail{Sanitized: sanitized}}
		}
		return nil
	}
}
