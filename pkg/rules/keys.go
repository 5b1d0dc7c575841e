package rules

// Canonical error keys reported by the rules in this package. Custom rules
// are free to reuse them so downstream projections (messages, CSS classes,
// HTTP payloads) treat built-in and custom failures uniformly.
const (
	KeyRequired     = "required"
	KeyMinLength    = "minlength"
	KeyMaxLength    = "maxlength"
	KeyLength       = "length"
	KeyPattern      = "pattern"
	KeyEmail        = "email"
	KeyURL          = "url"
	KeyPhone        = "phone"
	KeyUUID         = "uuid"
	KeyIP           = "ip"
	KeyAlpha        = "alpha"
	KeyAlphanumeric = "alphanumeric"
	KeyNumeric      = "numeric"
	KeyMin          = "min"
	KeyMax          = "max"
	KeyEnum         = "enum"
	KeyUnsafeHTML   = "unsafehtml"
)

// LengthDetail is the payload for the minlength, maxlength, and length keys.
type LengthDetail struct {
	RequiredLength int `json:"requiredLength"`
	ActualLength   int `json:"actualLength"`
}

// PatternDetail is the payload for the pattern key.
type PatternDetail struct {
	RequiredPattern string `json:"requiredPattern"`
	ActualValue     string `json:"actualValue"`
}

// MinDetail is the payload for the min key.
type MinDetail struct {
	Min    any `json:"min"`
	Actual any `json:"actual"`
}

// MaxDetail is the payload for the max key.
type MaxDetail struct {
	Max    any `json:"max"`
	Actual any `json:"actual"`
}

// EnumDetail is the payload for the enum key.
type EnumDetail struct {
	Allowed any `json:"allowed"`
	Actual  any `json:"actual"`
}

// HTMLDetail is the payload for the unsafehtml key. Sanitized is the value
// after the policy stripped everything it disallows, offered as a
// replacement suggestion.
type HTMLDetail struct {
	Sanitized string `json:"sanitized"`
}

// FieldsDetail is the payload for cross-field rules, naming the paths that
// participate in the violated constraint.
type FieldsDetail struct {
	Fields []string `json:"fields"`
}
