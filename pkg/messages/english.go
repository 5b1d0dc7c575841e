package messages

// english covers the error keys of the built-in rule catalog plus the
// remote-check keys. Keys are plain strings rather than the rule packages'
// constants so this package stays free of their dependencies; the strings
// are the cross-package contract.
var english = map[string]string{
	"required":     "This field is required.",
	"minlength":    "Must be at least %{requiredLength} characters.",
	"maxlength":    "Must be at most %{requiredLength} characters.",
	"length":       "Must be exactly %{requiredLength} characters.",
	"pattern":      "Does not match the required pattern.",
	"email":        "Must be a valid email address.",
	"url":          "Must be a valid URL.",
	"phone":        "Must be a valid phone number.",
	"uuid":         "Must be a valid UUID.",
	"ip":           "Must be a valid IP address.",
	"alpha":        "Must contain only letters.",
	"alphanumeric": "Must contain only letters and digits.",
	"numeric":      "Must contain only digits.",
	"min":          "Must be at least %{min}.",
	"max":          "Must be at most %{max}.",
	"enum":         "Must be one of: %{allowed}.",
	"unsafehtml":   "Must not contain HTML markup.",
	"unique":       "This value is already taken.",
	"unknown":      "This value was not found.",
}
