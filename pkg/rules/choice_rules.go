package rules

import "github.com/dmitrymomot/formkit"

// Enum fails when the value is not one of the allowed members. Membership is
// checked by equality, so the rule suits small closed sets such as select
// options.
func Enum[T comparable](allowed ...T) formkit.Rule[T] {
	set := make(map[T]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return func(value T) formkit.Errors {
		if _, ok := set[value]; !ok {
			return formkit.Errors{KeyEnum: EnumDetail{Allowed: allowed, Actual: value}}
		}
		return nil
	}
}
