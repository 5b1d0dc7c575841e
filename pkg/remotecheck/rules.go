package remotecheck

import (
	"context"

	"github.com/dmitrymomot/formkit"
)

// Error keys reported by the rules in this package.
const (
	// KeyUnique marks a value that is already present in the store.
	KeyUnique = "unique"

	// KeyUnknown marks a value the store does not know.
	KeyUnknown = "unknown"
)

// Detail is the payload reported under KeyUnique and KeyUnknown.
type Detail struct {
	Value string `json:"value"`
}

// Unique builds an async rule that fails when the checker finds the value,
// the canonical "email already registered" check. Empty values pass without
// a store round trip; pair with rules.Required when the field is mandatory.
//
// A checker error is returned as the rule's error, which the engine treats
// as an author fault: the control stays pending and the fault goes to the
// tree's error handler instead of becoming a validation verdict.
func Unique(c Checker) formkit.AsyncRule[string] {
	return func(ctx context.Context, value string) (formkit.Errors, error) {
		if value == "" {
			return nil, nil
		}
		exists, err := c.Exists(ctx, value)
		if err != nil {
			return nil, err
		}
		if exists {
			return formkit.Errors{KeyUnique: Detail{Value: value}}, nil
		}
		return nil, nil
	}
}

// Exists builds an async rule that fails when the checker does not find the
// value, for inputs that must reference known records (invite codes, coupon
// codes, referrer handles). Empty values pass without a store round trip.
func Exists(c Checker) formkit.AsyncRule[string] {
	return func(ctx context.Context, value string) (formkit.Errors, error) {
		if value == "" {
			return nil, nil
		}
		exists, err := c.Exists(ctx, value)
		if err != nil {
			return nil, err
		}
		if !exists {
			return formkit.Errors{KeyUnknown: Detail{Value: value}}, nil
		}
		return nil, nil
	}
}
