package rules

import (
	"reflect"

	"github.com/dmitrymomot/formkit"
)

// FieldsEqual reports under key when the controls at paths a and b hold
// different values. Paths that do not resolve pass: structural validity is
// the tree's concern, not this rule's. Typical use is password confirmation
// on the enclosing group.
func FieldsEqual(a, b, key string) formkit.CompositeRule {
	return func(v formkit.View) formkit.Errors {
		va, vb, ok := resolvePair(v, a, b)
		if !ok || reflect.DeepEqual(va.Value(), vb.Value()) {
			return nil
		}
		return formkit.Errors{key: FieldsDetail{Fields: []string{a, b}}}
	}
}

// FieldsDiffer reports under key when the controls at paths a and b hold the
// same value, e.g. a new password that must not repeat the current one.
// Paths that do not resolve pass.
func FieldsDiffer(a, b, key string) formkit.CompositeRule {
	return func(v formkit.View) formkit.Errors {
		va, vb, ok := resolvePair(v, a, b)
		if !ok || !reflect.DeepEqual(va.Value(), vb.Value()) {
			return nil
		}
		return formkit.Errors{key: FieldsDetail{Fields: []string{a, b}}}
	}
}

// RequiredTogether reports under key when some but not all of the controls
// at the given paths hold non-zero values. All empty and all set both pass,
// which suits optional address blocks and similar all-or-nothing clusters.
// The payload names the paths still missing a value.
func RequiredTogether(key string, paths ...string) formkit.CompositeRule {
	return func(v formkit.View) formkit.Errors {
		var set, unset []string
		for _, p := range paths {
			pv, ok := v.Lookup(p)
			if !ok {
				continue
			}
			if isZero(pv.Value()) {
				unset = append(unset, p)
			} else {
				set = append(set, p)
			}
		}
		if len(set) == 0 || len(unset) == 0 {
			return nil
		}
		return formkit.Errors{key: FieldsDetail{Fields: unset}}
	}
}

func resolvePair(v formkit.View, a, b string) (formkit.View, formkit.View, bool) {
	va, okA := v.Lookup(a)
	vb, okB := v.Lookup(b)
	if !okA || !okB {
		return nil, nil, false
	}
	return va, vb, true
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	default:
		return rv.IsZero()
	}
}
