package rules

import "github.com/dmitrymomot/formkit"

// Numeric covers the built-in integer and float types and their named
// derivatives.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Min fails when the value is below bound.
func Min[T Numeric](bound T) formkit.Rule[T] {
	return func(value T) formkit.Errors {
		if value < bound {
			return formkit.Errors{KeyMin: MinDetail{Min: bound, Actual: value}}
		}
		return nil
	}
}

// Max fails when the value is above bound.
func Max[T Numeric](bound T) formkit.Rule[T] {
	return func(value T) formkit.Errors {
		if value > bound {
			return formkit.Errors{KeyMax: MaxDetail{Max: bound, Actual: value}}
		}
		return nil
	}
}

// Between fails when the value lies outside [lo, hi], reporting under the
// min or max key depending on which bound was crossed.
func Between[T Numeric](lo, hi T) formkit.Rule[T] {
	return func(value T) formkit.Errors {
		switch {
		case value < lo:
			return formkit.Errors{KeyMin: MinDetail{Min: lo, Actual: value}}
		case value > hi:
			return formkit.Errors{KeyMax: MaxDetail{Max: hi, Actual: value}}
		default:
			return nil
		}
	}
}

// NonNegative fails when the value is below zero.
func NonNegative[T Numeric]() formkit.Rule[T] {
	return Min(T(0))
}
