package formkit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrTypeMismatch is returned when a dynamically typed value cannot be
	// converted to the control's value type.
	ErrTypeMismatch = errors.New("formkit: value type mismatch")

	// ErrChildExists is returned when adding a child under a name that is
	// already registered on the group.
	ErrChildExists = errors.New("formkit: child already exists")

	// ErrNoSuchChild is returned when an operation references a child name
	// that is not registered on the group.
	ErrNoSuchChild = errors.New("formkit: no such child")

	// ErrIndexOutOfRange is returned when an array operation references an
	// index outside [0, Len()).
	ErrIndexOutOfRange = errors.New("formkit: index out of range")

	// ErrAlreadyAttached is returned when attaching a control that already
	// has a parent, or attaching a tree's root beneath one of its own
	// descendants.
	ErrAlreadyAttached = errors.New("formkit: control already attached")

	// ErrInvalidName is returned when registering a group child under an
	// empty name or a name containing a path separator.
	ErrInvalidName = errors.New("formkit: invalid child name")

	// ErrShapeMismatch is returned by strict SetValue on composites when the
	// supplied value does not cover the composite's children exactly.
	ErrShapeMismatch = errors.New("formkit: value shape mismatch")

	// ErrValidatorPanic is returned when a sync validator panics. The
	// recompute pass that hit the panic is abandoned; control state written
	// before the failing validator ran is preserved.
	ErrValidatorPanic = errors.New("formkit: validator panic")

	// ErrWatchClosed is returned by Wait when the subscription it relies on
	// is closed before the control settles.
	ErrWatchClosed = errors.New("formkit: watch subscription closed")
)

// Errors maps an error key to an arbitrary detail payload describing one
// failed validation rule. Keys are flat, rule-chosen identifiers such as
// "required" or "minlength"; payloads carry whatever the rule wants to expose
// to the caller (bool marker, struct with expected/actual, plain message).
//
// A nil or empty Errors means the validation passed. When several rules on
// one control report the same key, the rule that ran last wins.
type Errors map[string]any

// Error implements the error interface with a deterministic, key-sorted
// rendering. Useful for logs and test failure output; programmatic consumers
// should inspect keys instead.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "formkit: no validation errors"
	}
	return "formkit: validation failed: " + strings.Join(e.Keys(), ", ")
}

// Has reports whether the key is present.
func (e Errors) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Get returns the detail payload for key.
func (e Errors) Get(key string) (any, bool) {
	v, ok := e[key]
	return v, ok
}

// Keys returns all error keys in sorted order.
func (e Errors) Keys() []string {
	if len(e) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent shallow copy, or nil for an empty receiver.
func (e Errors) Clone() Errors {
	if len(e) == 0 {
		return nil
	}
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Merge combines the receiver with overlay into a new Errors value. Keys from
// overlay win on collision. Returns nil when both inputs are empty.
func (e Errors) Merge(overlay Errors) Errors {
	if len(e) == 0 {
		return overlay.Clone()
	}
	out := e.Clone()
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Errorf builds a single-key Errors whose payload is a formatted message.
// Handy for one-off custom rules.
func Errorf(key, format string, args ...any) Errors {
	return Errors{key: fmt.Sprintf(format, args...)}
}
