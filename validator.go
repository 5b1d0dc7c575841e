package formkit

import (
	"context"
	"errors"
	"fmt"
)

// Rule is a synchronous validator for a value of type T. It must be a pure
// function of the value: no I/O, no retained references, no mutation. A nil
// or empty result means the value passed.
type Rule[T any] func(value T) Errors

// AsyncRule is an asynchronous validator for a value of type T. It runs on
// its own goroutine against an immutable snapshot of the value and must
// honor ctx cancellation. The Errors result expresses validation outcome;
// the error result signals the rule itself failed (network down, bad query)
// rather than the value being invalid.
type AsyncRule[T any] func(ctx context.Context, value T) (Errors, error)

// CompositeRule is a synchronous validator for a group or array. It receives
// a read-only view of the composite's subtree so it can express cross-field
// constraints. The view is only valid for the duration of the call and must
// not be retained.
type CompositeRule func(view View) Errors

// AsyncCompositeRule is an asynchronous validator for a group or array. It
// receives the composite's aggregate value as a detached snapshot, never a
// live view of the tree.
type AsyncCompositeRule func(ctx context.Context, value any) (Errors, error)

// Compose folds several rules into one. Rules run in order and their results
// merge key-by-key, later rules winning on key collision.
func Compose[T any](rules ...Rule[T]) Rule[T] {
	return func(value T) Errors {
		var out Errors
		for _, rule := range rules {
			if rule == nil {
				continue
			}
			out = out.Merge(rule(value))
		}
		return out
	}
}

// runRules executes sync rules against v, merging results last-wins. A panic
// in any rule aborts the run and surfaces as ErrValidatorPanic.
func runRules[T any](rules []Rule[T], v T) (errs Errors, err error) {
	defer func() {
		if r := recover(); r != nil {
			errs = nil
			err = errors.Join(ErrValidatorPanic, fmt.Errorf("%v", r))
		}
	}()
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		errs = errs.Merge(rule(v))
	}
	return errs, nil
}

// runCompositeRules mirrors runRules for view-based rules.
func runCompositeRules(rules []CompositeRule, view View) (errs Errors, err error) {
	defer func() {
		if r := recover(); r != nil {
			errs = nil
			err = errors.Join(ErrValidatorPanic, fmt.Errorf("%v", r))
		}
	}()
	for _, rule := range rules {
		if rule == nil {
			continue
		}
		errs = errs.Merge(rule(view))
	}
	return errs, nil
}

// invokeAsync runs one async rule, converting panics into rule faults so a
// crashing validator never kills the process.
func invokeAsync[T any](ctx context.Context, rule AsyncRule[T], v T) (errs Errors, err error) {
	defer func() {
		if r := recover(); r != nil {
			errs = nil
			err = fmt.Errorf("formkit: async validator panic: %v", r)
		}
	}()
	return rule(ctx, v)
}

// invokeAsyncComposite mirrors invokeAsync for aggregate-value rules.
func invokeAsyncComposite(ctx context.Context, rule AsyncCompositeRule, v any) (errs Errors, err error) {
	defer func() {
		if r := recover(); r != nil {
			errs = nil
			err = fmt.Errorf("formkit: async validator panic: %v", r)
		}
	}()
	return rule(ctx, v)
}
