package formkit

import (
	"context"
	"fmt"
	"reflect"
	"slices"
)

// Field is a leaf control holding a single value of type T.
//
// A field is born with a computed status: construction runs its sync
// validators against the initial value and, when they pass, starts async
// validation. Use the typed accessors (Get, SetValue) where the value type
// is known; the Control surface offers the dynamically typed equivalents.
type Field[T any] struct {
	node

	initial    T
	val        T
	normalize  func(T) T
	rules      []Rule[T]
	asyncRules []AsyncRule[T]
}

var _ Control = (*Field[string])(nil)

// NewField constructs a detached field with the given initial value and sync
// validators. A validator that panics during this initial run panics the
// constructor; that is a setup bug, not a runtime condition.
func NewField[T any](initial T, rules ...Rule[T]) *Field[T] {
	f := &Field[T]{
		initial: initial,
		val:     initial,
		rules:   slices.Clone(rules),
	}
	f.init(f, defaultEngineOptions())
	st := f.node.lockTree()
	err := f.revalidateLocked()
	st.mu.Unlock()
	if err != nil {
		panic(err)
	}
	return f
}

// WithAsync sets the field's async validators and revalidates. Meant for
// construction chains; panics on a sync validator panic like NewField does.
func (f *Field[T]) WithAsync(rules ...AsyncRule[T]) *Field[T] {
	if err := f.SetAsyncRules(rules...); err != nil {
		panic(err)
	}
	return f
}

// WithNormalizer installs a canonicalization step applied to every value
// before it is stored. Set it before the field receives values.
func (f *Field[T]) WithNormalizer(fn func(T) T) *Field[T] {
	st := f.node.lockTree()
	f.normalize = fn
	st.mu.Unlock()
	return f
}

// Get returns the field's current value.
func (f *Field[T]) Get() T {
	st := f.node.lockTree()
	v := f.val
	st.mu.Unlock()
	return v
}

// Initial returns the value Reset restores.
func (f *Field[T]) Initial() T {
	st := f.node.lockTree()
	v := f.initial
	st.mu.Unlock()
	return v
}

// SetValue replaces the field's value and triggers a full recompute from the
// field upward: sync validators rerun, async validation restarts, ancestor
// aggregates revalidate. The first value that differs from the initial one
// marks the field dirty.
func (f *Field[T]) SetValue(v T) error {
	st := f.node.lockTree()
	defer st.mu.Unlock()
	if err := f.setTypedLocked(v); err != nil {
		return err
	}
	return finishValueChangeLocked(f)
}

// ResetTo replaces the initial value and resets the field to it, clearing
// dirty and touched.
func (f *Field[T]) ResetTo(v T) error {
	st := f.node.lockTree()
	defer st.mu.Unlock()
	f.initial = v
	f.resetValuesLocked()
	refreshFlagsUpLocked(f)
	if err := revalidateSubtreeLocked(f, true); err != nil {
		return err
	}
	if p := parentImpl(f); p != nil {
		return revalidateUpLocked(p, true)
	}
	return nil
}

// SetRules replaces the sync validators and revalidates.
func (f *Field[T]) SetRules(rules ...Rule[T]) error {
	return f.mutateRules(func() { f.rules = slices.Clone(rules) })
}

// AddRules appends sync validators and revalidates.
func (f *Field[T]) AddRules(rules ...Rule[T]) error {
	return f.mutateRules(func() { f.rules = append(f.rules, rules...) })
}

// ClearRules removes all sync validators and revalidates.
func (f *Field[T]) ClearRules() error {
	return f.mutateRules(func() { f.rules = nil })
}

// SetAsyncRules replaces the async validators and revalidates, superseding
// any generation in flight.
func (f *Field[T]) SetAsyncRules(rules ...AsyncRule[T]) error {
	return f.mutateRules(func() { f.asyncRules = slices.Clone(rules) })
}

// AddAsyncRules appends async validators and revalidates.
func (f *Field[T]) AddAsyncRules(rules ...AsyncRule[T]) error {
	return f.mutateRules(func() { f.asyncRules = append(f.asyncRules, rules...) })
}

// ClearAsyncRules removes all async validators and revalidates.
func (f *Field[T]) ClearAsyncRules() error {
	return f.mutateRules(func() { f.asyncRules = nil })
}

func (f *Field[T]) mutateRules(mutate func()) error {
	st := f.node.lockTree()
	defer st.mu.Unlock()
	mutate()
	return revalidateUpLocked(f, false)
}

// --- internal contract -------------------------------------------------------

func (f *Field[T]) setTypedLocked(v T) error {
	if f.normalize != nil {
		v = f.normalize(v)
	}
	f.val = v
	if !f.selfDirty && !reflect.DeepEqual(v, f.initial) {
		f.selfDirty = true
	}
	if err := f.revalidateLocked(); err != nil {
		return err
	}
	f.node.emitValueLocked()
	return nil
}

func (f *Field[T]) revalidateLocked() error {
	n := &f.node
	if n.disabled {
		n.cancelAsyncLocked()
		n.syncErrs = nil
		n.applyStatusLocked(StatusDisabled, nil)
		return nil
	}
	syncErrs, err := runRules(f.rules, f.val)
	if err != nil {
		return err
	}
	n.syncErrs = syncErrs
	if len(syncErrs) > 0 {
		// Async validation is withheld while sync validators fail; no
		// point asking a server about a value that is locally invalid.
		n.cancelAsyncLocked()
	} else {
		beginAsyncLocked(f, f.bindAsyncLocked())
	}
	f.refreshStatusLocked()
	return nil
}

func (f *Field[T]) bindAsyncLocked() []asyncRun {
	if len(f.asyncRules) == 0 {
		return nil
	}
	v := f.val
	runs := make([]asyncRun, 0, len(f.asyncRules))
	for _, rule := range f.asyncRules {
		if rule == nil {
			continue
		}
		runs = append(runs, func(ctx context.Context) (Errors, error) {
			return invokeAsync(ctx, rule, v)
		})
	}
	return runs
}

func (f *Field[T]) refreshStatusLocked() {
	n := &f.node
	switch {
	case n.disabled:
		n.applyStatusLocked(StatusDisabled, nil)
	case len(n.syncErrs) > 0:
		n.applyStatusLocked(StatusInvalid, n.syncErrs.Clone())
	case n.runsLeft > 0:
		n.applyStatusLocked(StatusPending, nil)
	case len(n.asyncErrs) > 0:
		n.applyStatusLocked(StatusInvalid, n.asyncErrs.Clone())
	default:
		n.applyStatusLocked(StatusValid, nil)
	}
}

func (f *Field[T]) eachChild(func(implControl) bool) {}

func (f *Field[T]) valueLocked() any    { return f.val }
func (f *Field[T]) rawValueLocked() any { return f.val }

func (f *Field[T]) setAnyLocked(v any) error {
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: field holds %T, got %T", ErrTypeMismatch, f.val, v)
	}
	return f.setTypedLocked(tv)
}

func (f *Field[T]) patchAnyLocked(v any) error { return f.setAnyLocked(v) }

func (f *Field[T]) resetValuesLocked() {
	f.val = f.initial
	f.selfDirty, f.dirty = false, false
	f.selfTouched, f.touched = false, false
}
