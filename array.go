package formkit

import (
	"context"
	"fmt"
	"slices"
	"strconv"
)

// Array is a composite control with ordered, homogeneous-by-convention
// children addressed by index. Structural edits renumber the children, so a
// path like "emails.2" always refers to the current third element.
type Array struct {
	node

	items      []implControl
	rules      []CompositeRule
	asyncRules []AsyncCompositeRule
}

var _ Control = (*Array)(nil)

// NewArray constructs a detached array adopting the given children in order.
// Each child must be the root of its own tree.
func NewArray(children []Control, rules ...CompositeRule) (*Array, error) {
	a := &Array{
		items: make([]implControl, 0, len(children)),
		rules: slices.Clone(rules),
	}
	a.init(a, defaultEngineOptions())

	for i, c := range children {
		if err := a.insert(i, c); err != nil {
			return nil, err
		}
	}

	st := a.node.lockTree()
	err := a.revalidateLocked()
	refreshFlagsUpLocked(a)
	st.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return a, nil
}

// MustArray is NewArray that panics on error.
func MustArray(children []Control, rules ...CompositeRule) *Array {
	a, err := NewArray(children, rules...)
	if err != nil {
		panic(err)
	}
	return a
}

// WithAsync sets the array's async validators and revalidates. Meant for
// construction chains; panics if a sync validator panics.
func (a *Array) WithAsync(rules ...AsyncCompositeRule) *Array {
	if err := a.SetAsyncRules(rules...); err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of elements.
func (a *Array) Len() int {
	st := a.node.lockTree()
	l := len(a.items)
	st.mu.Unlock()
	return l
}

// At returns the element at index i.
func (a *Array) At(i int) (Control, bool) {
	st := a.node.lockTree()
	defer st.mu.Unlock()
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return a.items[i], true
}

// Controls returns a snapshot of the elements in order.
func (a *Array) Controls() []Control {
	st := a.node.lockTree()
	out := make([]Control, len(a.items))
	for i, ch := range a.items {
		out[i] = ch
	}
	st.mu.Unlock()
	return out
}

// Append adds a child after the last element and revalidates the array chain.
func (a *Array) Append(c Control) error {
	return a.insert(-1, c)
}

// Insert adds a child at index i, shifting later elements. i may equal Len.
func (a *Array) Insert(i int, c Control) error {
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return a.insert(i, c)
}

// insert attaches c at index i; i == -1 means append. The bounds check runs
// under the tree lock since Len may shift between call and attach.
func (a *Array) insert(i int, c Control) error {
	ch, ok := c.(implControl)
	if !ok || ch == nil {
		return fmt.Errorf("%w: unsupported Control implementation", ErrTypeMismatch)
	}
	st, err := attachChild(a, ch, "", func() error {
		if i > len(a.items) {
			return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(a.items))
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer st.mu.Unlock()
	if i < 0 {
		i = len(a.items)
	}
	a.items = slices.Insert(a.items, i, ch)
	a.renumberLocked()
	refreshFlagsUpLocked(a)
	return revalidateUpLocked(a, true)
}

// Remove detaches the element at index i. The element keeps its state as the
// root of a fresh tree; later elements shift down and the array revalidates.
func (a *Array) Remove(i int) error {
	st := a.node.lockTree()
	defer st.mu.Unlock()
	if i < 0 || i >= len(a.items) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, len(a.items))
	}
	ch := a.items[i]
	a.items = slices.Delete(a.items, i, i+1)
	detachLocked(ch, st.opts)
	a.renumberLocked()
	refreshFlagsUpLocked(a)
	return revalidateUpLocked(a, true)
}

// Clear detaches every element.
func (a *Array) Clear() error {
	st := a.node.lockTree()
	defer st.mu.Unlock()
	for _, ch := range a.items {
		detachLocked(ch, st.opts)
	}
	a.items = a.items[:0]
	refreshFlagsUpLocked(a)
	return revalidateUpLocked(a, true)
}

// SetValue strictly replaces the array's value: one entry per element.
func (a *Array) SetValue(v []any) error {
	st := a.node.lockTree()
	defer st.mu.Unlock()
	if err := a.setAnyLocked(v); err != nil {
		return err
	}
	return finishValueChangeLocked(a)
}

// PatchValue applies a prefix of values: entry i goes to element i, elements
// beyond len(v) keep their value and async state.
func (a *Array) PatchValue(v []any) error {
	st := a.node.lockTree()
	defer st.mu.Unlock()
	if err := a.patchAnyLocked(v); err != nil {
		return err
	}
	return finishValueChangeLocked(a)
}

// SetRules replaces the array's sync validators and revalidates.
func (a *Array) SetRules(rules ...CompositeRule) error {
	return a.mutateRules(func() { a.rules = slices.Clone(rules) })
}

// AddRules appends sync validators and revalidates.
func (a *Array) AddRules(rules ...CompositeRule) error {
	return a.mutateRules(func() { a.rules = append(a.rules, rules...) })
}

// ClearRules removes all sync validators and revalidates.
func (a *Array) ClearRules() error {
	return a.mutateRules(func() { a.rules = nil })
}

// SetAsyncRules replaces the async validators and revalidates.
func (a *Array) SetAsyncRules(rules ...AsyncCompositeRule) error {
	return a.mutateRules(func() { a.asyncRules = slices.Clone(rules) })
}

// AddAsyncRules appends async validators and revalidates.
func (a *Array) AddAsyncRules(rules ...AsyncCompositeRule) error {
	return a.mutateRules(func() { a.asyncRules = append(a.asyncRules, rules...) })
}

// ClearAsyncRules removes all async validators and revalidates.
func (a *Array) ClearAsyncRules() error {
	return a.mutateRules(func() { a.asyncRules = nil })
}

func (a *Array) mutateRules(mutate func()) error {
	st := a.node.lockTree()
	defer st.mu.Unlock()
	mutate()
	return revalidateUpLocked(a, false)
}

func (a *Array) renumberLocked() {
	for i, ch := range a.items {
		ch.base().key = strconv.Itoa(i)
	}
}

// --- internal contract -------------------------------------------------------

func (a *Array) revalidateLocked() error {
	n := &a.node
	if n.disabled || a.effectivelyDisabledLocked() {
		n.cancelAsyncLocked()
		n.syncErrs = nil
		n.applyStatusLocked(StatusDisabled, nil)
		return nil
	}
	syncErrs, err := runCompositeRules(a.rules, viewOf(a))
	if err != nil {
		return err
	}
	n.syncErrs = syncErrs
	if len(syncErrs) > 0 {
		n.cancelAsyncLocked()
	} else {
		beginAsyncLocked(a, a.bindAsyncLocked())
	}
	a.refreshStatusLocked()
	return nil
}

func (a *Array) bindAsyncLocked() []asyncRun {
	if len(a.asyncRules) == 0 {
		return nil
	}
	snapshot := a.valueLocked()
	runs := make([]asyncRun, 0, len(a.asyncRules))
	for _, rule := range a.asyncRules {
		if rule == nil {
			continue
		}
		runs = append(runs, func(ctx context.Context) (Errors, error) {
			return invokeAsyncComposite(ctx, rule, snapshot)
		})
	}
	return runs
}

func (a *Array) refreshStatusLocked() {
	n := &a.node
	if n.disabled || a.effectivelyDisabledLocked() {
		n.applyStatusLocked(StatusDisabled, nil)
		return
	}
	own := StatusValid
	var errs Errors
	switch {
	case len(n.syncErrs) > 0:
		own, errs = StatusInvalid, n.syncErrs.Clone()
	case n.runsLeft > 0:
		own = StatusPending
	case len(n.asyncErrs) > 0:
		own, errs = StatusInvalid, n.asyncErrs.Clone()
	}
	agg := own
	for _, ch := range a.items {
		agg = agg.combine(ch.base().status)
	}
	n.applyStatusLocked(agg, errs)
}

func (a *Array) effectivelyDisabledLocked() bool {
	if len(a.items) == 0 {
		return false
	}
	for _, ch := range a.items {
		if !ch.base().disabled {
			return false
		}
	}
	return true
}

func (a *Array) eachChild(fn func(implControl) bool) {
	for _, ch := range a.items {
		if !fn(ch) {
			return
		}
	}
}

func (a *Array) valueLocked() any {
	if a.node.disabled || a.effectivelyDisabledLocked() {
		return a.rawValueLocked()
	}
	out := make([]any, 0, len(a.items))
	for _, ch := range a.items {
		if ch.base().disabled {
			continue
		}
		out = append(out, ch.valueLocked())
	}
	return out
}

func (a *Array) rawValueLocked() any {
	out := make([]any, 0, len(a.items))
	for _, ch := range a.items {
		out = append(out, ch.rawValueLocked())
	}
	return out
}

func (a *Array) setAnyLocked(v any) error {
	vs, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%w: array requires []any, got %T", ErrTypeMismatch, v)
	}
	if len(vs) != len(a.items) {
		return fmt.Errorf("%w: got %d values for %d elements", ErrShapeMismatch, len(vs), len(a.items))
	}
	for i, ch := range a.items {
		if err := ch.setAnyLocked(vs[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	if err := a.revalidateLocked(); err != nil {
		return err
	}
	a.node.emitValueLocked()
	return nil
}

func (a *Array) patchAnyLocked(v any) error {
	vs, ok := v.([]any)
	if !ok {
		return fmt.Errorf("%w: array requires []any, got %T", ErrTypeMismatch, v)
	}
	n := min(len(vs), len(a.items))
	for i := 0; i < n; i++ {
		if err := a.items[i].patchAnyLocked(vs[i]); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	if err := a.revalidateLocked(); err != nil {
		return err
	}
	a.node.emitValueLocked()
	return nil
}

func (a *Array) resetValuesLocked() {
	for _, ch := range a.items {
		ch.resetValuesLocked()
	}
	a.selfDirty, a.dirty = false, false
	a.selfTouched, a.touched = false, false
}
