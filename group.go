package formkit

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Group is a composite control with named children. Its value is a
// map[string]any aggregating enabled children; its validators run against a
// read-only view of the subtree, which makes cross-field constraints
// ordinary rules. Group errors live on the group itself and never overwrite
// child errors.
type Group struct {
	node

	children   map[string]implControl
	rules      []CompositeRule
	asyncRules []AsyncCompositeRule
}

var _ Control = (*Group)(nil)

// NewGroup constructs a detached group adopting the given children. Each
// child must be the root of its own tree. Children are adopted in name order
// so failures are deterministic.
func NewGroup(children map[string]Control, rules ...CompositeRule) (*Group, error) {
	g := &Group{
		children: make(map[string]implControl, len(children)),
		rules:    slices.Clone(rules),
	}
	g.init(g, defaultEngineOptions())

	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := g.adopt(name, children[name], false); err != nil {
			return nil, err
		}
	}

	st := g.node.lockTree()
	err := g.revalidateLocked()
	refreshFlagsUpLocked(g)
	st.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// MustGroup is NewGroup that panics on error.
func MustGroup(children map[string]Control, rules ...CompositeRule) *Group {
	g, err := NewGroup(children, rules...)
	if err != nil {
		panic(err)
	}
	return g
}

// WithAsync sets the group's async validators and revalidates. Meant for
// construction chains; panics if a sync validator panics.
func (g *Group) WithAsync(rules ...AsyncCompositeRule) *Group {
	if err := g.SetAsyncRules(rules...); err != nil {
		panic(err)
	}
	return g
}

// Child returns the direct child registered under name.
func (g *Group) Child(name string) (Control, bool) {
	st := g.node.lockTree()
	ch, ok := g.children[name]
	st.mu.Unlock()
	if !ok {
		return nil, false
	}
	return ch, true
}

// Names returns the sorted names of the direct children.
func (g *Group) Names() []string {
	st := g.node.lockTree()
	names := make([]string, 0, len(g.children))
	for name := range g.children {
		names = append(names, name)
	}
	st.mu.Unlock()
	sort.Strings(names)
	return names
}

// Children returns a snapshot of the direct children keyed by name.
func (g *Group) Children() map[string]Control {
	st := g.node.lockTree()
	out := make(map[string]Control, len(g.children))
	for name, ch := range g.children {
		out[name] = ch
	}
	st.mu.Unlock()
	return out
}

// AddChild registers a new child under name and revalidates the group chain
// against the changed aggregate. Attaching under a taken name fails with
// ErrChildExists.
func (g *Group) AddChild(name string, c Control) error {
	return g.adopt(name, c, false)
}

// SetChild registers a child under name, detaching and replacing any current
// occupant. The replaced child becomes the root of its own tree and keeps
// its state.
func (g *Group) SetChild(name string, c Control) error {
	return g.adopt(name, c, true)
}

func (g *Group) adopt(name string, c Control, replace bool) error {
	if name == "" || strings.Contains(name, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	ch, ok := c.(implControl)
	if !ok || ch == nil {
		return fmt.Errorf("%w: unsupported Control implementation", ErrTypeMismatch)
	}
	st, err := attachChild(g, ch, name, func() error {
		if _, taken := g.children[name]; taken && !replace {
			return fmt.Errorf("%w: %q", ErrChildExists, name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	defer st.mu.Unlock()
	if old, taken := g.children[name]; taken && replace {
		detachLocked(old, st.opts)
	}
	g.children[name] = ch
	refreshFlagsUpLocked(g)
	return revalidateUpLocked(g, true)
}

// RemoveChild detaches the named child. The child keeps its own state and
// becomes the root of a fresh tree; the group revalidates without it.
func (g *Group) RemoveChild(name string) error {
	st := g.node.lockTree()
	defer st.mu.Unlock()
	ch, ok := g.children[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchChild, name)
	}
	delete(g.children, name)
	detachLocked(ch, st.opts)
	refreshFlagsUpLocked(g)
	return revalidateUpLocked(g, true)
}

// SetValue strictly replaces the group's value: the map must provide exactly
// one value per child, disabled children included. Children revalidate
// first, then the group and its ancestors.
func (g *Group) SetValue(v map[string]any) error {
	st := g.node.lockTree()
	defer st.mu.Unlock()
	if err := g.setAnyLocked(v); err != nil {
		return err
	}
	return finishValueChangeLocked(g)
}

// PatchValue applies a partial value. Keys without a matching child are
// ignored; children not named keep their value and their async state.
func (g *Group) PatchValue(v map[string]any) error {
	st := g.node.lockTree()
	defer st.mu.Unlock()
	if err := g.patchAnyLocked(v); err != nil {
		return err
	}
	return finishValueChangeLocked(g)
}

// SetRules replaces the group's sync validators and revalidates.
func (g *Group) SetRules(rules ...CompositeRule) error {
	return g.mutateRules(func() { g.rules = slices.Clone(rules) })
}

// AddRules appends sync validators and revalidates.
func (g *Group) AddRules(rules ...CompositeRule) error {
	return g.mutateRules(func() { g.rules = append(g.rules, rules...) })
}

// ClearRules removes all sync validators and revalidates.
func (g *Group) ClearRules() error {
	return g.mutateRules(func() { g.rules = nil })
}

// SetAsyncRules replaces the async validators and revalidates.
func (g *Group) SetAsyncRules(rules ...AsyncCompositeRule) error {
	return g.mutateRules(func() { g.asyncRules = slices.Clone(rules) })
}

// AddAsyncRules appends async validators and revalidates.
func (g *Group) AddAsyncRules(rules ...AsyncCompositeRule) error {
	return g.mutateRules(func() { g.asyncRules = append(g.asyncRules, rules...) })
}

// ClearAsyncRules removes all async validators and revalidates.
func (g *Group) ClearAsyncRules() error {
	return g.mutateRules(func() { g.asyncRules = nil })
}

func (g *Group) mutateRules(mutate func()) error {
	st := g.node.lockTree()
	defer st.mu.Unlock()
	mutate()
	return revalidateUpLocked(g, false)
}

// --- internal contract -------------------------------------------------------

func (g *Group) revalidateLocked() error {
	n := &g.node
	if n.disabled || g.effectivelyDisabledLocked() {
		n.cancelAsyncLocked()
		n.syncErrs = nil
		n.applyStatusLocked(StatusDisabled, nil)
		return nil
	}
	syncErrs, err := runCompositeRules(g.rules, viewOf(g))
	if err != nil {
		return err
	}
	n.syncErrs = syncErrs
	if len(syncErrs) > 0 {
		n.cancelAsyncLocked()
	} else {
		beginAsyncLocked(g, g.bindAsyncLocked())
	}
	g.refreshStatusLocked()
	return nil
}

func (g *Group) bindAsyncLocked() []asyncRun {
	if len(g.asyncRules) == 0 {
		return nil
	}
	snapshot := g.valueLocked()
	runs := make([]asyncRun, 0, len(g.asyncRules))
	for _, rule := range g.asyncRules {
		if rule == nil {
			continue
		}
		runs = append(runs, func(ctx context.Context) (Errors, error) {
			return invokeAsyncComposite(ctx, rule, snapshot)
		})
	}
	return runs
}

func (g *Group) refreshStatusLocked() {
	n := &g.node
	if n.disabled || g.effectivelyDisabledLocked() {
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
	for _, ch := range g.children {
		agg = agg.combine(ch.base().status)
	}
	n.applyStatusLocked(agg, errs)
}

// effectivelyDisabledLocked reports whether every child is disabled. A group
// with no children is never considered disabled by aggregation.
func (g *Group) effectivelyDisabledLocked() bool {
	if len(g.children) == 0 {
		return false
	}
	for _, ch := range g.children {
		if !ch.base().disabled {
			return false
		}
	}
	return true
}

func (g *Group) eachChild(fn func(implControl) bool) {
	for _, ch := range g.children {
		if !fn(ch) {
			return
		}
	}
}

func (g *Group) valueLocked() any {
	if g.node.disabled || g.effectivelyDisabledLocked() {
		return g.rawValueLocked()
	}
	m := make(map[string]any, len(g.children))
	for name, ch := range g.children {
		if ch.base().disabled {
			continue
		}
		m[name] = ch.valueLocked()
	}
	return m
}

func (g *Group) rawValueLocked() any {
	m := make(map[string]any, len(g.children))
	for name, ch := range g.children {
		m[name] = ch.rawValueLocked()
	}
	return m
}

func (g *Group) setAnyLocked(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: group requires map[string]any, got %T", ErrTypeMismatch, v)
	}
	if len(m) != len(g.children) {
		return fmt.Errorf("%w: got %d values for %d children", ErrShapeMismatch, len(m), len(g.children))
	}
	names := make([]string, 0, len(m))
	for name := range m {
		if _, ok := g.children[name]; !ok {
			return fmt.Errorf("%w: %q", ErrNoSuchChild, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := g.children[name].setAnyLocked(m[name]); err != nil {
			return fmt.Errorf("child %q: %w", name, err)
		}
	}
	if err := g.revalidateLocked(); err != nil {
		return err
	}
	g.node.emitValueLocked()
	return nil
}

func (g *Group) patchAnyLocked(v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: group requires map[string]any, got %T", ErrTypeMismatch, v)
	}
	names := make([]string, 0, len(m))
	for name := range m {
		if _, ok := g.children[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if err := g.children[name].patchAnyLocked(m[name]); err != nil {
			return fmt.Errorf("child %q: %w", name, err)
		}
	}
	if err := g.revalidateLocked(); err != nil {
		return err
	}
	g.node.emitValueLocked()
	return nil
}

func (g *Group) resetValuesLocked() {
	for _, ch := range g.children {
		ch.resetValuesLocked()
	}
	g.selfDirty, g.dirty = false, false
	g.selfTouched, g.touched = false, false
}
