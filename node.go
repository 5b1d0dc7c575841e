package formkit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Control is the common surface of every node in a form tree: leaf fields,
// groups, and arrays. All methods are safe for concurrent use; mutations on
// one tree serialize against each other, so observers always see the tree
// after a propagation pass completed, never mid-pass.
//
// The interface is sealed. Use NewField, NewGroup, or NewArray to obtain
// implementations.
type Control interface {
	// Status returns the control's current validation status.
	Status() Status

	// Errors returns the control's own validation errors, nil when it has
	// none. Composite controls report only errors produced by their own
	// validators; child errors stay on the children.
	Errors() Errors

	// Valid reports whether the status is StatusValid.
	Valid() bool

	// Invalid reports whether the status is StatusInvalid.
	Invalid() bool

	// Pending reports whether the status is StatusPending.
	Pending() bool

	// Value returns the control's current value. For composites it is the
	// aggregate of enabled children: a map[string]any for groups, a []any
	// for arrays. A fully disabled composite falls back to its raw value.
	Value() any

	// RawValue returns the aggregate value including disabled children.
	RawValue() any

	// SetAny replaces the control's value using dynamic typing. Fields
	// require an assignable value, groups a map[string]any covering every
	// child, arrays a []any of matching length.
	SetAny(value any) error

	// PatchAny applies a partial value: maps may cover a subset of group
	// children (unknown keys are ignored), slices may be shorter than the
	// array. For fields it behaves like SetAny.
	PatchAny(value any) error

	// Reset restores the control and all descendants to their initial
	// values and clears dirty and touched flags, then revalidates.
	Reset() error

	// Dirty reports whether the control's value has ever changed from its
	// initial value, or any descendant's has. Only Reset, ResetTo and
	// MarkPristine clear the flag.
	Dirty() bool

	// Touched reports whether the control or any descendant was marked
	// touched.
	Touched() bool

	// MarkTouched flags the control as touched. Ancestors observe the
	// change through their derived flag.
	MarkTouched()

	// MarkUntouched clears the touched flag on the control and all
	// descendants.
	MarkUntouched()

	// MarkDirty flags the control as dirty.
	MarkDirty()

	// MarkPristine clears the dirty flag on the control and all
	// descendants.
	MarkPristine()

	// Disabled reports whether the control is exempt from validation.
	Disabled() bool

	// Enabled reports the opposite of Disabled.
	Enabled() bool

	// Disable exempts the control and all descendants from validation and
	// revalidates the ancestor chain, which no longer aggregates them.
	Disable() error

	// Enable lifts the exemption from the control and all descendants and
	// revalidates the subtree and the ancestor chain.
	Enable() error

	// Revalidate reruns the control's validators and those of every
	// ancestor, restarting async validation where sync validators pass.
	Revalidate() error

	// Lookup resolves a dot-separated path ("shipping.address.0") relative
	// to this control. An empty path resolves to the control itself.
	Lookup(path string) (Control, bool)

	// Path returns the control's dot-separated path from the root of its
	// tree. The root's path is "".
	Path() string

	// Parent returns the parent control, or nil at the root.
	Parent() Control

	// Root returns the root of the tree this control belongs to.
	Root() Control

	// Watch subscribes to value and status transitions of this control.
	// The subscription closes when ctx is cancelled or Close is called.
	Watch(ctx context.Context) *Subscription

	// Configure adjusts engine options for the whole tree this control
	// currently belongs to.
	Configure(opts ...Option)

	base() *node
}

// implControl is the internal contract each concrete control fulfils on top
// of Control. Every method suffixed Locked requires the tree lock.
type implControl interface {
	Control

	// revalidateLocked reruns the control's own sync validators and, when
	// they pass, starts a fresh async generation. It does not walk
	// ancestors and does not touch children.
	revalidateLocked() error

	// refreshStatusLocked recombines cached validation state without
	// running any validator.
	refreshStatusLocked()

	// eachChild visits direct children until fn returns false. Leaves
	// visit nothing.
	eachChild(fn func(implControl) bool)

	valueLocked() any
	rawValueLocked() any
	setAnyLocked(v any) error
	patchAnyLocked(v any) error

	// resetValuesLocked restores initial values and clears interaction
	// flags across the subtree without revalidating.
	resetValuesLocked()
}

// treeState is the engine state shared by every control of one connected
// tree. Structural operations rebind nodes to a different treeState, which
// is why acquisition always double-checks membership after locking.
type treeState struct {
	id   uint64
	mu   sync.Mutex
	opts engineOptions
}

var treeStateSeq atomic.Uint64

func newTreeState(opts engineOptions) *treeState {
	return &treeState{id: treeStateSeq.Add(1), opts: opts}
}

// node carries the per-control state shared by fields, groups, and arrays.
type node struct {
	state  atomic.Pointer[treeState]
	self   implControl
	parent implControl
	key    string

	status    Status
	errs      Errors // visible errors, derived from syncErrs and asyncErrs
	syncErrs  Errors
	asyncErrs Errors

	disabled    bool
	selfDirty   bool
	dirty       bool
	selfTouched bool
	touched     bool

	// async generation bookkeeping, see async.go
	gen       uint64
	cancelRun context.CancelFunc
	runsLeft  int
	debTimer  *time.Timer

	watchers map[uuid.UUID]*Subscription
}

func (n *node) base() *node { return n }

// init wires the back reference to the outer control and gives the node its
// own tree state. Called once from each constructor.
func (n *node) init(self implControl, opts engineOptions) {
	n.self = self
	n.status = StatusValid
	n.state.Store(newTreeState(opts))
}

// lockTree acquires the mutex of the tree the node currently belongs to.
// Attach and detach swap the state pointer while holding the old lock, so
// membership is rechecked after acquisition.
func (n *node) lockTree() *treeState {
	for {
		st := n.state.Load()
		st.mu.Lock()
		if n.state.Load() == st {
			return st
		}
		st.mu.Unlock()
	}
}

// lockTwo acquires the locks of two potentially distinct trees in id order,
// so concurrent attach operations cannot deadlock. When both nodes share a
// tree the single lock is returned twice.
func lockTwo(a, b *node) (*treeState, *treeState) {
	for {
		sa, sb := a.state.Load(), b.state.Load()
		if sa == sb {
			sa.mu.Lock()
			if a.state.Load() == sa && b.state.Load() == sa {
				return sa, sa
			}
			sa.mu.Unlock()
			continue
		}
		lo, hi := sa, sb
		if lo.id > hi.id {
			lo, hi = hi, lo
		}
		lo.mu.Lock()
		hi.mu.Lock()
		if a.state.Load() == sa && b.state.Load() == sb {
			return sa, sb
		}
		hi.mu.Unlock()
		lo.mu.Unlock()
	}
}

func unlockTwo(a, b *treeState) {
	if a == b {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()
	b.mu.Unlock()
}

// adoptLocked rebinds the subtree rooted at c to st. Both the subtree's old
// state and st must be locked, except when st is freshly created and not yet
// reachable by any other goroutine.
func adoptLocked(c implControl, st *treeState) {
	c.base().state.Store(st)
	c.eachChild(func(ch implControl) bool {
		adoptLocked(ch, st)
		return true
	})
}

// parentImpl returns the parent as implControl, nil at the root.
func parentImpl(c implControl) implControl {
	return c.base().parent
}

// revalidateUpLocked reruns validators on c and every ancestor, innermost
// first, emitting a value event per node when values is true. The walk stops
// on the first validator panic; nodes already recomputed keep their state.
func revalidateUpLocked(c implControl, values bool) error {
	for cur := c; cur != nil; cur = parentImpl(cur) {
		if err := cur.revalidateLocked(); err != nil {
			return err
		}
		if values {
			cur.base().emitValueLocked()
		}
	}
	return nil
}

// refreshUpLocked recombines cached status on c and every ancestor without
// running validators. Used when async runs settle.
func refreshUpLocked(c implControl) {
	for cur := c; cur != nil; cur = parentImpl(cur) {
		cur.refreshStatusLocked()
	}
}

// revalidateSubtreeLocked revalidates the subtree rooted at c in post-order
// so composite validators observe fresh child statuses.
func revalidateSubtreeLocked(c implControl, values bool) error {
	var err error
	c.eachChild(func(ch implControl) bool {
		err = revalidateSubtreeLocked(ch, values)
		return err == nil
	})
	if err != nil {
		return err
	}
	if err := c.revalidateLocked(); err != nil {
		return err
	}
	if values {
		c.base().emitValueLocked()
	}
	return nil
}

// refreshFlagsUpLocked rederives the dirty and touched flags of c and every
// ancestor from their own flags and their children's derived flags.
func refreshFlagsUpLocked(c implControl) {
	for cur := c; cur != nil; cur = parentImpl(cur) {
		refreshFlagsLocked(cur)
	}
}

// refreshFlagsSubtreeLocked rederives the flags of an entire subtree in
// post-order, so composites fold fresh child flags. Needed after bulk value
// application, which flips selfDirty on leaves several levels down.
func refreshFlagsSubtreeLocked(c implControl) {
	c.eachChild(func(ch implControl) bool {
		refreshFlagsSubtreeLocked(ch)
		return true
	})
	refreshFlagsLocked(c)
}

func refreshFlagsLocked(c implControl) {
	n := c.base()
	dirty, touched := n.selfDirty, n.selfTouched
	c.eachChild(func(ch implControl) bool {
		cn := ch.base()
		dirty = dirty || cn.dirty
		touched = touched || cn.touched
		return true
	})
	n.dirty, n.touched = dirty, touched
}

// disableSubtreeLocked marks the subtree disabled, cancels async work, and
// clears errors. Status events fire for every node that transitions.
func disableSubtreeLocked(c implControl) {
	n := c.base()
	n.disabled = true
	n.cancelAsyncLocked()
	n.syncErrs, n.asyncErrs = nil, nil
	n.applyStatusLocked(StatusDisabled, nil)
	c.eachChild(func(ch implControl) bool {
		disableSubtreeLocked(ch)
		return true
	})
}

func clearDisabledSubtreeLocked(c implControl) {
	c.base().disabled = false
	c.eachChild(func(ch implControl) bool {
		clearDisabledSubtreeLocked(ch)
		return true
	})
}

// applyStatusLocked commits the visible errors and status, emitting a status
// event when the status actually transitions.
func (n *node) applyStatusLocked(status Status, errs Errors) {
	n.errs = errs
	if n.status == status {
		return
	}
	n.status = status
	n.emitStatusLocked()
}

// --- shared Control surface -------------------------------------------------

func (n *node) Status() Status {
	st := n.lockTree()
	s := n.status
	st.mu.Unlock()
	return s
}

func (n *node) Errors() Errors {
	st := n.lockTree()
	e := n.errs.Clone()
	st.mu.Unlock()
	return e
}

func (n *node) Valid() bool   { return n.Status() == StatusValid }
func (n *node) Invalid() bool { return n.Status() == StatusInvalid }
func (n *node) Pending() bool { return n.Status() == StatusPending }

func (n *node) Value() any {
	st := n.lockTree()
	v := n.self.valueLocked()
	st.mu.Unlock()
	return v
}

func (n *node) RawValue() any {
	st := n.lockTree()
	v := n.self.rawValueLocked()
	st.mu.Unlock()
	return v
}

func (n *node) SetAny(value any) error {
	st := n.lockTree()
	defer st.mu.Unlock()
	if err := n.self.setAnyLocked(value); err != nil {
		return err
	}
	return finishValueChangeLocked(n.self)
}

func (n *node) PatchAny(value any) error {
	st := n.lockTree()
	defer st.mu.Unlock()
	if err := n.self.patchAnyLocked(value); err != nil {
		return err
	}
	return finishValueChangeLocked(n.self)
}

// finishValueChangeLocked completes a value mutation whose subtree already
// stored new values and revalidated itself: derived flags refresh bottom-up
// and ancestors revalidate against the new aggregates.
func finishValueChangeLocked(c implControl) error {
	refreshFlagsSubtreeLocked(c)
	if p := parentImpl(c); p != nil {
		refreshFlagsUpLocked(p)
		return revalidateUpLocked(p, true)
	}
	return nil
}

func (n *node) Reset() error {
	st := n.lockTree()
	defer st.mu.Unlock()
	n.self.resetValuesLocked()
	refreshFlagsUpLocked(n.self)
	if err := revalidateSubtreeLocked(n.self, true); err != nil {
		return err
	}
	if p := parentImpl(n.self); p != nil {
		return revalidateUpLocked(p, true)
	}
	return nil
}

func (n *node) Dirty() bool {
	st := n.lockTree()
	d := n.dirty
	st.mu.Unlock()
	return d
}

func (n *node) Touched() bool {
	st := n.lockTree()
	t := n.touched
	st.mu.Unlock()
	return t
}

func (n *node) MarkTouched() {
	st := n.lockTree()
	n.selfTouched = true
	refreshFlagsUpLocked(n.self)
	st.mu.Unlock()
}

func (n *node) MarkUntouched() {
	st := n.lockTree()
	clearTouchedSubtreeLocked(n.self)
	refreshFlagsUpLocked(n.self)
	st.mu.Unlock()
}

func (n *node) MarkDirty() {
	st := n.lockTree()
	n.selfDirty = true
	refreshFlagsUpLocked(n.self)
	st.mu.Unlock()
}

func (n *node) MarkPristine() {
	st := n.lockTree()
	clearDirtySubtreeLocked(n.self)
	refreshFlagsUpLocked(n.self)
	st.mu.Unlock()
}

func clearTouchedSubtreeLocked(c implControl) {
	c.base().selfTouched = false
	c.base().touched = false
	c.eachChild(func(ch implControl) bool {
		clearTouchedSubtreeLocked(ch)
		return true
	})
}

func clearDirtySubtreeLocked(c implControl) {
	c.base().selfDirty = false
	c.base().dirty = false
	c.eachChild(func(ch implControl) bool {
		clearDirtySubtreeLocked(ch)
		return true
	})
}

func (n *node) Disabled() bool {
	st := n.lockTree()
	d := n.disabled
	st.mu.Unlock()
	return d
}

func (n *node) Enabled() bool { return !n.Disabled() }

func (n *node) Disable() error {
	st := n.lockTree()
	defer st.mu.Unlock()
	disableSubtreeLocked(n.self)
	if p := parentImpl(n.self); p != nil {
		return revalidateUpLocked(p, true)
	}
	return nil
}

func (n *node) Enable() error {
	st := n.lockTree()
	defer st.mu.Unlock()
	clearDisabledSubtreeLocked(n.self)
	if err := revalidateSubtreeLocked(n.self, false); err != nil {
		return err
	}
	if p := parentImpl(n.self); p != nil {
		return revalidateUpLocked(p, true)
	}
	return nil
}

func (n *node) Revalidate() error {
	st := n.lockTree()
	defer st.mu.Unlock()
	return revalidateUpLocked(n.self, false)
}

func (n *node) Parent() Control {
	st := n.lockTree()
	p := n.parent
	st.mu.Unlock()
	if p == nil {
		return nil
	}
	return p
}

func (n *node) Root() Control {
	st := n.lockTree()
	cur := n.self
	for parentImpl(cur) != nil {
		cur = parentImpl(cur)
	}
	st.mu.Unlock()
	return cur
}

func (n *node) Configure(opts ...Option) {
	st := n.lockTree()
	for _, opt := range opts {
		if opt != nil {
			opt(&st.opts)
		}
	}
	st.mu.Unlock()
}

// attachChild wires child under parent. The child must be the root of its
// own tree; its subtree migrates into the parent's tree with async state
// intact, in-flight runs settle against the new tree. check runs with both
// trees locked, before any mutation, so callers can guard names or indexes
// race-free. On success the parent tree's lock is returned still held.
func attachChild(parent, child implControl, key string, check func() error) (*treeState, error) {
	pn, cn := parent.base(), child.base()
	stP, stC := lockTwo(pn, cn)
	if check != nil {
		if err := check(); err != nil {
			unlockTwo(stP, stC)
			return nil, err
		}
	}
	if cn.parent != nil || stP == stC {
		unlockTwo(stP, stC)
		return nil, ErrAlreadyAttached
	}
	cn.parent = parent
	cn.key = key
	adoptLocked(child, stP)
	stC.mu.Unlock()
	return stP, nil
}

// detachLocked severs child from its parent, moving the child subtree onto a
// fresh tree state that inherits the engine options. The caller holds the
// current tree's lock and remains responsible for revalidating the old
// ancestor chain.
func detachLocked(child implControl, opts engineOptions) {
	cn := child.base()
	cn.parent = nil
	cn.key = ""
	adoptLocked(child, newTreeState(opts))
}
