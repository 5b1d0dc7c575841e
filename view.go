package formkit

// View is a read-only window onto a control, handed to composite validators
// so they can express cross-field constraints. A View is only valid for the
// duration of the validator call: it reads the tree mid-propagation under
// the engine's lock and must not be retained, and validators must not call
// Control methods through other references while holding one.
type View interface {
	// Value returns the control's current value, aggregated over enabled
	// children for composites.
	Value() any

	// RawValue returns the value including disabled children.
	RawValue() any

	// Status returns the control's status as of the current pass. Children
	// are recomputed before their parents, so a composite validator always
	// observes settled child state.
	Status() Status

	// Errors returns the control's own errors.
	Errors() Errors

	Dirty() bool
	Touched() bool
	Disabled() bool

	// Child resolves a direct group child by name.
	Child(name string) (View, bool)

	// At resolves a direct array element by index.
	At(i int) (View, bool)

	// Len returns the number of direct children.
	Len() int

	// Lookup resolves a dot-separated path relative to this view.
	Lookup(path string) (View, bool)
}

// nodeView adapts an implControl to View. All reads assume the tree lock is
// held by the propagation pass that invoked the validator.
type nodeView struct {
	c implControl
}

func viewOf(c implControl) View { return nodeView{c: c} }

func (v nodeView) Value() any     { return v.c.valueLocked() }
func (v nodeView) RawValue() any  { return v.c.rawValueLocked() }
func (v nodeView) Status() Status { return v.c.base().status }
func (v nodeView) Errors() Errors { return v.c.base().errs.Clone() }
func (v nodeView) Dirty() bool    { return v.c.base().dirty }
func (v nodeView) Touched() bool  { return v.c.base().touched }
func (v nodeView) Disabled() bool { return v.c.base().disabled }

func (v nodeView) Child(name string) (View, bool) {
	g, ok := v.c.(*Group)
	if !ok {
		return nil, false
	}
	ch, ok := g.children[name]
	if !ok {
		return nil, false
	}
	return nodeView{c: ch}, true
}

func (v nodeView) At(i int) (View, bool) {
	a, ok := v.c.(*Array)
	if !ok {
		return nil, false
	}
	if i < 0 || i >= len(a.items) {
		return nil, false
	}
	return nodeView{c: a.items[i]}, true
}

func (v nodeView) Len() int {
	switch t := v.c.(type) {
	case *Group:
		return len(t.children)
	case *Array:
		return len(t.items)
	default:
		return 0
	}
}

func (v nodeView) Lookup(path string) (View, bool) {
	segs, ok := splitPath(path)
	if !ok {
		return nil, false
	}
	c, ok := descendLocked(v.c, segs)
	if !ok {
		return nil, false
	}
	return nodeView{c: c}, true
}
