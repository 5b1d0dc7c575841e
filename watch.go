package formkit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// EventKind discriminates watch events.
type EventKind string

const (
	// EventValue signals that the control's value changed. For composites
	// this includes aggregate changes caused by descendants, enablement,
	// and structural edits.
	EventValue EventKind = "value"

	// EventStatus signals that the control transitioned to a new status.
	EventStatus EventKind = "status"
)

// Event is one observed transition on a watched control. Status is the
// control's status at emission time; Value is populated on value events only.
type Event struct {
	Kind    EventKind
	Control Control
	Status  Status
	Value   any
}

// watchBuffer is the per-subscription channel capacity. A subscriber that
// falls further behind loses the oldest unread guarantee: newer events are
// dropped until it drains.
const watchBuffer = 64

// Subscription is a handle on a stream of control events. Close is
// idempotent and releases the subscription's slot on the control.
type Subscription struct {
	id    uuid.UUID
	owner *node
	ch    chan Event
	done  chan struct{}

	mu     sync.Mutex
	closed bool

	closeOnce sync.Once
}

// Events returns the stream. The channel closes when the subscription does.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription from its control and closes the stream.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		st := s.owner.lockTree()
		delete(s.owner.watchers, s.id)
		st.mu.Unlock()

		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()

		close(s.done)
	})
}

// send delivers without blocking: emission happens under the tree lock and
// must never stall a propagation pass on a slow subscriber.
func (s *Subscription) send(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- ev:
	default:
	}
}

// Watch subscribes to value and status transitions of this control. Events
// are emitted in propagation order while the tree lock is held, so a single
// subscriber observes transitions in the order they were applied. Delivery
// is non-blocking; a subscriber that stops draining misses events rather
// than stalling the tree.
//
// The subscription closes when ctx is cancelled or Close is called,
// whichever comes first.
func (n *node) Watch(ctx context.Context) *Subscription {
	sub := &Subscription{
		id:    uuid.New(),
		owner: n,
		ch:    make(chan Event, watchBuffer),
		done:  make(chan struct{}),
	}
	st := n.lockTree()
	if n.watchers == nil {
		n.watchers = make(map[uuid.UUID]*Subscription)
	}
	n.watchers[sub.id] = sub
	st.mu.Unlock()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				sub.Close()
			case <-sub.done:
			}
		}()
	}
	return sub
}

func (n *node) emitStatusLocked() {
	if len(n.watchers) == 0 {
		return
	}
	ev := Event{Kind: EventStatus, Control: n.self, Status: n.status}
	for _, sub := range n.watchers {
		sub.send(ev)
	}
}

func (n *node) emitValueLocked() {
	if len(n.watchers) == 0 {
		return
	}
	ev := Event{
		Kind:    EventValue,
		Control: n.self,
		Status:  n.status,
		Value:   n.self.valueLocked(),
	}
	for _, sub := range n.watchers {
		sub.send(ev)
	}
}
