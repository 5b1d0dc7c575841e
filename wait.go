package formkit

import "context"

// Wait blocks until c leaves StatusPending, then returns the settled status.
// A control that is not pending returns immediately. Waiting on a tree's
// root therefore waits for every async validator in the tree, since a
// composite stays pending while any enabled descendant is.
//
// On ctx cancellation the control's status at that moment is returned
// together with ctx.Err().
func Wait(ctx context.Context, c Control) (Status, error) {
	sub := c.Watch(ctx)
	defer sub.Close()

	// Subscribing before the first status read closes the race where the
	// control settles between the read and the subscription.
	if s := c.Status(); s != StatusPending {
		return s, nil
	}
	for {
		select {
		case <-ctx.Done():
			return c.Status(), ctx.Err()
		case _, ok := <-sub.Events():
			if !ok {
				// Cancellation closes the subscription; report the cause
				// rather than the mechanism.
				if err := ctx.Err(); err != nil {
					return c.Status(), err
				}
				return c.Status(), ErrWatchClosed
			}
			if s := c.Status(); s != StatusPending {
				return s, nil
			}
		}
	}
}
