package formkit

import (
	"context"
	"time"
)

// asyncRun is one async validator bound to the value snapshot it should
// check. Binding happens under the tree lock; execution happens on a fresh
// goroutine without it.
type asyncRun func(ctx context.Context) (Errors, error)

// cancelAsyncLocked abandons the control's current async generation: the
// shared context is cancelled, a pending debounce window is stopped, and any
// result still in flight becomes stale.
func (n *node) cancelAsyncLocked() {
	n.gen++
	if n.cancelRun != nil {
		n.cancelRun()
		n.cancelRun = nil
	}
	if n.debTimer != nil {
		n.debTimer.Stop()
		n.debTimer = nil
	}
	n.runsLeft = 0
	n.asyncErrs = nil
}

// beginAsyncLocked opens a new async generation for c, superseding whatever
// was running. With a configured debounce the runs launch after the window
// elapses, unless a newer generation supersedes them first.
func beginAsyncLocked(c implControl, runs []asyncRun) {
	n := c.base()
	n.cancelAsyncLocked()
	if len(runs) == 0 {
		return
	}
	n.runsLeft = len(runs)
	gen := n.gen
	st := n.state.Load()
	if d := st.opts.debounce; d > 0 {
		n.debTimer = time.AfterFunc(d, func() {
			st := n.lockTree()
			spawnRunsLocked(c, gen, runs)
			st.mu.Unlock()
		})
		return
	}
	spawnRunsLocked(c, gen, runs)
}

// spawnRunsLocked starts the goroutines for generation gen. A generation
// superseded while debouncing never launches.
func spawnRunsLocked(c implControl, gen uint64, runs []asyncRun) {
	n := c.base()
	if n.gen != gen || n.disabled {
		return
	}
	n.debTimer = nil
	st := n.state.Load()
	var ctx context.Context
	var cancel context.CancelFunc
	if t := st.opts.asyncTimeout; t > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), t)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	n.cancelRun = cancel
	for _, run := range runs {
		go settleAsync(ctx, c, gen, run)
	}
}

// settleAsync executes one async run and folds its result back into the
// tree. Results from superseded generations are discarded: the control that
// spawned them has moved on. A rule fault (non-nil error) leaves the control
// pending and is routed to the tree's error hook instead of being mistaken
// for a validation verdict.
func settleAsync(ctx context.Context, c implControl, gen uint64, run asyncRun) {
	errs, err := run(ctx)

	n := c.base()
	st := n.lockTree()
	if n.gen != gen || n.disabled {
		logger := st.opts.logger
		st.mu.Unlock()
		logger.DebugContext(ctx, "discarding stale async validation result",
			"generation", gen)
		return
	}
	if err != nil {
		logger, onError := st.opts.logger, st.opts.onError
		st.mu.Unlock()
		logger.ErrorContext(ctx, "async validator failed", "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}
	n.asyncErrs = n.asyncErrs.Merge(errs)
	n.runsLeft--
	if n.runsLeft == 0 {
		if n.cancelRun != nil {
			n.cancelRun()
			n.cancelRun = nil
		}
		refreshUpLocked(c)
	}
	st.mu.Unlock()
}
