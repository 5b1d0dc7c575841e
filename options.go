package formkit

import (
	"io"
	"log/slog"
	"time"
)

// engineOptions is the per-tree configuration. The zero value is usable;
// defaultEngineOptions fills in the silent logger.
type engineOptions struct {
	debounce     time.Duration
	asyncTimeout time.Duration
	logger       *slog.Logger
	onError      func(error)
}

func defaultEngineOptions() engineOptions {
	return engineOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option adjusts engine behavior for one tree. Options apply at construction
// and through Control.Configure; a control detached from its tree keeps a
// copy of the options it was running under.
type Option func(*engineOptions)

// WithDebounce delays the launch of async validators after a value change.
// A change arriving inside the window supersedes the delayed launch, so only
// the latest value is ever checked. Zero disables debouncing.
func WithDebounce(d time.Duration) Option {
	return func(o *engineOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithAsyncTimeout bounds each async generation. When the deadline passes,
// outstanding rules observe context cancellation and report a fault. Zero
// means no deadline.
func WithAsyncTimeout(d time.Duration) Option {
	return func(o *engineOptions) {
		if d > 0 {
			o.asyncTimeout = d
		}
	}
}

// WithLogger routes engine diagnostics to l. The default logger discards
// everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithErrorHandler registers a hook invoked when an async validator faults
// (returns a non-nil error or panics). The faulting control stays pending;
// the hook is the place to surface infrastructure trouble to the caller.
// The hook runs outside the tree lock and may safely call control methods.
func WithErrorHandler(fn func(error)) Option {
	return func(o *engineOptions) {
		o.onError = fn
	}
}
