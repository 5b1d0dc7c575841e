package remotecheck

import "context"

// Checker reports whether a value is present in a backing store. Implementations
// must be safe for concurrent use; the engine may run several checks at once.
type Checker interface {
	Exists(ctx context.Context, value string) (bool, error)
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(ctx context.Context, value string) (bool, error)

func (f CheckerFunc) Exists(ctx context.Context, value string) (bool, error) {
	return f(ctx, value)
}
