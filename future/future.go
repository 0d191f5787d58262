package future

import (
	"context"
	"time"
)

type (
	// Future represents a value of type T which becomes available at some
	// point, together with an error describing why it never will.
	Future[T any] interface {
		// Get blocks until the future is ready or the context is closed.
		Get(ctx context.Context) (T, error)
		// GetFor blocks until the future is ready or the timeout elapses, in
		// which case it returns ErrTimeout. A future completing at the same
		// moment the deadline fires is reported as ready.
		GetFor(timeout time.Duration) (T, error)
		// Ready returns whether the future has been completed.
		Ready() bool
	}
)
