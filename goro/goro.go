package goro

import (
	"context"
	"sync/atomic"
)

type (
	// Handle tracks a single running goroutine. It is threadsafe and all of
	// its methods can be called any number of times.
	Handle struct {
		context context.Context
		cancel  context.CancelFunc
		done    chan struct{}
		err     atomic.Value
	}
)

// Go runs the supplied function in its own goroutine and returns a *Handle
// for it.
func Go(ctx context.Context, f func(context.Context) error) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		context: ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go func() {
		// use defer here so that the channel is closed even if the func calls
		// runtime.Goexit()
		defer close(h.done)
		if err := f(h.context); err != nil {
			h.err.Store(err)
		}
	}()
	return h
}

// Done exposes a channel on which outside goroutines can block until this
// goroutine completes. The gap between a Cancel call and the Done channel
// closing is the time the goroutine takes to shut itself down.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancel requests that this goroutine stop by cancelling its context. Cancel
// is idempotent and only requests termination, it cannot force it.
func (h *Handle) Cancel() {
	h.cancel()
}

// Err observes the error returned by the func passed to Go, if any. While the
// goroutine is still running Err returns nil.
func (h *Handle) Err() error {
	v := h.err.Load()
	if v == nil {
		return nil
	}
	return v.(error)
}
