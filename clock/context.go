package clock

import (
	"context"
	"sync"
	"time"
)

// ContextWithTimeout returns a context that closes after timeout, measured on
// the given TimeSource. With the real time source it is context.WithTimeout;
// with an event time source the deadline fires when the source is advanced
// past it, which makes context timeouts testable without sleeping.
func ContextWithTimeout(
	parent context.Context,
	timeout time.Duration,
	timeSource TimeSource,
) (context.Context, context.CancelFunc) {
	if _, ok := timeSource.(*RealTimeSource); ok {
		return context.WithTimeout(parent, timeout)
	}

	d := &deadlineContext{
		parent:   parent,
		deadline: timeSource.Now().Add(timeout),
		done:     make(chan struct{}),
	}
	timer := timeSource.AfterFunc(timeout, func() {
		d.cancel(context.DeadlineExceeded)
	})
	stop := context.AfterFunc(parent, func() {
		d.cancel(parent.Err())
	})
	return d, func() {
		stop()
		timer.Stop()
		d.cancel(context.Canceled)
	}
}

type deadlineContext struct {
	parent   context.Context
	deadline time.Time

	mu   sync.Mutex
	err  error
	done chan struct{}
}

var _ context.Context = (*deadlineContext)(nil)

func (d *deadlineContext) Deadline() (time.Time, bool) {
	return d.deadline, true
}

func (d *deadlineContext) Done() <-chan struct{} {
	return d.done
}

func (d *deadlineContext) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.err
}

func (d *deadlineContext) Value(key any) any {
	return d.parent.Value(key)
}

// cancel closes the context with err. Only the first caller wins; later calls
// are no-ops.
func (d *deadlineContext) cancel(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.err != nil {
		return
	}
	d.err = err
	close(d.done)
}
