package future

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/motioncore/fibersync/clock"
)

const (
	// pending status indicates future is not ready
	// setting status indicates future is in transition to be ready, used to prevent data race
	// ready   status indicates future is ready

	pending int32 = iota
	setting
	ready
)

// ErrTimeout is returned by GetFor when the future does not complete within
// the timeout.
var ErrTimeout = errors.New("timed out waiting for future")

type (
	FutureImpl[T any] struct {
		status     int32
		timeSource clock.TimeSource
		readyCh    chan struct{}

		value T
		err   error
	}
)

var _ Future[struct{}] = (*FutureImpl[struct{}])(nil)

func NewFuture[T any]() *FutureImpl[T] {
	return newFuture[T](clock.NewRealTimeSource())
}

// NewFutureWithTimeSource creates a future whose GetFor deadlines are driven
// by the given time source.
func NewFutureWithTimeSource[T any](timeSource clock.TimeSource) *FutureImpl[T] {
	return newFuture[T](timeSource)
}

func newFuture[T any](timeSource clock.TimeSource) *FutureImpl[T] {
	return &FutureImpl[T]{
		status:     pending,
		timeSource: timeSource,
		readyCh:    make(chan struct{}),
	}
}

func (f *FutureImpl[T]) Get(
	ctx context.Context,
) (T, error) {
	if f.Ready() {
		return f.value, f.err
	}

	select {
	case <-f.readyCh:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *FutureImpl[T]) GetFor(
	timeout time.Duration,
) (T, error) {
	if f.Ready() {
		return f.value, f.err
	}

	timerCh, timer := f.timeSource.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.readyCh:
		return f.value, f.err
	case <-timerCh:
		// the future may have completed while the deadline was firing; the
		// outcome is decided by a final readiness check, not by the timer
		if f.Ready() {
			return f.value, f.err
		}
		var zero T
		return zero, ErrTimeout
	}
}

func (f *FutureImpl[T]) Set(
	value T,
	err error,
) {
	// cannot directly set status to `ready`, to prevent data race in case multiple `Get` occurs
	// instead set status to `setting` to prevent concurrent completion of this future
	if !atomic.CompareAndSwapInt32(
		&f.status,
		pending,
		setting,
	) {
		panic("future has already been completed")
	}

	f.value = value
	f.err = err
	atomic.CompareAndSwapInt32(&f.status, setting, ready)
	close(f.readyCh)
}

func (f *FutureImpl[T]) Ready() bool {
	return atomic.LoadInt32(&f.status) == ready
}
