package queue

import (
	"time"

	"github.com/motioncore/fibersync/clock"
	"github.com/motioncore/fibersync/locks"
)

type (
	// Blocking is an unbounded FIFO queue whose Take operations block until an
	// item is available or the queue is closed.
	Blocking[T any] interface {
		// Put appends an item to the queue. Returns false if the queue is
		// closed.
		Put(item T) bool
		// Take removes the oldest item, blocking while the queue is empty.
		// Returns false if the queue is closed and drained.
		Take() (T, bool)
		// TakeFor is Take with a deadline. Returns false if no item could be
		// claimed before the timeout or the queue is closed and drained.
		TakeFor(timeout time.Duration) (T, bool)
		// TryTake removes the oldest item without blocking. Returns false if
		// the queue is empty.
		TryTake() (T, bool)
		// Len returns the number of items currently queued.
		Len() int
		// Close closes the queue and wakes all blocked takers. Items already
		// queued can still be taken.
		Close()
	}

	blockingImpl[T any] struct {
		timeSource clock.TimeSource
		cond       locks.PredicateCondition

		// items and closed are guarded by cond's mutex
		items  []T
		closed bool
	}
)

// NewBlocking creates a new Blocking queue.
func NewBlocking[T any]() Blocking[T] {
	return newBlocking[T](clock.NewRealTimeSource())
}

// NewBlockingWithTimeSource creates a Blocking queue whose TakeFor deadlines
// are driven by the given time source.
func NewBlockingWithTimeSource[T any](timeSource clock.TimeSource) Blocking[T] {
	return newBlocking[T](timeSource)
}

func newBlocking[T any](timeSource clock.TimeSource) *blockingImpl[T] {
	q := &blockingImpl[T]{
		timeSource: timeSource,
	}
	q.cond = locks.NewPredicateConditionWithTimeSource(
		func() bool { return len(q.items) > 0 || q.closed },
		timeSource,
	)
	return q
}

func (q *blockingImpl[T]) Put(item T) bool {
	mutex := q.cond.GetMutex()
	mutex.Lock()
	if q.closed {
		mutex.Unlock()
		return false
	}
	q.items = append(q.items, item)
	mutex.Unlock()

	q.cond.NotifyOne()
	return true
}

func (q *blockingImpl[T]) Take() (T, bool) {
	for {
		q.cond.Wait()

		// the wait returns with the mutex released, so a competing taker may
		// have claimed the item in between; claim under the mutex and wait
		// again if beaten
		if item, ok, drained := q.tryClaim(); ok || drained {
			return item, ok
		}
	}
}

func (q *blockingImpl[T]) TakeFor(timeout time.Duration) (T, bool) {
	deadline := q.timeSource.Now().Add(timeout)
	for {
		if !q.cond.WaitFor(deadline.Sub(q.timeSource.Now())) {
			var zero T
			return zero, false
		}

		if item, ok, drained := q.tryClaim(); ok || drained {
			return item, ok
		}
		// beaten by a competing taker; wait again with the remaining time
	}
}

func (q *blockingImpl[T]) TryTake() (T, bool) {
	item, ok, _ := q.tryClaim()
	return item, ok
}

// tryClaim pops the oldest item if one is available. drained reports that the
// queue is closed and empty, in which case takers must give up.
func (q *blockingImpl[T]) tryClaim() (item T, ok bool, drained bool) {
	mutex := q.cond.GetMutex()
	mutex.Lock()
	defer mutex.Unlock()

	if len(q.items) > 0 {
		item = q.items[0]
		var zero T
		q.items[0] = zero // release the reference
		q.items = q.items[1:]
		return item, true, false
	}
	return item, false, q.closed
}

func (q *blockingImpl[T]) Len() int {
	mutex := q.cond.GetMutex()
	mutex.Lock()
	defer mutex.Unlock()

	return len(q.items)
}

func (q *blockingImpl[T]) Close() {
	mutex := q.cond.GetMutex()
	mutex.Lock()
	q.closed = true
	mutex.Unlock()

	q.cond.NotifyAll()
}
