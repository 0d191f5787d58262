package locks

import (
	"sync"
	"time"

	"github.com/motioncore/fibersync/clock"
)

type (
	// PredicateCondition is a condition variable bound permanently to a mutex
	// and a boolean predicate over state guarded by that mutex. Waiters block
	// until the predicate is observed true; notifiers mutate the guarded state
	// under GetMutex and then call NotifyOne or NotifyAll. The predicate is
	// only ever evaluated while the mutex is held and is re-checked on every
	// wakeup, so callers cannot lose a wakeup by racing a notification against
	// going to sleep, and spurious wakeups are absorbed internally.
	//
	// The predicate must be a fast, side effect free function of the guarded
	// state. It may be invoked any number of times. State it reads must only
	// be mutated while the mutex is held; that contract is the caller's to
	// keep, the primitive can only expose the mutex.
	//
	// There is no cancellation at this layer. Callers that need to abandon a
	// wait express it as part of the predicate (for example an aborted flag
	// set under the mutex, followed by NotifyAll).
	PredicateCondition interface {
		// Wait blocks the calling goroutine until the predicate is observed
		// true while holding the mutex. The mutex is released on return; the
		// guarded state may have changed by the time the caller observes it
		// again. Callers that need to act on the state atomically with the
		// check must instead loop under GetMutex themselves.
		Wait()
		// WaitFor is Wait with a single deadline of timeout from call entry,
		// measured on the bound TimeSource. Spurious wakeups do not extend the
		// deadline. The return value is a fresh evaluation of the predicate
		// performed under the mutex after the wait loop finishes, regardless
		// of whether the wakeup came from a notification or from the deadline:
		// a notification racing the deadline is therefore never misreported as
		// a timeout. Timeout is a normal outcome, not an error.
		WaitFor(timeout time.Duration) bool
		// NotifyOne wakes at most one blocked waiter. Non-blocking, and safe
		// to call with or without holding the mutex; woken waiters always
		// re-check the predicate under the mutex before returning.
		NotifyOne()
		// NotifyAll wakes every blocked waiter. All woken waiters re-contend
		// for the mutex and re-evaluate the predicate independently; those for
		// whom it is false go back to sleep.
		NotifyAll()
		// GetMutex exposes the mutex guarding the predicate's state, so a
		// caller can run acquire, mutate, notify, release as one guarded
		// sequence. The mutex is not reentrant, and must not be held across a
		// call into Wait, WaitFor or any other blocking operation.
		GetMutex() sync.Locker
	}

	PredicateConditionImpl struct {
		predicate  func() bool
		timeSource clock.TimeSource

		lock sync.Mutex
		cv   ConditionVariable
	}
)

var _ PredicateCondition = (*PredicateConditionImpl)(nil)

// NewPredicateCondition creates a condition bound to the given predicate for
// the lifetime of the value. The predicate must not be nil.
func NewPredicateCondition(
	predicate func() bool,
) *PredicateConditionImpl {
	return NewPredicateConditionWithTimeSource(predicate, clock.NewRealTimeSource())
}

// NewPredicateConditionWithTimeSource is NewPredicateCondition with the
// TimeSource used for WaitFor deadlines supplied by the caller, so timed waits
// can be driven by a fake clock in tests.
func NewPredicateConditionWithTimeSource(
	predicate func() bool,
	timeSource clock.TimeSource,
) *PredicateConditionImpl {
	if predicate == nil {
		panic("missing predicate for predicate condition")
	}

	p := &PredicateConditionImpl{
		predicate:  predicate,
		timeSource: timeSource,
	}
	p.cv = NewConditionVariable(&p.lock)
	return p
}

func (p *PredicateConditionImpl) Wait() {
	p.lock.Lock()
	defer p.lock.Unlock()

	for !p.predicate() {
		p.cv.Wait(nil)
	}
}

func (p *PredicateConditionImpl) WaitFor(
	timeout time.Duration,
) bool {
	interrupt := make(chan struct{})
	timer := p.timeSource.AfterFunc(timeout, func() {
		close(interrupt)
	})
	defer timer.Stop()

	p.lock.Lock()
	defer p.lock.Unlock()

	for !p.predicate() {
		select {
		case <-interrupt:
			// Deadline elapsed. A notification can race the deadline, so the
			// result is one more evaluation under the mutex rather than an
			// unconditional false.
			return p.predicate()
		default:
		}
		p.cv.Wait(interrupt)
	}
	return true
}

func (p *PredicateConditionImpl) NotifyOne() {
	p.cv.Signal()
}

func (p *PredicateConditionImpl) NotifyAll() {
	p.cv.Broadcast()
}

func (p *PredicateConditionImpl) GetMutex() sync.Locker {
	return &p.lock
}
