package locks

import (
	"sync"
)

type (
	// ConditionVariable is similar to sync.Cond, with two differences: a
	// waiter can additionally be woken by firing or closing the interrupt
	// channel passed to Wait, and wakeups may be spurious. Callers must hold
	// the bound lock when calling Wait and must re-check their condition in a
	// loop after Wait returns.
	ConditionVariable interface {
		// Signal wakes one goroutine waiting on this condition variable, if there is any.
		Signal()
		// Broadcast wakes all goroutines waiting on this condition variable.
		Broadcast()
		// Wait atomically unlocks the bound lock and suspends execution of the
		// calling goroutine. After later resuming execution, Wait re-acquires
		// the bound lock before returning. Wait can return due to Signal,
		// Broadcast, the interrupt channel firing, or spuriously.
		Wait(interrupt <-chan struct{})
	}

	ConditionVariableImpl struct {
		lock sync.Locker

		stateLock sync.Mutex
		channel   chan struct{}
	}
)

var _ ConditionVariable = (*ConditionVariableImpl)(nil)

// NewConditionVariable creates a condition variable bound to the given lock.
func NewConditionVariable(lock sync.Locker) *ConditionVariableImpl {
	return &ConditionVariableImpl{
		lock: lock,

		stateLock: sync.Mutex{},
		channel:   newCVChannel(),
	}
}

// The buffer of size one keeps a signal issued while no waiter is parked
// available for the next waiter, so a notify between lock release and channel
// receive is never lost. A stale buffered token surfaces as a spurious wakeup,
// which the Wait contract permits.
func newCVChannel() chan struct{} {
	return make(chan struct{}, 1)
}

// Signal wakes one goroutine waiting on this condition variable, if there is any.
func (c *ConditionVariableImpl) Signal() {
	c.stateLock.Lock()
	defer c.stateLock.Unlock()

	select {
	case c.channel <- struct{}{}:
	default:
		// token already pending, one waiter will wake regardless
	}
}

// Broadcast wakes all goroutines waiting on this condition variable.
func (c *ConditionVariableImpl) Broadcast() {
	newChannel := newCVChannel()

	c.stateLock.Lock()
	defer c.stateLock.Unlock()

	close(c.channel)
	c.channel = newChannel
}

// Wait atomically unlocks the bound lock and suspends execution of the calling
// goroutine until woken by Signal, Broadcast or the interrupt channel. The
// bound lock is re-acquired before Wait returns.
func (c *ConditionVariableImpl) Wait(
	interrupt <-chan struct{},
) {
	// The channel reference must be taken while the caller still holds the
	// bound lock: a Broadcast swaps the channel, and grabbing the reference
	// after the release would allow a notify to slip in between and park this
	// waiter on a channel the notifier never saw.
	c.stateLock.Lock()
	channel := c.channel
	c.stateLock.Unlock()

	c.lock.Unlock()
	defer c.lock.Lock()

	select {
	case <-channel:
	case <-interrupt:
	}
}
