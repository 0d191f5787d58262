package locks

import (
	"context"
	"sync"
)

type (
	// RWMutex accepts a context in its Lock and RLock methods.
	// It blocks the goroutine until either the lock is acquired or the context
	// is closed.
	RWMutex interface {
		Lock(context.Context) error
		Unlock()
		RLock(context.Context) error
		RUnlock()
	}

	rwMutexImpl struct {
		sync.RWMutex
	}
)

const (
	acquiring = iota
	acquired
	bailed
)

var _ RWMutex = (*rwMutexImpl)(nil)

// NewRWMutex creates a new RWMutex
func NewRWMutex() RWMutex {
	return &rwMutexImpl{}
}

func (m *rwMutexImpl) Lock(ctx context.Context) error {
	return m.lockInternal(ctx, m.RWMutex.Lock, m.RWMutex.Unlock)
}

func (m *rwMutexImpl) RLock(ctx context.Context) error {
	return m.lockInternal(ctx, m.RWMutex.RLock, m.RWMutex.RUnlock)
}

// lockInternal delegates the blocking acquire to a separate goroutine. When
// the context closes first, the caller bails; once the acquirer eventually
// obtains the lock it observes the bailed state and releases it again, so a
// bailed call never leaks a held lock.
func (m *rwMutexImpl) lockInternal(ctx context.Context, lock func(), unlock func()) error {
	var stateLock sync.Mutex
	state := acquiring

	acquiredCh := make(chan struct{})
	acquire := func() {
		lock()

		stateLock.Lock()
		defer stateLock.Unlock()
		if state == bailed {
			// already bailed due to context closing
			unlock()
		} else {
			state = acquired
		}

		close(acquiredCh)
	}
	go acquire()

	select {
	case <-acquiredCh:
		return nil
	case <-ctx.Done():
		stateLock.Lock()
		defer stateLock.Unlock()
		if state == acquired {
			// lock was already acquired before the context closed
			return nil
		}
		state = bailed
		return ctx.Err()
	}
}
