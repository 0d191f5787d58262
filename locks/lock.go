package locks

import (
	"context"
)

type (
	// Mutex accepts a context in its Lock method.
	// It blocks the goroutine until either the lock is acquired or the context
	// is closed.
	Mutex interface {
		Lock(context.Context) error
		TryLock() bool
		Unlock()
	}

	mutexImpl struct {
		ch chan struct{}
	}
)

var _ Mutex = (*mutexImpl)(nil)

// NewMutex creates a new Mutex
func NewMutex() Mutex {
	return &mutexImpl{
		ch: make(chan struct{}, 1),
	}
}

func (m *mutexImpl) Lock(ctx context.Context) error {
	// a free lock is acquired even if ctx is already closed
	select {
	case m.ch <- struct{}{}:
		return nil
	default:
	}

	select {
	case m.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *mutexImpl) TryLock() bool {
	select {
	case m.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

func (m *mutexImpl) Unlock() {
	select {
	case <-m.ch:
	default:
		panic("unlock of unlocked mutex")
	}
}
