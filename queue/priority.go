package queue

import "fmt"

const numPriorities = 2

type (
	// Priority is an interface for a two-level priority queue
	Priority[T any] interface {
		Add(priority int, item T) bool
		Remove() (T, bool)
		Close()
	}

	// priorityImpl is a priority queue built using channels
	priorityImpl[T any] struct {
		channels   []chan T
		shutdownCh chan struct{}
	}
)

// NewPriority returns a Priority queue holding up to queueSize items per
// priority level
func NewPriority[T any](queueSize int) Priority[T] {
	channels := make([]chan T, numPriorities)
	for i := range channels {
		channels[i] = make(chan T, queueSize)
	}
	return &priorityImpl[T]{
		channels:   channels,
		shutdownCh: make(chan struct{}),
	}
}

// Add adds an item to a channel in the queue. This is blocking and waits for
// the queue to get empty if it is full. Returns false if the queue is closed.
func (p *priorityImpl[T]) Add(priority int, item T) bool {
	if priority >= numPriorities {
		panic(fmt.Sprintf("trying to add item with invalid priority %v, queue only supports %v priorities", priority, numPriorities))
	}
	select {
	case p.channels[priority] <- item:
	case <-p.shutdownCh:
		return false
	}
	return true
}

// Remove removes an item from the priority queue. This is blocking till an
// element becomes available in the priority queue
func (p *priorityImpl[T]) Remove() (T, bool) {
	// pick from highest priority if exists
	select {
	case item, ok := <-p.channels[0]:
		return item, ok
	case <-p.shutdownCh:
		var zero T
		return zero, false
	default:
	}

	// blocking select from all priorities
	var item T
	var ok bool
	select {
	case item, ok = <-p.channels[0]:
	case item, ok = <-p.channels[1]:
	case <-p.shutdownCh:
	}
	return item, ok
}

// Close - closes the priority queue
func (p *priorityImpl[T]) Close() {
	close(p.shutdownCh)
}
