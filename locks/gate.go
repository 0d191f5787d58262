package locks

import (
	"time"

	"github.com/motioncore/fibersync/clock"
)

type (
	// Gate blocks goroutines while it is closed and releases all of them once
	// it is opened. A gate that is already open never blocks. Gates can be
	// reclosed; goroutines arriving after a Close block again.
	Gate interface {
		// Wait blocks until the gate is open.
		Wait()
		// WaitFor blocks until the gate is open or the timeout elapses. It
		// returns whether the gate was open when the call returned.
		WaitFor(timeout time.Duration) bool
		// Open opens the gate and releases all blocked goroutines. Opening an
		// open gate is a no-op.
		Open()
		// Close closes the gate.
		Close()
		// IsOpen returns whether the gate is open.
		IsOpen() bool
	}

	gateImpl struct {
		// open is guarded by cond's mutex
		open bool
		cond PredicateCondition
	}
)

var _ Gate = (*gateImpl)(nil)

// NewGate creates a Gate in the closed state.
func NewGate() Gate {
	return newGate(false, clock.NewRealTimeSource())
}

// NewOpenGate creates a Gate in the open state.
func NewOpenGate() Gate {
	return newGate(true, clock.NewRealTimeSource())
}

// NewGateWithTimeSource creates a closed Gate whose WaitFor deadlines are
// driven by the given time source.
func NewGateWithTimeSource(timeSource clock.TimeSource) Gate {
	return newGate(false, timeSource)
}

func newGate(open bool, timeSource clock.TimeSource) *gateImpl {
	g := &gateImpl{
		open: open,
	}
	g.cond = NewPredicateConditionWithTimeSource(
		func() bool { return g.open },
		timeSource,
	)
	return g
}

func (g *gateImpl) Wait() {
	g.cond.Wait()
}

func (g *gateImpl) WaitFor(timeout time.Duration) bool {
	return g.cond.WaitFor(timeout)
}

func (g *gateImpl) Open() {
	mutex := g.cond.GetMutex()
	mutex.Lock()
	alreadyOpen := g.open
	g.open = true
	mutex.Unlock()

	if !alreadyOpen {
		g.cond.NotifyAll()
	}
}

func (g *gateImpl) Close() {
	mutex := g.cond.GetMutex()
	mutex.Lock()
	defer mutex.Unlock()

	g.open = false
}

func (g *gateImpl) IsOpen() bool {
	mutex := g.cond.GetMutex()
	mutex.Lock()
	defer mutex.Unlock()

	return g.open
}
