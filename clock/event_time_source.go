package clock

import (
	"sync"
	"time"
)

type (
	// EventTimeSource is a fake TimeSource. Unlike tick-based fake clocks, the
	// methods are synchronous: when Advance or Update is called, every timer
	// whose deadline has been reached fires on the calling goroutine before
	// the method returns.
	EventTimeSource struct {
		mu     sync.RWMutex
		now    time.Time
		timers []*eventTimer
	}

	// eventTimer is the fake implementation of Timer.
	eventTimer struct {
		// source links back to the owning EventTimeSource for synchronization
		source *EventTimeSource
		// deadline at which the timer fires
		deadline time.Time
		// callback invoked when the timer fires
		callback func()
		// done is true once the timer has fired or been stopped
		done bool
		// index of this timer in source.timers
		index int
	}
)

var _ TimeSource = (*EventTimeSource)(nil)

// NewEventTimeSource returns an EventTimeSource with the current time set to
// Unix zero: 1970-01-01 00:00:00 +0000 UTC.
func NewEventTimeSource() *EventTimeSource {
	return &EventTimeSource{
		now: time.Unix(0, 0),
	}
}

// Now returns the fake current time.
func (ts *EventTimeSource) Now() time.Time {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.now
}

// Since returns the fake time elapsed since t.
func (ts *EventTimeSource) Since(t time.Time) time.Duration {
	return ts.Now().Sub(t)
}

// AfterFunc returns a timer that fires after d. The time source is locked
// while the callback runs, so callbacks must not call mutating methods on the
// same time source or they will deadlock; wrap such calls in a goroutine. A
// non-positive duration fires the callback before AfterFunc returns.
func (ts *EventTimeSource) AfterFunc(d time.Duration, f func()) Timer {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if d < 0 {
		d = 0
	}
	t := &eventTimer{source: ts, deadline: ts.now.Add(d), callback: f}
	t.index = len(ts.timers)
	ts.timers = append(ts.timers, t)
	ts.fireTimers()

	return t
}

// NewTimer returns a buffered channel that receives the fake time once the
// deadline is reached.
func (ts *EventTimeSource) NewTimer(d time.Duration) (<-chan time.Time, Timer) {
	ch := make(chan time.Time, 1)
	t := ts.AfterFunc(d, func() {
		// the source is locked here; ts.now may be read directly
		ch <- ts.now
	})
	return ch, t
}

// Update sets the fake current time. It returns the time source so that calls
// can be chained: ts := NewEventTimeSource().Update(time.Now()).
func (ts *EventTimeSource) Update(now time.Time) *EventTimeSource {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.now = now
	ts.fireTimers()
	return ts
}

// Advance moves the fake current time forward by d.
func (ts *EventTimeSource) Advance(d time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.now = ts.now.Add(d)
	ts.fireTimers()
}

// NumTimers returns the number of timers that have not yet fired.
func (ts *EventTimeSource) NumTimers() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return len(ts.timers)
}

// fireTimers fires all timers whose deadline has been reached. Callers must
// hold ts.mu.
func (ts *EventTimeSource) fireTimers() {
	n := 0
	for _, t := range ts.timers {
		if t.deadline.After(ts.now) {
			ts.timers[n] = t
			t.index = n
			n++
		} else {
			t.callback()
			t.done = true
		}
	}
	ts.timers = ts.timers[:n]
}

// Reset rearms the timer to fire after d. Returns true if the timer was still
// active.
func (t *eventTimer) Reset(d time.Duration) bool {
	t.source.mu.Lock()
	defer t.source.mu.Unlock()

	if d < 0 {
		d = 0
	}

	wasActive := !t.done
	t.deadline = t.source.now.Add(d)
	if t.done {
		t.done = false
		t.index = len(t.source.timers)
		t.source.timers = append(t.source.timers, t)
	}
	t.source.fireTimers()
	return wasActive
}

// Stop prevents the timer from firing. Returns true if the timer was still
// active.
func (t *eventTimer) Stop() bool {
	t.source.mu.Lock()
	defer t.source.mu.Unlock()

	if t.done {
		return false
	}

	i := t.index
	timers := t.source.timers

	timers[i] = timers[len(timers)-1] // swap with last timer
	timers[i].index = i               // update index of swapped timer
	timers = timers[:len(timers)-1]   // shrink list

	t.source.timers = timers
	t.done = true // the timer must not be reused by fireTimers

	return true
}
