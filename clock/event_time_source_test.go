package clock_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motioncore/fibersync/clock"
)

// event counts how many times a timer callback fired. Callbacks run
// synchronously with calls to EventTimeSource.Advance, so no further
// synchronization is needed.
type event struct {
	t     *testing.T
	count int
}

func (e *event) Fire() {
	e.count++
}

func (e *event) AssertFiredOnce(msg string) {
	e.t.Helper()
	assert.Equal(e.t, 1, e.count, msg)
}

func (e *event) AssertFired(n int, msg string) {
	e.t.Helper()
	assert.Equal(e.t, n, e.count, msg)
}

func (e *event) AssertNotFired(msg string) {
	e.t.Helper()
	assert.Zero(e.t, e.count, msg)
}

func ExampleEventTimeSource() {
	source := clock.NewEventTimeSource()

	source.AfterFunc(time.Second, func() {
		fmt.Println("timer fired")
	})

	fmt.Println("advancing time source by 1 second")
	source.Advance(time.Second)
	fmt.Println("time source advanced")

	// Output:
	// advancing time source by 1 second
	// timer fired
	// time source advanced
}

func TestEventTimeSource_AfterFunc(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	ev := event{t: t}

	source.AfterFunc(2, ev.Fire)

	source.Advance(1)
	ev.AssertNotFired(
		"Advancing the time source should not fire the timer if its deadline still has not been reached",
	)

	source.Advance(1)
	ev.AssertFiredOnce("Advancing a time source past a timer's deadline should fire the timer")
}

func TestEventTimeSource_AfterFunc_Reset(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	ev1 := event{t: t}
	ev2 := event{t: t}

	timer := source.AfterFunc(2, ev1.Fire)
	source.AfterFunc(2, ev2.Fire)

	source.Advance(1)
	ev1.AssertNotFired("Timer should not fire before deadline")
	ev2.AssertNotFired("Timer should not fire before deadline")

	assert.True(t, timer.Reset(2), "`Reset` should return true if the timer was not already stopped")

	source.Advance(1)
	ev1.AssertNotFired("Timer which was reset should not fire after original deadline but before new deadline")
	ev2.AssertFiredOnce("Timer which was not reset should fire after deadline")

	source.Advance(1)
	ev1.AssertFiredOnce("The reset timer should fire after its new deadline")

	assert.False(t, timer.Reset(1), "`Reset` should return false if the timer was already stopped")
	source.Advance(1)
	ev1.AssertFired(2, "The timer should fire again")
}

func TestEventTimeSource_AfterFunc_Stop(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	ev1 := event{t: t}
	ev2 := event{t: t}

	timer := source.AfterFunc(1, ev1.Fire)
	source.AfterFunc(1, ev2.Fire)

	assert.True(t, timer.Stop(), "`Stop` should return true if the timer was not already stopped")

	source.Advance(1)
	ev1.AssertNotFired("A timer should not fire if it was already stopped")
	ev2.AssertFiredOnce("A timer which was not stopped should fire after its deadline")

	assert.False(t, timer.Stop(), "`Stop` should return false if the timer was already stopped")
}

func TestEventTimeSource_AfterFunc_NegativeDelay(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	ev1 := event{t: t}

	timer := source.AfterFunc(-1, ev1.Fire)

	ev1.AssertFiredOnce("A timer with a negative delay should fire immediately")
	assert.False(t, timer.Stop(), "`Stop` should return false if the timer was already stopped")
}

func TestEventTimeSource_Update(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	ev1 := event{t: t}
	ev2 := event{t: t}

	source.AfterFunc(1, ev1.Fire)
	source.AfterFunc(1, ev2.Fire)

	assert.Equal(
		t, time.Unix(0, 0), source.Now(), "The fake time source should start at the unix epoch",
	)

	source.Update(time.Unix(0, 1))
	assert.Equal(t, time.Unix(0, 1), source.Now())
	ev1.AssertFiredOnce("Timer should fire after deadline")
	ev2.AssertFiredOnce("Timer should fire after deadline")
}

func TestEventTimeSource_NewTimer(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	ch, timer := source.NewTimer(time.Second)

	select {
	case <-ch:
		t.Fatal("timer channel should be empty before the deadline")
	default:
	}

	source.Advance(time.Second)
	select {
	case now := <-ch:
		assert.Equal(t, time.Unix(1, 0), now, "timer channel should deliver the fake fire time")
	default:
		t.Fatal("timer channel should have fired at the deadline")
	}
	assert.False(t, timer.Stop(), "`Stop` should return false after the timer fired")
}

func TestEventTimeSource_NumTimers(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	require.Zero(t, source.NumTimers())

	t1 := source.AfterFunc(1, func() {})
	source.AfterFunc(2, func() {})
	require.Equal(t, 2, source.NumTimers())

	t1.Stop()
	require.Equal(t, 1, source.NumTimers())

	source.Advance(2)
	require.Zero(t, source.NumTimers())
}

func TestEventTimeSource_Since(t *testing.T) {
	t.Parallel()

	source := clock.NewEventTimeSource()
	start := source.Now()
	source.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, source.Since(start))
}
