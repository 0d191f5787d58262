package clock

import "time"

type (
	// TimeSource is the clock every timed operation in this module reads.
	// Production code uses NewRealTimeSource; tests use EventTimeSource so
	// deadlines can be driven deterministically.
	TimeSource interface {
		Now() time.Time
		Since(t time.Time) time.Duration
		// AfterFunc waits for the duration to elapse and then calls f in its
		// own goroutine (real source) or synchronously from Advance/Update
		// (event source).
		AfterFunc(d time.Duration, f func()) Timer
		// NewTimer returns a channel that delivers the current time after d,
		// plus the Timer controlling it.
		NewTimer(d time.Duration) (<-chan time.Time, Timer)
	}

	// Timer is a timer started by a TimeSource.
	Timer interface {
		// Reset rearms the timer to fire after d. Returns true if the timer
		// was still active.
		Reset(d time.Duration) bool
		// Stop prevents the timer from firing. Returns true if the timer was
		// still active. Stop does not drain a NewTimer channel.
		Stop() bool
	}

	// RealTimeSource serves real wall clock time.
	RealTimeSource struct{}

	realTimer struct {
		timer *time.Timer
	}
)

var _ TimeSource = (*RealTimeSource)(nil)

// NewRealTimeSource returns a TimeSource backed by the system clock.
func NewRealTimeSource() *RealTimeSource {
	return &RealTimeSource{}
}

func (ts *RealTimeSource) Now() time.Time {
	return time.Now().UTC()
}

func (ts *RealTimeSource) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func (ts *RealTimeSource) AfterFunc(d time.Duration, f func()) Timer {
	return &realTimer{timer: time.AfterFunc(d, f)}
}

func (ts *RealTimeSource) NewTimer(d time.Duration) (<-chan time.Time, Timer) {
	t := time.NewTimer(d)
	return t.C, &realTimer{timer: t}
}

func (t *realTimer) Reset(d time.Duration) bool {
	return t.timer.Reset(d)
}

func (t *realTimer) Stop() bool {
	return t.timer.Stop()
}
