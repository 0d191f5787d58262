package deadlock

import (
	"sync"
	"time"
)

type (
	// Pingable is implemented by components whose locks should be covered by
	// the deadlock detector.
	Pingable interface {
		GetPingChecks() []PingCheck
	}

	// PingCheck is one possibly-blocked thing to check.
	PingCheck struct {
		// Name of this check, shows up in logs.
		Name string
		// Timeout after which the check is considered deadlocked.
		Timeout time.Duration
		// Ping func that does a blocking acquire and release, and returns more
		// pingables underneath this one (or nil).
		Ping func() []Pingable
		// MetricsName, if set, records the observed ping latency as a timer.
		MetricsName string
	}
)

// LockPing returns a Ping func that acquires and releases the given lock.
func LockPing(lock sync.Locker) func() []Pingable {
	return func() []Pingable {
		// just checking if we can acquire the lock
		lock.Lock()
		// nolint:staticcheck
		lock.Unlock()
		return nil
	}
}
