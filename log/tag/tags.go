package tag

import (
	"time"
)

// All logging tags are defined in this file. Tags are the only way dynamic
// values reach a log line; messages themselves stay static.

// LoggingCallAtKey is the tag key for the file/line the log call was made at.
const LoggingCallAtKey = "logging-call-at"

// Error returns tag for Error.
func Error(err error) ZapTag {
	return NewErrorTag(err)
}

// Name returns tag for Name.
func Name(name string) ZapTag {
	return NewStringTag("name", name)
}

// Operation returns tag for Operation.
func Operation(operation string) ZapTag {
	return NewStringTag("operation", operation)
}

// Timeout returns tag for Timeout.
func Timeout(timeout time.Duration) ZapTag {
	return NewDurationTag("timeout", timeout)
}

// Deadline returns tag for Deadline.
func Deadline(deadline time.Time) ZapTag {
	return NewTimeTag("deadline", deadline)
}

// WaitDuration returns tag for WaitDuration.
func WaitDuration(d time.Duration) ZapTag {
	return NewDurationTag("wait-duration", d)
}

// Waiters returns tag for Waiters.
func Waiters(n int) ZapTag {
	return NewInt("waiters", n)
}

// QueueName returns tag for QueueName.
func QueueName(name string) ZapTag {
	return NewStringTag("queue-name", name)
}

// QueueSize returns tag for QueueSize.
func QueueSize(n int) ZapTag {
	return NewInt("queue-size", n)
}

// Key returns tag for Key.
func Key(key interface{}) ZapTag {
	return NewAnyTag("key", key)
}

// Attempt returns tag for Attempt.
func Attempt(attempt int32) ZapTag {
	return NewInt32("attempt", attempt)
}

// RunID returns tag for RunID.
func RunID(runID string) ZapTag {
	return NewStringTag("run-id", runID)
}

// Scenario returns tag for Scenario.
func Scenario(scenario string) ZapTag {
	return NewStringTag("scenario", scenario)
}

// Counter returns tag for Counter.
func Counter(n int) ZapTag {
	return NewInt("counter", n)
}

// Operations returns tag for Operations.
func Operations(n int64) ZapTag {
	return NewInt64("operations", n)
}

// Failures returns tag for Failures.
func Failures(n int64) ZapTag {
	return NewInt64("failures", n)
}

// Round returns tag for Round.
func Round(round int) ZapTag {
	return NewInt("round", round)
}

// Rounds returns tag for Rounds.
func Rounds(n int) ZapTag {
	return NewInt("rounds", n)
}

// Value returns tag for Value.
func Value(v interface{}) ZapTag {
	return NewAnyTag("value", v)
}

// ComponentName returns tag for ComponentName.
func ComponentName(component string) ZapTag {
	return NewStringTag("component", component)
}

// StackTrace returns tag for StackTrace.
func StackTrace(stackTrace string) ZapTag {
	return NewStringTag("stack-trace", stackTrace)
}
