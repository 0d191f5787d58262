package testutils

import (
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type (
	WaitOptions struct {
		CheckInterval time.Duration
		MaxDuration   time.Duration
		NumGoRoutines int
	}
)

var (
	defaultWaitOptions = WaitOptions{
		CheckInterval: 1 * time.Millisecond,
		MaxDuration:   5 * time.Second,
		NumGoRoutines: 1,
	}
)

func WithCheckInterval(checkInterval time.Duration) func(*WaitOptions) {
	return func(wo *WaitOptions) {
		wo.CheckInterval = checkInterval
	}
}

func WithMaxDuration(maxDuration time.Duration) func(*WaitOptions) {
	return func(wo *WaitOptions) {
		wo.MaxDuration = maxDuration
	}
}

func WithNumGoRoutines(numGoRoutines int) func(*WaitOptions) {
	return func(wo *WaitOptions) {
		wo.NumGoRoutines = numGoRoutines
	}
}

// WaitGoRoutineWithFn waits for a goroutine with the given function on its
// call stack to appear within the duration. fn is either a func value or a
// string to look for in the fully qualified frame name; prefer a string like
// "(*TypeName).Method" when the bare method name would match unrelated frames.
func WaitGoRoutineWithFn(t testing.TB, fn any, opts ...func(*WaitOptions)) {
	t.Helper()

	wo := defaultWaitOptions
	for _, opt := range opts {
		opt(&wo)
	}

	targetFnName, isString := fn.(string)
	if !isString {
		var isFunc bool
		if targetFnName, isFunc = functionNameForPC(reflect.ValueOf(fn).Pointer()); !isFunc {
			t.Errorf("Invalid function %#v", fn)
		}
	}

	require.Eventually(t,
		func() bool {
			// 20 is a buffer for goroutines that might be created between the next 2 lines.
			stackRecords := make([]runtime.StackRecord, runtime.NumGoroutine()+20)
			stackRecordsLen, ok := runtime.GoroutineProfile(stackRecords)
			if !ok {
				t.Errorf("Size %d is too small for stack records. Need %d", len(stackRecords), stackRecordsLen)
			}

			numFound := 0
			for _, stackRecord := range stackRecords {
				frames := runtime.CallersFrames(stackRecord.Stack())
				for {
					frame, more := frames.Next()
					if strings.Contains(frame.Function, targetFnName) {
						numFound++
						if numFound == wo.NumGoRoutines {
							return true
						}
					}
					if !more {
						break
					}
				}
			}
			return false
		},
		wo.MaxDuration,
		wo.CheckInterval,
		"Function %s didn't appear in any goroutine call stack after %s", targetFnName, wo.MaxDuration.String())
}

func functionNameForPC(pc uintptr) (string, bool) {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "", false
	}
	elements := strings.Split(fn.Name(), ".")
	shortName := elements[len(elements)-1]
	return strings.TrimSuffix(shortName, "-fm"), true
}
