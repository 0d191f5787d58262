package locks

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/motioncore/fibersync/clock"
	"github.com/motioncore/fibersync/internal/testutils"
)

type (
	gateSuite struct {
		*require.Assertions
		suite.Suite
	}
)

func TestGateSuite(t *testing.T) {
	s := new(gateSuite)
	suite.Run(t, s)
}

func (s *gateSuite) SetupTest() {
	s.Assertions = require.New(s.T())
}

func (s *gateSuite) TestOpenGateDoesNotBlock() {
	gate := NewOpenGate()
	s.True(gate.IsOpen())
	gate.Wait()
	s.True(gate.WaitFor(0))
}

func (s *gateSuite) TestOpenReleasesWaiters() {
	numWaiters := 16

	gate := NewGate()
	s.False(gate.IsOpen())

	waitGroup := sync.WaitGroup{}
	waitGroup.Add(numWaiters)
	for i := 0; i < numWaiters; i++ {
		go func() {
			defer waitGroup.Done()
			gate.Wait()
		}()
	}

	testutils.WaitGoRoutineWithFn(s.T(),
		"(*PredicateConditionImpl).Wait",
		testutils.WithNumGoRoutines(numWaiters),
	)

	gate.Open()
	waitGroup.Wait()
	s.True(gate.IsOpen())
}

func (s *gateSuite) TestOpenIdempotent() {
	gate := NewGate()
	gate.Open()
	gate.Open()
	s.True(gate.IsOpen())
	gate.Wait()
}

func (s *gateSuite) TestReclose() {
	gate := NewGate()
	gate.Open()
	gate.Wait()

	gate.Close()
	s.False(gate.IsOpen())
	s.False(gate.WaitFor(10 * time.Millisecond))

	done := make(chan struct{})
	go func() {
		defer close(done)
		gate.Wait()
	}()

	testutils.WaitGoRoutineWithFn(s.T(), "(*PredicateConditionImpl).Wait")

	gate.Open()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		s.Fail("waiter did not return after the gate reopened")
	}
}

func (s *gateSuite) TestWaitForDeadline() {
	timeSource := clock.NewEventTimeSource()
	gate := NewGateWithTimeSource(timeSource)

	resultCh := make(chan bool, 1)
	go func() {
		resultCh <- gate.WaitFor(time.Minute)
	}()

	s.Eventually(func() bool {
		return timeSource.NumTimers() == 1
	}, 10*time.Second, time.Millisecond)

	timeSource.Advance(time.Minute)

	select {
	case result := <-resultCh:
		s.False(result)
	case <-time.After(10 * time.Second):
		s.Fail("WaitFor did not return after the deadline fired")
	}
}
