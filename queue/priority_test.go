package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type (
	priorityQueueSuite struct {
		*require.Assertions
		suite.Suite
	}
)

func TestPriorityQueueSuite(t *testing.T) {
	s := new(priorityQueueSuite)
	suite.Run(t, s)
}

func (s *priorityQueueSuite) SetupTest() {
	s.Assertions = require.New(s.T())
}

func (s *priorityQueueSuite) TestHighPriorityFirst() {
	q := NewPriority[string](4)
	s.True(q.Add(1, "low"))
	s.True(q.Add(0, "high"))

	item, ok := q.Remove()
	s.True(ok)
	s.Equal("high", item)

	item, ok = q.Remove()
	s.True(ok)
	s.Equal("low", item)
}

func (s *priorityQueueSuite) TestBlockingRemove() {
	q := NewPriority[int](4)

	resultCh := make(chan int, 1)
	go func() {
		item, ok := q.Remove()
		s.True(ok)
		resultCh <- item
	}()

	s.True(q.Add(1, 42))
	select {
	case item := <-resultCh:
		s.Equal(42, item)
	case <-time.After(10 * time.Second):
		s.Fail("Remove did not return after an item was added")
	}
}

func (s *priorityQueueSuite) TestInvalidPriority() {
	q := NewPriority[int](4)
	s.Panics(func() {
		q.Add(numPriorities, 1)
	})
}

func (s *priorityQueueSuite) TestCloseUnblocksRemove() {
	q := NewPriority[int](4)

	resultCh := make(chan bool, 1)
	go func() {
		_, ok := q.Remove()
		resultCh <- ok
	}()

	q.Close()
	select {
	case ok := <-resultCh:
		s.False(ok)
	case <-time.After(10 * time.Second):
		s.Fail("Remove did not return after the queue was closed")
	}
}

func (s *priorityQueueSuite) TestAddToFullClosedQueue() {
	q := NewPriority[int](1)
	s.True(q.Add(0, 1))
	q.Close()
	s.False(q.Add(0, 2))
}
