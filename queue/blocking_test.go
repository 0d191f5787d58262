package queue

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/motioncore/fibersync/clock"
	"github.com/motioncore/fibersync/internal/testutils"
)

type (
	blockingQueueSuite struct {
		*require.Assertions
		suite.Suite
	}
)

func TestBlockingQueueSuite(t *testing.T) {
	s := new(blockingQueueSuite)
	suite.Run(t, s)
}

func (s *blockingQueueSuite) SetupTest() {
	s.Assertions = require.New(s.T())
}

func (s *blockingQueueSuite) TestPutTake() {
	q := NewBlocking[int]()
	s.True(q.Put(1))
	s.True(q.Put(2))
	s.Equal(2, q.Len())

	item, ok := q.Take()
	s.True(ok)
	s.Equal(1, item)
	item, ok = q.Take()
	s.True(ok)
	s.Equal(2, item)
	s.Zero(q.Len())
}

func (s *blockingQueueSuite) TestTryTake() {
	q := NewBlocking[int]()

	_, ok := q.TryTake()
	s.False(ok)

	s.True(q.Put(7))
	item, ok := q.TryTake()
	s.True(ok)
	s.Equal(7, item)

	q.Close()
	_, ok = q.TryTake()
	s.False(ok)
}

func (s *blockingQueueSuite) TestFIFOOrder() {
	numItems := 128

	q := NewBlocking[int]()
	for i := 0; i < numItems; i++ {
		s.True(q.Put(i))
	}
	for i := 0; i < numItems; i++ {
		item, ok := q.Take()
		s.True(ok)
		s.Equal(i, item)
	}
}

func (s *blockingQueueSuite) TestTakeBlocksUntilPut() {
	q := NewBlocking[string]()

	resultCh := make(chan string, 1)
	go func() {
		item, ok := q.Take()
		s.True(ok)
		resultCh <- item
	}()

	testutils.WaitGoRoutineWithFn(s.T(), "(*PredicateConditionImpl).Wait")

	s.True(q.Put("item"))
	select {
	case item := <-resultCh:
		s.Equal("item", item)
	case <-time.After(10 * time.Second):
		s.Fail("taker did not return after an item was put")
	}
}

func (s *blockingQueueSuite) TestTakeForTimeout() {
	timeSource := clock.NewEventTimeSource()
	q := NewBlockingWithTimeSource[int](timeSource)

	resultCh := make(chan bool, 1)
	go func() {
		_, ok := q.TakeFor(10 * time.Second)
		resultCh <- ok
	}()

	s.Eventually(func() bool {
		return timeSource.NumTimers() == 1
	}, 10*time.Second, time.Millisecond)

	timeSource.Advance(10 * time.Second)

	select {
	case ok := <-resultCh:
		s.False(ok)
	case <-time.After(10 * time.Second):
		s.Fail("TakeFor did not return after the deadline fired")
	}
}

func (s *blockingQueueSuite) TestTakeForDelivery() {
	q := NewBlocking[int]()

	resultCh := make(chan int, 1)
	go func() {
		item, ok := q.TakeFor(time.Minute)
		s.True(ok)
		resultCh <- item
	}()

	testutils.WaitGoRoutineWithFn(s.T(), "(*PredicateConditionImpl).WaitFor")

	s.True(q.Put(42))
	select {
	case item := <-resultCh:
		s.Equal(42, item)
	case <-time.After(10 * time.Second):
		s.Fail("TakeFor did not return after an item was put")
	}
}

func (s *blockingQueueSuite) TestCloseWakesTakers() {
	numTakers := 16

	q := NewBlocking[int]()

	waitGroup := sync.WaitGroup{}
	waitGroup.Add(numTakers)
	for i := 0; i < numTakers; i++ {
		go func() {
			defer waitGroup.Done()
			_, ok := q.Take()
			s.False(ok)
		}()
	}

	testutils.WaitGoRoutineWithFn(s.T(),
		"(*PredicateConditionImpl).Wait",
		testutils.WithNumGoRoutines(numTakers),
	)

	q.Close()
	waitGroup.Wait()
}

func (s *blockingQueueSuite) TestDrainAfterClose() {
	q := NewBlocking[int]()
	s.True(q.Put(1))
	s.True(q.Put(2))
	q.Close()

	s.False(q.Put(3))

	item, ok := q.Take()
	s.True(ok)
	s.Equal(1, item)
	item, ok = q.Take()
	s.True(ok)
	s.Equal(2, item)
	_, ok = q.Take()
	s.False(ok)
}

func (s *blockingQueueSuite) TestConcurrentProducersConsumers() {
	numProducers := 8
	numConsumers := 8
	numItems := 128

	q := NewBlocking[int]()

	producerGroup := sync.WaitGroup{}
	producerGroup.Add(numProducers)
	for i := 0; i < numProducers; i++ {
		go func() {
			defer producerGroup.Done()
			for j := 0; j < numItems; j++ {
				s.True(q.Put(1))
			}
		}()
	}

	total := atomic.Int64{}
	consumerGroup := sync.WaitGroup{}
	consumerGroup.Add(numConsumers)
	for i := 0; i < numConsumers; i++ {
		go func() {
			defer consumerGroup.Done()
			for {
				item, ok := q.Take()
				if !ok {
					return
				}
				total.Add(int64(item))
			}
		}()
	}

	producerGroup.Wait()
	q.Close()
	consumerGroup.Wait()

	s.Equal(int64(numProducers*numItems), total.Load())
}
