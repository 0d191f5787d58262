package locks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type (
	RWMutexSuite struct {
		*require.Assertions
		suite.Suite
	}
)

func TestRWMutexSuite(t *testing.T) {
	suite.Run(t, new(RWMutexSuite))
}

func (s *RWMutexSuite) SetupTest() {
	s.Assertions = require.New(s.T())
}

func (s *RWMutexSuite) TestBasicLocking() {
	lock := NewRWMutex()
	s.Nil(lock.Lock(context.Background()))
	lock.Unlock()
	s.Nil(lock.RLock(context.Background()))
	lock.RUnlock()
}

func (s *RWMutexSuite) TestSharedReaders() {
	numReaders := 8

	lock := NewRWMutex()

	entered := sync.WaitGroup{}
	entered.Add(numReaders)
	release := make(chan struct{})

	waitGroup := sync.WaitGroup{}
	waitGroup.Add(numReaders)
	for i := 0; i < numReaders; i++ {
		go func() {
			defer waitGroup.Done()

			s.Nil(lock.RLock(context.Background()))
			defer lock.RUnlock()

			entered.Done()
			<-release
		}()
	}

	// all readers hold the lock at the same time
	entered.Wait()
	close(release)
	waitGroup.Wait()
}

func (s *RWMutexSuite) TestExpiredContext() {
	lock := NewRWMutex()
	s.Nil(lock.Lock(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	cancel()
	err := lock.Lock(ctx)
	s.NotNil(err)
	s.Equal(err, ctx.Err())
	err = lock.RLock(ctx)
	s.NotNil(err)
	s.Equal(err, ctx.Err())

	lock.Unlock()

	s.Nil(lock.Lock(context.Background()))
	lock.Unlock()
}

func (s *RWMutexSuite) TestBailedAcquireReleases() {
	lock := NewRWMutex()
	s.Nil(lock.Lock(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.NotNil(lock.Lock(ctx))

	// the bailed acquirer obtains the lock once the holder releases it and
	// must hand it back, otherwise this final acquire would block forever
	lock.Unlock()
	s.Nil(lock.Lock(context.Background()))
	lock.Unlock()
}
