package stress

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/dgryski/go-farm"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/motioncore/fibersync/backoff"
	"github.com/motioncore/fibersync/future"
	"github.com/motioncore/fibersync/goro"
	"github.com/motioncore/fibersync/locks"
	"github.com/motioncore/fibersync/log"
	"github.com/motioncore/fibersync/log/tag"
	"github.com/motioncore/fibersync/metrics"
	"github.com/motioncore/fibersync/queue"
)

const (
	// queueKeySpace is the number of distinct item keys the queue scenario
	// spreads its work over.
	queueKeySpace = 8
	// queueLockShards is the shard count of the keyed lock serializing per key
	// tallies.
	queueLockShards = 16

	stressQueueName = "stress"
)

// queueItem is one unit of work flowing through the queue scenario.
type queueItem struct {
	key string
	seq int64
}

// runQueueScenario pushes items through a blocking queue from a set of rate
// limited producers to a set of consumers doing timed takes. Consumers tally
// items per key under a keyed lock; at the end every produced item must have
// been consumed and tallied exactly once.
func (h *Host) runQueueScenario(ctx context.Context, logger log.Logger) (int64, error) {
	cfg := h.config.Queue.withDefaults()
	q := queue.NewBlocking[queueItem]()
	keyedLock := locks.NewKeyedMutex[string](queueLockShards, func(key string) uint32 {
		return farm.Hash32([]byte(key))
	})

	keys := make([]string, queueKeySpace)
	tallies := make(map[string]*int64, queueKeySpace)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		tallies[keys[i]] = new(int64)
	}

	var nextSeq, produced, consumed, takeTimeouts int64
	var closed int32

	producers, prodCtx := errgroup.WithContext(ctx)
	for p := 0; p < cfg.Producers; p++ {
		producers.Go(func() error {
			var limiter *rate.Limiter
			if cfg.ProduceRate > 0 {
				limiter = rate.NewLimiter(rate.Limit(cfg.ProduceRate), 1)
			}
			for i := 0; i < cfg.Items; i++ {
				if limiter != nil {
					if err := limiter.Wait(prodCtx); err != nil {
						return err
					}
				} else if prodCtx.Err() != nil {
					return prodCtx.Err()
				}
				seq := atomic.AddInt64(&nextSeq, 1)
				if !q.Put(queueItem{key: keys[int(seq)%queueKeySpace], seq: seq}) {
					return errors.New("queue closed while producing")
				}
				atomic.AddInt64(&produced, 1)
				metrics.QueueDepth.With(h.metricsHandler).Record(float64(q.Len()), metrics.QueueNameTag(stressQueueName))
			}
			return nil
		})
	}

	consumers, consCtx := errgroup.WithContext(ctx)
	for c := 0; c < cfg.Consumers; c++ {
		consumers.Go(func() error {
			for {
				if consCtx.Err() != nil {
					return consCtx.Err()
				}
				takeStart := h.timeSource.Now()
				item, ok := q.TakeFor(cfg.TakeTimeout)
				if !ok {
					if atomic.LoadInt32(&closed) == 1 && q.Len() == 0 {
						return nil
					}
					atomic.AddInt64(&takeTimeouts, 1)
					continue
				}
				metrics.QueueTakeLatency.With(h.metricsHandler).Record(h.timeSource.Since(takeStart), metrics.QueueNameTag(stressQueueName))
				keyedLock.LockKey(item.key)
				*tallies[item.key]++
				keyedLock.UnlockKey(item.key)
				atomic.AddInt64(&consumed, 1)
			}
		})
	}

	perr := producers.Wait()
	atomic.StoreInt32(&closed, 1)
	q.Close()
	cerr := consumers.Wait()

	producedTotal := atomic.LoadInt64(&produced)
	consumedTotal := atomic.LoadInt64(&consumed)

	var verifyErr error
	if perr == nil && cerr == nil {
		var tallied int64
		for _, key := range keys {
			keyedLock.LockKey(key)
			tallied += *tallies[key]
			keyedLock.UnlockKey(key)
		}
		if consumedTotal != producedTotal || tallied != producedTotal {
			verifyErr = fmt.Errorf(
				"queue scenario dropped items: produced %d, consumed %d, tallied %d",
				producedTotal, consumedTotal, tallied)
		}
	}
	if timeouts := atomic.LoadInt64(&takeTimeouts); timeouts > 0 {
		logger.Debug("queue takes timed out and were retried", tag.Counter(int(timeouts)))
	}

	return producedTotal + consumedTotal, multierr.Combine(perr, cerr, verifyErr)
}

// runGateScenario parks a crowd of waiters against a gate while a cycler
// closes and reopens it. Waiters do timed waits so a closed window shows up
// as a timeout, not a hang.
func (h *Host) runGateScenario(ctx context.Context, logger log.Logger) (int64, error) {
	cfg := h.config.Gate.withDefaults()
	g := locks.NewOpenGate()

	var blocked, passes, waitTimeouts int64

	cycler := goro.Go(ctx, func(ctx context.Context) error {
		for cycle := 0; cycle < cfg.Cycles; cycle++ {
			g.Close()
			if err := h.pause(ctx, backoff.JitDuration(time.Millisecond, 0.5)); err != nil {
				g.Open()
				return err
			}
			metrics.GateWaiters.With(h.metricsHandler).Record(float64(atomic.LoadInt64(&blocked)))
			g.Open()
			metrics.GateOpens.With(h.metricsHandler).Record(1)
			if err := h.pause(ctx, backoff.JitDuration(time.Millisecond, 0.5)); err != nil {
				return err
			}
		}
		return nil
	})

	var waiters errgroup.Group
	for w := 0; w < cfg.Waiters; w++ {
		waiters.Go(func() error {
			for {
				select {
				case <-cycler.Done():
					return nil
				default:
				}
				atomic.AddInt64(&blocked, 1)
				open := g.WaitFor(backoff.JitDuration(5*time.Millisecond, 0.5))
				atomic.AddInt64(&blocked, -1)
				if open {
					atomic.AddInt64(&passes, 1)
				} else {
					atomic.AddInt64(&waitTimeouts, 1)
				}
			}
		})
	}

	<-cycler.Done()
	// release anyone still parked from an interrupted cycle
	g.Open()
	werr := waiters.Wait()

	cyclerErr := cycler.Err()
	passTotal := atomic.LoadInt64(&passes)

	var verifyErr error
	if cyclerErr == nil && werr == nil {
		if !g.IsOpen() {
			verifyErr = errors.New("gate scenario finished with a closed gate")
		} else if passTotal == 0 {
			verifyErr = errors.New("gate scenario finished without a single waiter passing")
		}
	}
	logger.Debug("gate cycles finished",
		tag.Counter(int(passTotal)),
		tag.Value(atomic.LoadInt64(&waitTimeouts)))

	return passTotal, multierr.Combine(cyclerErr, werr, verifyErr)
}

// runConditionScenario runs a token pool guarded by a single condition.
// Notifiers push tokens and fire a mix of single and broadcast notifications;
// waiters do timed waits and claim tokens under the condition's own mutex.
// The waiter that claims the last token resolves a completion future, after
// which the host aborts the pool to release everyone still parked.
func (h *Host) runConditionScenario(ctx context.Context, logger log.Logger) (int64, error) {
	cfg := h.config.Condition.withDefaults()
	totalTokens := cfg.Notifiers * cfg.Tokens

	// tokens, consumed and aborted are guarded by the condition's mutex
	var tokens, consumed int
	var aborted bool
	cond := locks.NewPredicateCondition(func() bool {
		return tokens > 0 || aborted
	})
	mu := cond.GetMutex()
	completion := future.NewFuture[int]()

	waiters, waitCtx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Waiters; w++ {
		waiters.Go(func() error {
			for {
				mu.Lock()
				if tokens > 0 {
					tokens--
					consumed++
					last := consumed == totalTokens
					mu.Unlock()
					metrics.ConditionWaits.With(h.metricsHandler).Record(1)
					if last {
						completion.Set(totalTokens, nil)
					}
					continue
				}
				stop := aborted
				mu.Unlock()
				if stop {
					return nil
				}
				if waitCtx.Err() != nil {
					return waitCtx.Err()
				}

				waitStart := h.timeSource.Now()
				if cond.WaitFor(cfg.WaitTimeout) {
					metrics.ConditionWaitLatency.With(h.metricsHandler).Record(h.timeSource.Since(waitStart))
				} else {
					metrics.ConditionTimeouts.With(h.metricsHandler).Record(1)
				}
			}
		})
	}

	notifiers, notifyCtx := errgroup.WithContext(ctx)
	for n := 0; n < cfg.Notifiers; n++ {
		notifiers.Go(func() error {
			for i := 0; i < cfg.Tokens; i++ {
				mu.Lock()
				tokens++
				mu.Unlock()
				if rand.Float64() < cfg.SignalRatio {
					cond.NotifyOne()
				} else {
					cond.NotifyAll()
				}
				metrics.Notifications.With(h.metricsHandler).Record(1)

				if i%16 == 15 {
					if err := h.pause(notifyCtx, backoff.JitDuration(200*time.Microsecond, 1)); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}

	nerr := notifiers.Wait()
	_, completionErr := completion.Get(ctx)

	// release everyone still parked, whether the pool drained or the run was
	// cut short
	mu.Lock()
	aborted = true
	mu.Unlock()
	cond.NotifyAll()
	werr := waiters.Wait()

	mu.Lock()
	remaining := tokens
	consumedTotal := consumed
	mu.Unlock()

	var verifyErr error
	if nerr == nil && werr == nil && completionErr == nil {
		if consumedTotal != totalTokens || remaining != 0 {
			verifyErr = fmt.Errorf(
				"condition scenario lost tokens: produced %d, consumed %d, remaining %d",
				totalTokens, consumedTotal, remaining)
		}
	}
	logger.Debug("condition pool drained", tag.Counter(consumedTotal))

	return int64(consumedTotal), multierr.Combine(nerr, completionErr, werr, verifyErr)
}

// runFutureScenario resolves a batch of futures from jittered resolvers while
// several getters per future race Get against GetFor. Every fourth future
// resolves to an error on purpose so the error path gets exercised too.
func (h *Host) runFutureScenario(ctx context.Context, logger log.Logger) (int64, error) {
	cfg := h.config.Future.withDefaults()

	var resolved, timeouts int64
	g, gctx := errgroup.WithContext(ctx)

	for i := 0; i < cfg.Futures; i++ {
		f := future.NewFuture[string]()
		idx := i
		expectErr := idx%4 == 3
		value := fmt.Sprintf("result-%d", idx)

		g.Go(func() error {
			pauseErr := h.pause(gctx, backoff.JitDuration(200*time.Microsecond, 1))
			// resolve even when interrupted so no getter is left hanging
			if expectErr {
				f.Set("", fmt.Errorf("induced failure for future %d", idx))
			} else {
				f.Set(value, nil)
			}
			return pauseErr
		})

		for w := 0; w < cfg.WaitersPerFuture; w++ {
			useContextGet := w%2 == 0
			g.Go(func() error {
				var got string
				var err error
				if useContextGet {
					got, err = f.Get(gctx)
				} else {
					got, err = f.GetFor(cfg.ResolveTimeout)
				}

				switch {
				case errors.Is(err, future.ErrTimeout):
					atomic.AddInt64(&timeouts, 1)
					metrics.FutureTimeouts.With(h.metricsHandler).Record(1)
					return fmt.Errorf("future %d timed out waiting for its resolver", idx)
				case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
					return err
				case expectErr:
					if err == nil {
						return fmt.Errorf("future %d expected an error, resolved to %q", idx, got)
					}
				case err != nil:
					return err
				case got != value:
					return fmt.Errorf("future %d resolved to %q, want %q", idx, got, value)
				}

				atomic.AddInt64(&resolved, 1)
				metrics.FutureResolved.With(h.metricsHandler).Record(1)
				return nil
			})
		}
	}

	err := g.Wait()
	resolvedTotal := atomic.LoadInt64(&resolved)
	logger.Debug("futures settled",
		tag.Counter(int(resolvedTotal)),
		tag.Value(atomic.LoadInt64(&timeouts)))

	return resolvedTotal, err
}
