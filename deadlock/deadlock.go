package deadlock

import (
	"context"
	"runtime/pprof"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/fx"

	"github.com/motioncore/fibersync/clock"
	"github.com/motioncore/fibersync/goro"
	"github.com/motioncore/fibersync/log"
	"github.com/motioncore/fibersync/log/tag"
	"github.com/motioncore/fibersync/metrics"
)

const (
	defaultInterval          = 30 * time.Second
	defaultMaxWorkersPerRoot = 10
)

type (
	params struct {
		fx.In

		Logger         log.Logger
		Config         Config
		TimeSource     clock.TimeSource
		MetricsHandler metrics.Handler

		Roots []Pingable `group:"deadlockDetectorRoots"`
	}

	// Config holds the deadlock detector settings.
	Config struct {
		// DumpGoroutines writes a goroutine profile to the log when a
		// potential deadlock is detected.
		DumpGoroutines bool `yaml:"dumpGoroutines"`
		// AbortProcess kills the process when a potential deadlock is
		// detected.
		AbortProcess bool `yaml:"abortProcess"`
		// Interval between ping rounds on each root.
		Interval time.Duration `yaml:"interval"`
		// MaxWorkersPerRoot limits how many checks can block concurrently
		// before new ones have to wait for a free worker.
		MaxWorkersPerRoot int `yaml:"maxWorkersPerRoot"`
	}

	deadlockDetector struct {
		logger         log.Logger
		metricsHandler metrics.Handler
		timeSource     clock.TimeSource
		config         Config
		roots          []Pingable
		loops          goro.Group
	}

	loopContext struct {
		dd      *deadlockDetector
		root    Pingable
		ch      chan PingCheck
		workers int32
	}
)

// NewDeadlockDetector returns a detector that periodically pings the locks of
// all registered roots and raises an alarm when one of them stays blocked past
// its timeout.
func NewDeadlockDetector(params params) *deadlockDetector {
	config := params.Config
	if config.Interval <= 0 {
		config.Interval = defaultInterval
	}
	if config.MaxWorkersPerRoot <= 0 {
		config.MaxWorkersPerRoot = defaultMaxWorkersPerRoot
	}
	return &deadlockDetector{
		logger:         log.With(params.Logger, tag.ComponentName("deadlock-detector")),
		metricsHandler: params.MetricsHandler.WithTags(metrics.OperationTag(metrics.DeadlockDetectorScope)),
		timeSource:     params.TimeSource,
		config:         config,
		roots:          params.Roots,
	}
}

func (dd *deadlockDetector) Start() error {
	for _, root := range dd.roots {
		loopCtx := &loopContext{
			dd:   dd,
			root: root,
			ch:   make(chan PingCheck),
		}
		dd.loops.Go(loopCtx.run)
	}
	return nil
}

func (dd *deadlockDetector) Stop() error {
	dd.loops.Cancel()
	// don't wait for workers to exit, they may be blocked
	return nil
}

func (dd *deadlockDetector) detected(name string) {
	metrics.DeadlockDetected.With(dd.metricsHandler).Record(1)
	dd.logger.Error("potential deadlock detected", tag.Name(name))

	if dd.config.DumpGoroutines {
		dd.dumpGoroutines()
	}

	if dd.config.AbortProcess {
		dd.logger.Fatal("aborting process due to potential deadlock")
	}
}

func (dd *deadlockDetector) dumpGoroutines() {
	profile := pprof.Lookup("goroutine")
	if profile == nil {
		dd.logger.Error("could not find goroutine profile")
		return
	}
	var b strings.Builder
	err := profile.WriteTo(&b, 1) // 1 is magic value that means "text format"
	if err != nil {
		dd.logger.Error("failed to get goroutine profile", tag.Error(err))
		return
	}
	// write it as a single log line with embedded newlines.
	// the value starts with "goroutine profile: total ..." so it should be clear
	dd.logger.Info("dumping goroutine profile for suspected deadlock")
	dd.logger.Info(b.String())
}

func (lc *loopContext) run(ctx context.Context) error {
	for {
		// ping blocks until all checks have been handed off to workers
		lc.ping(ctx, []Pingable{lc.root})

		timerCh, timer := lc.dd.timeSource.NewTimer(lc.dd.config.Interval)
		select {
		case <-timerCh:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

func (lc *loopContext) ping(ctx context.Context, pingables []Pingable) {
	for _, pingable := range pingables {
		for _, check := range pingable.GetPingChecks() {
			select {
			case lc.ch <- check:
			case <-ctx.Done():
				return
			default:
				// maybe add another worker if blocked
				w := atomic.LoadInt32(&lc.workers)
				if w < int32(lc.dd.config.MaxWorkersPerRoot) && atomic.CompareAndSwapInt32(&lc.workers, w, w+1) {
					lc.dd.loops.Go(lc.worker)
				}
				select {
				case lc.ch <- check:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

func (lc *loopContext) worker(ctx context.Context) error {
	for {
		var check PingCheck
		select {
		case check = <-lc.ch:
		case <-ctx.Done():
			return ctx.Err()
		}

		lc.dd.logger.Debug("starting ping check", tag.Name(check.Name))
		startTime := lc.dd.timeSource.Now()

		// Using AfterFunc is cheaper than creating another goroutine to be the
		// waiter, since in most cases the timer will be stopped before firing.
		t := lc.dd.timeSource.AfterFunc(check.Timeout, func() {
			// check if we're shutting down
			if ctx.Err() != nil {
				return
			}
			lc.dd.detected(check.Name)
		})
		newPingables := check.Ping()
		t.Stop()
		if len(check.MetricsName) > 0 {
			lc.dd.metricsHandler.Timer(check.MetricsName).Record(lc.dd.timeSource.Since(startTime))
		}
		lc.dd.logger.Debug("ping check succeeded", tag.Name(check.Name))

		lc.ping(ctx, newPingables)
	}
}
