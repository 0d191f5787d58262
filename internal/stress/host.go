package stress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/multierr"

	"github.com/motioncore/fibersync/clock"
	"github.com/motioncore/fibersync/deadlock"
	"github.com/motioncore/fibersync/goro"
	"github.com/motioncore/fibersync/log"
	"github.com/motioncore/fibersync/log/tag"
	"github.com/motioncore/fibersync/metrics"
)

type (
	params struct {
		fx.In

		Config         Config
		Logger         log.Logger
		MetricsHandler metrics.Handler
		TimeSource     clock.TimeSource
		Shutdowner     fx.Shutdowner `optional:"true"`
	}

	// Host drives a configured stress run over the synchronization primitives
	// and reports progress while doing so. A host runs its rounds once; when
	// they finish it asks the app to shut down.
	Host struct {
		config         Config
		logger         log.Logger
		metricsHandler metrics.Handler
		timeSource     clock.TimeSource
		shutdowner     fx.Shutdowner
		runID          string

		scoreboard *scoreboard
		goros      goro.Group
	}
)

func NewHost(params params) *Host {
	runID := uuid.NewString()
	return &Host{
		config:         params.Config,
		logger:         log.With(params.Logger, tag.ComponentName("stress-host"), tag.RunID(runID)),
		metricsHandler: params.MetricsHandler.WithTags(metrics.OperationTag(metrics.StressHostScope)),
		timeSource:     params.TimeSource,
		shutdowner:     params.Shutdowner,
		runID:          runID,
		scoreboard:     newScoreboard(),
	}
}

func (h *Host) Start() error {
	h.logger.Info("stress host starting")
	h.goros.Go(h.reportLoop)
	h.goros.Go(h.runLoop)
	return nil
}

func (h *Host) Stop() error {
	h.goros.Cancel()
	h.goros.Wait()
	return nil
}

// GetPingChecks lets the deadlock detector verify the scoreboard lock is
// still being released.
func (h *Host) GetPingChecks() []deadlock.PingCheck {
	return []deadlock.PingCheck{{
		Name:    "stress scoreboard lock",
		Timeout: 10 * time.Second,
		Ping: func() []deadlock.Pingable {
			// just checking if we can acquire the lock
			_ = h.scoreboard.mu.Lock(context.Background())
			h.scoreboard.mu.Unlock()
			return nil
		},
		MetricsName: metrics.StressScoreboardLockLatency.Name(),
	}}
}

func (h *Host) runLoop(ctx context.Context) error {
	err := h.Run(ctx)
	switch {
	case err == nil:
		h.logger.Info("stress run complete")
	case errors.Is(err, context.Canceled):
		h.logger.Info("stress run canceled")
	default:
		h.logger.Error("stress run failed", tag.Error(err))
	}

	if h.shutdowner != nil {
		code := 0
		if err != nil && !errors.Is(err, context.Canceled) {
			code = 1
		}
		_ = h.shutdowner.Shutdown(fx.ExitCode(code))
	}
	return err
}

// Run executes the configured rounds over the selected scenarios and returns
// the combined error of everything that went wrong.
func (h *Host) Run(ctx context.Context) error {
	rounds := h.config.Rounds
	if rounds <= 0 {
		rounds = 1
	}
	scenarios := h.config.selected()
	h.logger.Info("stress run starting", tag.Counter(rounds), tag.Value(scenarios))

	var resultErr error
	for round := 0; round < rounds; round++ {
		if ctx.Err() != nil {
			resultErr = multierr.Append(resultErr, ctx.Err())
			break
		}

		roundStart := h.timeSource.Now()
		for _, name := range scenarios {
			if err := h.runScenario(ctx, name, round); err != nil {
				resultErr = multierr.Append(resultErr, fmt.Errorf("scenario %s round %d: %w", name, round, err))
			}
		}
		elapsed := h.timeSource.Since(roundStart)
		metrics.StressRoundLatency.With(h.metricsHandler).Record(elapsed.Milliseconds())
		h.logger.Debug("round complete", tag.Round(round), tag.WaitDuration(elapsed))
	}

	h.report(context.Background())
	return resultErr
}

func (h *Host) runScenario(ctx context.Context, name string, round int) (retErr error) {
	logger := log.With(h.logger, tag.Scenario(name), tag.Round(round))
	defer log.CapturePanic(logger, &retErr)

	var operations int64
	var err error
	switch name {
	case ScenarioQueue:
		operations, err = h.runQueueScenario(ctx, logger)
	case ScenarioGate:
		operations, err = h.runGateScenario(ctx, logger)
	case ScenarioCondition:
		operations, err = h.runConditionScenario(ctx, logger)
	case ScenarioFuture:
		operations, err = h.runFutureScenario(ctx, logger)
	default:
		err = fmt.Errorf("unknown scenario %q", name)
	}

	metrics.StressOperations.With(h.metricsHandler).Record(operations, metrics.ScenarioTag(name))
	var failures int64
	if err != nil {
		failures = 1
		metrics.StressFailures.With(h.metricsHandler).Record(1, metrics.ScenarioTag(name))
	}
	if recordErr := h.scoreboard.record(ctx, name, operations, failures); recordErr != nil {
		logger.Warn("failed to record scenario stats", tag.Error(recordErr))
	}
	return err
}

func (h *Host) reportLoop(ctx context.Context) error {
	if h.config.ReportInterval <= 0 {
		return nil
	}
	for {
		timerCh, timer := h.timeSource.NewTimer(h.config.ReportInterval)
		select {
		case <-timerCh:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
		h.report(ctx)
	}
}

func (h *Host) report(ctx context.Context) {
	snap, err := h.scoreboard.snapshot(ctx)
	if err != nil {
		return
	}
	for name, stats := range snap {
		h.logger.Info("stress progress",
			tag.Scenario(name),
			tag.Operations(stats.Operations),
			tag.Failures(stats.Failures))
	}
}

// pause blocks for d on the host's time source, honoring cancellation.
func (h *Host) pause(ctx context.Context, d time.Duration) error {
	timerCh, timer := h.timeSource.NewTimer(d)
	select {
	case <-timerCh:
		return nil
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	}
}
