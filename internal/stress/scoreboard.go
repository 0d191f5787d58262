package stress

import (
	"context"

	"github.com/motioncore/fibersync/locks"
)

type (
	// scoreboard accumulates per scenario progress. Scenario goroutines write
	// concurrently with the reporter reading, so access goes through a
	// context aware lock that the deadlock detector can ping.
	scoreboard struct {
		mu    locks.RWMutex
		stats map[string]*scenarioStats
	}

	// scenarioStats is one scenario's running totals.
	scenarioStats struct {
		Operations int64
		Failures   int64
	}
)

func newScoreboard() *scoreboard {
	return &scoreboard{
		mu:    locks.NewRWMutex(),
		stats: make(map[string]*scenarioStats),
	}
}

func (s *scoreboard) record(ctx context.Context, scenario string, operations int64, failures int64) error {
	if err := s.mu.Lock(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	st := s.stats[scenario]
	if st == nil {
		st = &scenarioStats{}
		s.stats[scenario] = st
	}
	st.Operations += operations
	st.Failures += failures
	return nil
}

func (s *scoreboard) snapshot(ctx context.Context) (map[string]scenarioStats, error) {
	if err := s.mu.RLock(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	result := make(map[string]scenarioStats, len(s.stats))
	for name, st := range s.stats {
		result[name] = *st
	}
	return result, nil
}
