package stress

import (
	"time"
)

const (
	// ScenarioQueue exercises blocking queue producers and consumers.
	ScenarioQueue = "queue"
	// ScenarioGate exercises waiters against gate open/close cycles.
	ScenarioGate = "gate"
	// ScenarioCondition exercises condition waiters under a notify storm.
	ScenarioCondition = "condition"
	// ScenarioFuture exercises future resolution races.
	ScenarioFuture = "future"
)

// scenarioOrder lists all known scenarios in run order.
var scenarioOrder = []string{ScenarioQueue, ScenarioGate, ScenarioCondition, ScenarioFuture}

// KnownScenario reports whether name is a runnable scenario.
func KnownScenario(name string) bool {
	for _, s := range scenarioOrder {
		if s == name {
			return true
		}
	}
	return false
}

type (
	// Config controls a stress run. Counts left at zero fall back to small
	// defaults so partial config files stay usable.
	Config struct {
		// Rounds is the number of full passes over the selected scenarios.
		Rounds int `yaml:"rounds"`
		// ReportInterval is how often the reporter logs progress. Zero
		// disables progress reports.
		ReportInterval time.Duration `yaml:"reportInterval"`
		// Scenarios selects which scenarios run; empty runs all of them.
		Scenarios []string `yaml:"scenarios" validate:"stress_scenarios"`

		Queue     QueueConfig     `yaml:"queue"`
		Gate      GateConfig      `yaml:"gate"`
		Condition ConditionConfig `yaml:"condition"`
		Future    FutureConfig    `yaml:"future"`
	}

	// QueueConfig sizes the blocking queue scenario.
	QueueConfig struct {
		Producers int `yaml:"producers"`
		Consumers int `yaml:"consumers"`
		// Items put by each producer per round.
		Items int `yaml:"items"`
		// ProduceRate caps each producer at this many puts per second.
		// Zero means unlimited.
		ProduceRate float64 `yaml:"produceRate"`
		// TakeTimeout bounds each consumer take. Timed out takes are retried
		// until the queue reports drained.
		TakeTimeout time.Duration `yaml:"takeTimeout"`
	}

	// GateConfig sizes the gate scenario.
	GateConfig struct {
		Waiters int `yaml:"waiters"`
		// Cycles is the number of close/open transitions per round.
		Cycles int `yaml:"cycles"`
	}

	// ConditionConfig sizes the condition scenario.
	ConditionConfig struct {
		Waiters   int `yaml:"waiters"`
		Notifiers int `yaml:"notifiers"`
		// Tokens produced by each notifier per round. Every waiter consumes
		// tokens until its share is gone.
		Tokens int `yaml:"tokens"`
		// SignalRatio is the fraction of notifications delivered to a single
		// waiter instead of all of them.
		SignalRatio float64 `yaml:"signalRatio" validate:"min=0,max=1"`
		// WaitTimeout bounds each timed wait in the scenario.
		WaitTimeout time.Duration `yaml:"waitTimeout"`
	}

	// FutureConfig sizes the future scenario.
	FutureConfig struct {
		Futures          int `yaml:"futures"`
		WaitersPerFuture int `yaml:"waitersPerFuture"`
		// ResolveTimeout bounds each timed get. Resolvers always complete
		// their future, so hitting this timeout counts as a failure.
		ResolveTimeout time.Duration `yaml:"resolveTimeout"`
	}
)

// selected returns the scenarios this run covers, in run order.
func (c *Config) selected() []string {
	if len(c.Scenarios) == 0 {
		return scenarioOrder
	}
	result := make([]string, 0, len(c.Scenarios))
	for _, s := range scenarioOrder {
		for _, name := range c.Scenarios {
			if s == name {
				result = append(result, s)
				break
			}
		}
	}
	return result
}

func (c *QueueConfig) withDefaults() QueueConfig {
	cfg := *c
	if cfg.Producers <= 0 {
		cfg.Producers = 4
	}
	if cfg.Consumers <= 0 {
		cfg.Consumers = 4
	}
	if cfg.Items <= 0 {
		cfg.Items = 256
	}
	if cfg.TakeTimeout <= 0 {
		cfg.TakeTimeout = 50 * time.Millisecond
	}
	return cfg
}

func (c *GateConfig) withDefaults() GateConfig {
	cfg := *c
	if cfg.Waiters <= 0 {
		cfg.Waiters = 16
	}
	if cfg.Cycles <= 0 {
		cfg.Cycles = 8
	}
	return cfg
}

func (c *ConditionConfig) withDefaults() ConditionConfig {
	cfg := *c
	if cfg.Waiters <= 0 {
		cfg.Waiters = 16
	}
	if cfg.Notifiers <= 0 {
		cfg.Notifiers = 4
	}
	if cfg.Tokens <= 0 {
		cfg.Tokens = 64
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 50 * time.Millisecond
	}
	return cfg
}

func (c *FutureConfig) withDefaults() FutureConfig {
	cfg := *c
	if cfg.Futures <= 0 {
		cfg.Futures = 64
	}
	if cfg.WaitersPerFuture <= 0 {
		cfg.WaitersPerFuture = 4
	}
	if cfg.ResolveTimeout <= 0 {
		cfg.ResolveTimeout = 5 * time.Second
	}
	return cfg
}
