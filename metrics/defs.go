package metrics

// Operation values attached to recordings via OperationTag.
const (
	DeadlockDetectorScope = "DeadlockDetector"
	StressHostScope       = "StressHost"
)

type (
	// metricDefinition contains the name and unit of a metric.
	metricDefinition struct {
		name string
		unit MetricUnit
	}

	CounterDef   struct{ metricDefinition }
	GaugeDef     struct{ metricDefinition }
	TimerDef     struct{ metricDefinition }
	HistogramDef struct{ metricDefinition }
)

func NewCounterDef(name string) CounterDef {
	return CounterDef{metricDefinition{name: name}}
}

func NewGaugeDef(name string) GaugeDef {
	return GaugeDef{metricDefinition{name: name}}
}

func NewTimerDef(name string) TimerDef {
	return TimerDef{metricDefinition{name: name, unit: Milliseconds}}
}

func NewHistogramDef(name string, unit MetricUnit) HistogramDef {
	return HistogramDef{metricDefinition{name: name, unit: unit}}
}

func (md metricDefinition) Name() string {
	return md.name
}

func (md metricDefinition) Unit() MetricUnit {
	return md.unit
}

func (d CounterDef) With(handler Handler) CounterIface {
	return handler.Counter(d.name)
}

func (d GaugeDef) With(handler Handler) GaugeIface {
	return handler.Gauge(d.name)
}

func (d TimerDef) With(handler Handler) TimerIface {
	return handler.Timer(d.name)
}

func (d HistogramDef) With(handler Handler) HistogramIface {
	return handler.Histogram(d.name, d.unit)
}

var (
	ConditionWaits       = NewCounterDef("condition_waits")
	ConditionWaitLatency = NewTimerDef("condition_wait_latency")
	ConditionTimeouts    = NewCounterDef("condition_timeouts")
	Notifications        = NewCounterDef("condition_notifications")

	QueueDepth       = NewGaugeDef("queue_depth")
	QueueTakeLatency = NewTimerDef("queue_take_latency")

	GateOpens   = NewCounterDef("gate_opens")
	GateWaiters = NewGaugeDef("gate_waiters")

	FutureResolved = NewCounterDef("future_resolved")
	FutureTimeouts = NewCounterDef("future_timeouts")

	StressOperations            = NewCounterDef("stress_operations")
	StressFailures              = NewCounterDef("stress_failures")
	StressRoundLatency          = NewHistogramDef("stress_round_latency", Milliseconds)
	StressScoreboardLockLatency = NewTimerDef("stress_scoreboard_lock_latency")

	DeadlockDetected = NewCounterDef("deadlock_detected")
)
