package metrics

import (
	"time"

	"github.com/motioncore/fibersync/log"
)

// NoopMetricsHandler is a Handler that discards all recordings.
var NoopMetricsHandler Handler = newNoopMetricsHandler()

type noopMetricsHandler struct{}

func newNoopMetricsHandler() *noopMetricsHandler { return &noopMetricsHandler{} }

// WithTags creates a new Handler with provided []Tag
// Tags are merged with registered Tags from the source Handler
func (n *noopMetricsHandler) WithTags(...Tag) Handler {
	return n
}

// Counter obtains a counter for the given name.
func (*noopMetricsHandler) Counter(string) CounterIface {
	return CounterFunc(func(i int64, t ...Tag) {})
}

// Gauge obtains a gauge for the given name.
func (*noopMetricsHandler) Gauge(string) GaugeIface {
	return GaugeFunc(func(f float64, t ...Tag) {})
}

// Timer obtains a timer for the given name.
func (*noopMetricsHandler) Timer(string) TimerIface {
	return TimerFunc(func(d time.Duration, t ...Tag) {})
}

// Histogram obtains a histogram for the given name.
func (*noopMetricsHandler) Histogram(string, MetricUnit) HistogramIface {
	return HistogramFunc(func(i int64, t ...Tag) {})
}

func (*noopMetricsHandler) Stop(log.Logger) {}
