package metrics

import (
	"time"

	"github.com/motioncore/fibersync/log"
)

// MetricUnit supports values consistent with the UCUM standard.
type MetricUnit string

const (
	Dimensionless = "1"
	Milliseconds  = "ms"
	Bytes         = "By"
)

type (
	// Handler is a wrapper around a metrics client.
	Handler interface {
		// WithTags creates a new Handler with the provided Tags merged in.
		WithTags(...Tag) Handler
		// Counter obtains a counter for the given name.
		Counter(string) CounterIface
		// Gauge obtains a gauge for the given name.
		Gauge(string) GaugeIface
		// Timer obtains a timer for the given name.
		Timer(string) TimerIface
		// Histogram obtains a histogram for the given name.
		Histogram(string, MetricUnit) HistogramIface
		// Stop stops the metrics handler, flushing anything buffered.
		Stop(log.Logger)
	}

	// CounterIface is an ever-increasing counter.
	CounterIface interface {
		// Record increments the counter value.
		Record(int64, ...Tag)
	}

	// GaugeIface can be set to any float.
	GaugeIface interface {
		// Record updates the gauge value.
		Record(float64, ...Tag)
	}

	// TimerIface records a duration.
	TimerIface interface {
		// Record sets the timer value.
		Record(time.Duration, ...Tag)
	}

	// HistogramIface records a distribution of values.
	HistogramIface interface {
		// Record adds a value to the distribution.
		Record(int64, ...Tag)
	}

	CounterFunc   func(int64, ...Tag)
	GaugeFunc     func(float64, ...Tag)
	TimerFunc     func(time.Duration, ...Tag)
	HistogramFunc func(int64, ...Tag)
)

// Record implements CounterIface.
func (c CounterFunc) Record(v int64, tags ...Tag) { c(v, tags...) }

// Record implements GaugeIface.
func (c GaugeFunc) Record(v float64, tags ...Tag) { c(v, tags...) }

// Record implements TimerIface.
func (c TimerFunc) Record(v time.Duration, tags ...Tag) { c(v, tags...) }

// Record implements HistogramIface.
func (c HistogramFunc) Record(v int64, tags ...Tag) { c(v, tags...) }
