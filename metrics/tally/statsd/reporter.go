package statsd

import (
	"sort"
	"strings"
	"time"

	"github.com/cactus/go-statsd-client/v5/statsd"
	"github.com/uber-go/tally/v4"
	tallystatsdreporter "github.com/uber-go/tally/v4/statsd"
)

// tallyStatsdReporter wraps tally's statsd reporter. Plain statsd carries no
// tags, so tags are folded into the metric name before handing off.
type tallyStatsdReporter struct {
	tallystatsd tally.StatsReporter

	tagSeparator string
}

// Options configures the reporter on top of tally's own statsd options.
type Options struct {
	TallyOptions tallystatsdreporter.Options

	// TagSeparator, when set, appends tags in the DogStatsd/InfluxDB
	// key=value form using this separator. When empty, tags are embedded
	// into the metric name as sorted ".key.value" segments.
	TagSeparator string
}

// NewReporter builds a tagging statsd reporter over the given statter.
func NewReporter(statter statsd.Statter, opts Options) tally.StatsReporter {
	return &tallyStatsdReporter{
		tallystatsd:  tallystatsdreporter.NewReporter(statter, opts.TallyOptions),
		tagSeparator: opts.TagSeparator,
	}
}

func (r *tallyStatsdReporter) metricNameWithTags(name string, tags map[string]string) string {
	if r.tagSeparator != "" {
		return appendSeparatedTags(name, r.tagSeparator, tags)
	}
	return embedTags(name, tags)
}

func (r *tallyStatsdReporter) ReportCounter(name string, tags map[string]string, value int64) {
	r.tallystatsd.ReportCounter(r.metricNameWithTags(name, tags), map[string]string{}, value)
}

func (r *tallyStatsdReporter) ReportGauge(name string, tags map[string]string, value float64) {
	r.tallystatsd.ReportGauge(r.metricNameWithTags(name, tags), map[string]string{}, value)
}

func (r *tallyStatsdReporter) ReportTimer(name string, tags map[string]string, interval time.Duration) {
	r.tallystatsd.ReportTimer(r.metricNameWithTags(name, tags), map[string]string{}, interval)
}

func (r *tallyStatsdReporter) ReportHistogramValueSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound float64,
	samples int64,
) {
	newName := r.metricNameWithTags(name, tags)
	r.tallystatsd.ReportHistogramValueSamples(newName, map[string]string{}, buckets, bucketLowerBound, bucketUpperBound, samples)
}

func (r *tallyStatsdReporter) ReportHistogramDurationSamples(
	name string,
	tags map[string]string,
	buckets tally.Buckets,
	bucketLowerBound,
	bucketUpperBound time.Duration,
	samples int64,
) {
	newName := r.metricNameWithTags(name, tags)
	r.tallystatsd.ReportHistogramDurationSamples(newName, map[string]string{}, buckets, bucketLowerBound, bucketUpperBound, samples)
}

func (r *tallyStatsdReporter) Capabilities() tally.Capabilities {
	return r.tallystatsd.Capabilities()
}

func (r *tallyStatsdReporter) Flush() {
	r.tallystatsd.Flush()
}

// embedTags folds tags into the stat name as ".key.value" segments. Keys are
// sorted so a given tag set always produces the same name. "cv.wait" with
// {scenario: gate} becomes "cv.wait.scenario.gate".
func embedTags(name string, tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buffer strings.Builder
	buffer.WriteString(name)
	for _, tk := range keys {
		// "." delimited so each part shows up separately in Graphite
		buffer.WriteString("." + tk + "." + tags[tk])
	}
	return buffer.String()
}

// appendSeparatedTags appends tags in the DogStatsd/InfluxDB statsd tagging
// protocol. "cv.wait" with {scenario: gate} and separator "," becomes
// "cv.wait,scenario=gate".
func appendSeparatedTags(name string, separator string, tags map[string]string) string {
	var buffer strings.Builder
	buffer.WriteString(name)
	for k, v := range tags {
		buffer.WriteString(separator + k + "=" + v)
	}
	return buffer.String()
}
