package metrics

import (
	"io"
	"time"

	"github.com/cactus/go-statsd-client/v5/statsd"
	"github.com/uber-go/tally/v4"

	"github.com/motioncore/fibersync/log"
	"github.com/motioncore/fibersync/log/tag"
	statsdreporter "github.com/motioncore/fibersync/metrics/tally/statsd"
)

const (
	tagExcludedValue = "_tag_excluded_"

	defaultReportingInterval = time.Second
)

type (
	// ClientConfig contains the config items for metrics client.
	ClientConfig struct {
		// Tags is the set of key-value pairs to be reported as part of every metric
		Tags map[string]string `yaml:"tags"`
		// ExcludeTags is a map from tag name string to tag values string list.
		// Each value present in keys will have relevant tag value replaced with tagExcludedValue.
		// Each value in values list will white-list tag values to be reported as usual.
		ExcludeTags map[string][]string `yaml:"excludeTags"`
		// Prefix sets the prefix to all outgoing metrics
		Prefix string `yaml:"prefix"`
		// PerUnitHistogramBoundaries defines the default histogram bucket
		// boundaries per metric unit.
		PerUnitHistogramBoundaries map[string][]float64 `yaml:"perUnitHistogramBoundaries"`
	}

	// Config contains the config items for metrics subsystem.
	Config struct {
		ClientConfig `yaml:"clientConfig,inline"`
		// Statsd, when present, reports metrics to a statsd endpoint.
		Statsd *StatsdConfig `yaml:"statsd"`
		// ReportingInterval is the interval at which buffered metrics are flushed.
		ReportingInterval time.Duration `yaml:"reportingInterval"`
	}

	// StatsdConfig contains the config items for the statsd reporter.
	StatsdConfig struct {
		// HostPort is the host and port of the statsd server.
		HostPort string `yaml:"hostPort"`
		// Prefix to use in reporting to statsd.
		Prefix string `yaml:"prefix"`
		// FlushInterval is the maximum interval between packet sends.
		// Defaults to 300ms when unset.
		FlushInterval time.Duration `yaml:"flushInterval"`
		// FlushBytes is the maximum UDP packet size. Defaults to 1432 bytes
		// when unset, which is safe for local traffic.
		FlushBytes int `yaml:"flushBytes"`
		// Reporter holds additional reporter options such as tagging.
		Reporter StatsdReporterConfig `yaml:"reporter"`
	}

	// StatsdReporterConfig contains the tagging options of the statsd reporter.
	StatsdReporterConfig struct {
		// TagSeparator appends tags in key=value form with this separator.
		// When empty, tag keys and values are embedded in the stat name.
		TagSeparator string `yaml:"tagSeparator"`
	}
)

var sanitizeOptions = tally.SanitizeOptions{
	NameCharacters:       tally.ValidCharacters{Ranges: tally.AlphanumericRange, Characters: tally.UnderscoreCharacters},
	KeyCharacters:        tally.ValidCharacters{Ranges: tally.AlphanumericRange, Characters: tally.UnderscoreCharacters},
	ValueCharacters:      tally.ValidCharacters{Ranges: tally.AlphanumericRange, Characters: tally.UnderscoreCharacters},
	ReplacementCharacter: '_',
}

// NewScope builds a new tally root scope for this metrics configuration.
// Without a reporter configuration the returned scope is a noop.
func NewScope(logger log.Logger, cfg *Config) (tally.Scope, io.Closer) {
	if cfg.Statsd != nil {
		return newStatsdScope(logger, cfg)
	}
	return tally.NoopScope, nopCloser{}
}

func newStatsdScope(logger log.Logger, cfg *Config) (tally.Scope, io.Closer) {
	config := cfg.Statsd
	statter, err := statsd.NewBufferedClient(config.HostPort, config.Prefix, config.FlushInterval, config.FlushBytes)
	if err != nil {
		logger.Fatal("error creating statsd client", tag.Error(err))
	}
	// tally's own statsd reporter does not support tagging, so ours folds
	// tags into the metric name
	reporter := statsdreporter.NewReporter(statter, statsdreporter.Options{
		TagSeparator: config.Reporter.TagSeparator,
	})

	reportingInterval := cfg.ReportingInterval
	if reportingInterval <= 0 {
		reportingInterval = defaultReportingInterval
	}
	return tally.NewRootScope(tally.ScopeOptions{
		Prefix:          cfg.Prefix,
		Tags:            cfg.Tags,
		Reporter:        reporter,
		SanitizeOptions: &sanitizeOptions,
	}, reportingInterval)
}

// MetricsHandlerFromConfig builds a Handler for this metrics configuration.
// The returned closer flushes and releases the underlying scope.
func MetricsHandlerFromConfig(logger log.Logger, cfg *Config) (Handler, io.Closer) {
	if cfg == nil {
		logger.Warn("no metrics config provided, metrics are disabled")
		return NoopMetricsHandler, nopCloser{}
	}

	scope, closer := NewScope(logger, cfg)
	return NewTallyMetricsHandler(cfg.ClientConfig, scope), closer
}

func configExcludeTags(cfg ClientConfig) excludeTags {
	tags := make(excludeTags)
	for key, val := range cfg.ExcludeTags {
		exclusions := make(map[string]struct{})
		for _, val := range val {
			exclusions[val] = struct{}{}
		}
		tags[key] = exclusions
	}
	return tags
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
