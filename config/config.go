package config

import (
	"github.com/motioncore/fibersync/deadlock"
	"github.com/motioncore/fibersync/internal/stress"
	"github.com/motioncore/fibersync/log"
	"github.com/motioncore/fibersync/metrics"
)

type (
	// Config is the root configuration for the stress tool.
	Config struct {
		// Log configures the logger.
		Log log.Config `yaml:"log"`
		// Metrics configures the metrics reporter. Nil disables reporting.
		Metrics *metrics.Config `yaml:"metrics"`
		// Deadlock configures the deadlock detector.
		Deadlock deadlock.Config `yaml:"deadlock"`
		// Stress configures the stress run itself.
		Stress stress.Config `yaml:"stress"`
	}
)
