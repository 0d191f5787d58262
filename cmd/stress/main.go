package main

import (
	"context"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/motioncore/fibersync/clock"
	"github.com/motioncore/fibersync/config"
	"github.com/motioncore/fibersync/deadlock"
	"github.com/motioncore/fibersync/internal/stress"
	"github.com/motioncore/fibersync/log"
	"github.com/motioncore/fibersync/log/tag"
	"github.com/motioncore/fibersync/metrics"
)

// main entry point for the stress tool
func main() {
	app := buildCLI()
	if err := app.Run(os.Args); err != nil {
		stdlog.Fatal(err)
	}
}

func buildCLI() *cli.App {
	app := cli.NewApp()
	app.Name = "fibersync-stress"
	app.Usage = "stress driver for the fibersync synchronization primitives"
	app.DefaultCommand = "start"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "root",
			Aliases: []string{"r"},
			Value:   ".",
			Usage:   "root directory of execution environment",
			EnvVars: []string{config.EnvKeyRoot},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "config",
			Usage:   "config dir path relative to root",
			EnvVars: []string{config.EnvKeyConfigDir},
		},
		&cli.StringFlag{
			Name:    "env",
			Aliases: []string{"e"},
			Value:   "development",
			Usage:   "runtime environment",
			EnvVars: []string{config.EnvKeyEnvironment},
		},
		&cli.StringFlag{
			Name:    "zone",
			Aliases: []string{"az"},
			Usage:   "availability zone",
			EnvVars: []string{config.EnvKeyAvailabilityZone},
		},
		&cli.StringFlag{
			Name:    "config-file",
			Usage:   "path of a single config file, overrides the config dir",
			EnvVars: []string{config.EnvKeyConfigFile},
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:   "start",
			Usage:  "start a stress run",
			Action: start,
		},
		{
			Name:   "validate",
			Usage:  "load and validate the configuration, then exit",
			Action: validate,
		},
	}
	return app
}

func validate(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("configuration invalid: %v", err), 1)
	}
	logger := log.NewCLILogger()
	// an empty scenario list selects every known scenario
	logger.Info("configuration valid", tag.Value(cfg.Stress.Scenarios), tag.Rounds(cfg.Stress.Rounds))
	return nil
}

func start(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("unable to load configuration: %v", err), 1)
	}

	logger := log.NewZapLogger(log.BuildZapLogger(cfg.Log))
	metricsHandler, metricsCloser := metrics.MetricsHandlerFromConfig(logger, cfg.Metrics)
	defer func() { _ = metricsCloser.Close() }()

	app := fx.New(
		fx.Supply(cfg.Stress, cfg.Deadlock),
		fx.Provide(
			func() log.Logger { return logger },
			func() metrics.Handler { return metricsHandler },
			func() clock.TimeSource { return clock.NewRealTimeSource() },
		),
		deadlock.Module,
		stress.Module,
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		return cli.Exit(fmt.Sprintf("unable to build app: %v", err), 1)
	}

	startCtx, startCancel := context.WithTimeout(context.Background(), time.Minute)
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		return cli.Exit(fmt.Sprintf("unable to start: %v", err), 1)
	}
	logger.Info("stress tool started, send SIGINT or SIGTERM to stop early")

	// the host shuts the app down once the run completes; OS signals land
	// here as well
	sig := <-app.Wait()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Minute)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		return cli.Exit(fmt.Sprintf("unable to stop cleanly: %v", err), 1)
	}

	if sig.ExitCode != 0 {
		return cli.Exit("stress run reported failures", sig.ExitCode)
	}
	return nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if file := strings.TrimSpace(c.String("config-file")); file != "" {
		return config.Load(config.WithConfigFile(file))
	}
	return config.Load(
		config.WithEnv(strings.TrimSpace(c.String("env"))),
		config.WithConfigDir(filepath.Join(c.String("root"), c.String("config"))),
		config.WithZone(strings.TrimSpace(c.String("zone"))),
	)
}
