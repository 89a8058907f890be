package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ludo-technologies/godscn/internal/config"
	"github.com/ludo-technologies/godscn/internal/telemetry"
)

// newLogger builds the CLI logger. Without --verbose only warnings and
// errors reach stderr.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// startCollector creates the usage collector described by cfg and starts
// its heartbeat. The returned stop function must be called.
func startCollector(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*telemetry.Collector, func()) {
	collector := telemetry.NewCollector(&telemetry.Options{
		Enabled:      cfg.Telemetry.Enabled,
		InitialDelay: cfg.Telemetry.InitialDelay(),
		Interval:     cfg.Telemetry.Interval(),
	}, logger)
	collector.Start(ctx)
	return collector, collector.Stop
}

// reportDirectory returns where generated report files go
func reportDirectory(cfg *config.Config) string {
	if cfg != nil && cfg.Output.Directory != "" {
		return cfg.Output.Directory
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Join(".godscn", "reports")
	}
	return filepath.Join(cwd, ".godscn", "reports")
}
