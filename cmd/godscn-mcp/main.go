package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ludo-technologies/godscn/internal/telemetry"
	"github.com/ludo-technologies/godscn/internal/version"
	"github.com/ludo-technologies/godscn/mcp"
	"github.com/ludo-technologies/godscn/service"
)

const serverName = "godscn"

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "godscn-mcp",
		Short:         "Serve God Class detection and Extract Class over MCP (stdio)",
		Version:       version.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path (default: discover .godscn.toml)")
	return cmd
}

func serve(ctx context.Context, configPath string) error {
	// stdout carries JSON-RPC, zap's production config logs to stderr
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := service.NewGodClassConfigurationLoader().LoadFullConfig(configPath)
	if err != nil {
		return err
	}
	collector := telemetry.NewCollector(&telemetry.Options{
		Enabled:      cfg.Telemetry.Enabled,
		InitialDelay: cfg.Telemetry.InitialDelay(),
		Interval:     cfg.Telemetry.Interval(),
	}, logger)
	collector.Start(ctx)
	defer collector.Stop()

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)
	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(configPath, logger, collector)))

	logger.Info("starting MCP server",
		zap.String("name", serverName),
		zap.String("version", version.Short()),
		zap.Strings("tools", []string{"detect_god_class", "extract_class"}))

	return mcpserver.ServeStdio(server)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newServeCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
