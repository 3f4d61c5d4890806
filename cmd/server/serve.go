package main

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/recruit-ops/internal/config"
	"github.com/honeycarbs/recruit-ops/internal/mcp"
	"github.com/honeycarbs/recruit-ops/internal/scheduler"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
	"github.com/honeycarbs/recruit-ops/pkg/shutdown"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP HTTP server",
	Long: `Start the MCP server on MCP_HOST:PORT with the streamable HTTP
transport at /mcp/stream and a liveness probe at /healthz.

When EXPORT_CRON is set, aggregated weekly metrics are also exported to
Google Sheets on that schedule.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		return err
	}

	srv := mcp.NewServer(logger, cfg, res)
	components := []shutdown.Stoppable{srv}

	if cfg.Sheets.Cron != "" && res.Exporter != nil {
		sched := scheduler.New(cfg.Sheets.Cron, res.MetricsService, res.Exporter, res.ExportTarget, logger)
		if err := sched.Start(ctx); err != nil {
			cleanup()
			return fmt.Errorf("failed to start export scheduler: %w", err)
		}
		components = append(components, sched)
	}

	components = append(components, shutdown.Func(func(context.Context) error {
		cleanup()
		return nil
	}))

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		shutdownTimeout,
		logger,
		components...,
	)

	logger.Info("MCP server initialized and starting", "addr", cfg.Addr(), "tools", len(srv.Tools()))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		return err
	}
	logger.Info("MCP server stopped")
	return nil
}
