package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/honeycarbs/recruit-ops/internal/config"
	"github.com/honeycarbs/recruit-ops/internal/domain"
	"github.com/honeycarbs/recruit-ops/internal/mcp"
	"github.com/honeycarbs/recruit-ops/pkg/logging"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print aggregated metrics as JSON",
	Long: `Aggregate the configured metrics window and print it as JSON.

Without --family every aggregated period is printed. With --family the
recruitment or financial summary is printed instead, including window totals.

Examples:
  recruit-ops report --granularity monthly
  recruit-ops report --family financial`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringP("granularity", "g", string(domain.GranularityWeekly), "daily, weekly or monthly")
	reportCmd.Flags().StringP("family", "f", "", "recruitment or financial (prints a summary)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	rawGranularity, err := cmd.Flags().GetString("granularity")
	if err != nil {
		return fmt.Errorf("getting granularity flag: %w", err)
	}
	rawFamily, err := cmd.Flags().GetString("family")
	if err != nil {
		return fmt.Errorf("getting family flag: %w", err)
	}

	g, err := domain.ParseGranularity(rawGranularity)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	res, cleanup, err := mcp.InitializeResources(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	var out any
	if rawFamily == "" {
		out, err = res.MetricsService.Aggregate(ctx, g)
	} else {
		family, parseErr := domain.ParseMetricFamily(rawFamily)
		if parseErr != nil {
			return parseErr
		}
		out, err = res.MetricsService.Summary(ctx, family, g)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
