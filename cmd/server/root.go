package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recruit-ops",
	Short: "Recruitment operations MCP server",
	Long: `recruit-ops serves the recruitment dashboard core over MCP: a
role-scoped job catalog with assignment, and daily metrics rolled up into
weekly and monthly periods.

Configuration is read from the environment (see internal/config).
Running without a subcommand starts the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}
