package cmd

import (
	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/spf13/cobra"
)

// dashboardCmd computes all four metrics in one pass.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard <group-id>",
	Short: "Show all four sway metrics for a viewpoint group.",
	Long: `Compute the full dashboard for a viewpoint group: sway score,
electoral influence, growth over time, and network reach.

The four metrics run concurrently against the same backend; the first
context cancellation wins, any other metric failure degrades to an empty
section.

Examples:
  # Full dashboard from the local snapshot
  swaydash dashboard grp_123

  # Dashboard as JSON for a web frontend
  swaydash dashboard grp_123 --output json

  # Dashboard summary row as Parquet
  swaydash dashboard grp_123 --output parquet --output-file dashboard.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDashboard(rootCtx, cfg, dispatcher, input.GroupIDStr); err != nil {
			contract.LogFatal("Cannot compute dashboard", err)
		}
	},
}
