package cmd

import (
	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/spf13/cobra"
)

// growthCmd computes the cumulative verified-voter growth series.
var growthCmd = &cobra.Command{
	Use:   "growth <group-id>",
	Short: "Show how a group's verified voter base grew over time.",
	Long: `Compute the day-by-day cumulative series of verified voters for a
viewpoint group.

Each supporter is bucketed on the earlier of their verification date and
their join date, so the series reflects when sway was actually gained. The
growth rate is reported relative to the first day's cumulative count and is
suppressed when the baseline is zero or the rate is implausibly large.

Examples:
  # Growth series for a group
  swaydash growth grp_123

  # Growth as JSON for charting
  swaydash growth grp_123 --output json

  # Growth exported as Parquet for BI tools
  swaydash growth grp_123 --output parquet --output-file growth.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGrowthOverTime(rootCtx, cfg, dispatcher, input.GroupIDStr); err != nil {
			contract.LogFatal("Cannot compute growth over time", err)
		}
	},
}
