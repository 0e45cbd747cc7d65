package cmd

import (
	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/spf13/cobra"
)

// networkCmd computes second-order reach through supporter-led groups.
var networkCmd = &cobra.Command{
	Use:   "network <group-id>",
	Short: "Show supporters of a group who lead other groups.",
	Long: `Find supporters of the target group who also lead other viewpoint
groups, and attach each downstream group's own verified-voter count.

The total downstream reach is a plain sum across leader edges. A profile
leading two groups produces two entries, and a voter reachable through two
leaders is counted twice; the metric measures influence paths, not unique
people. Downstream counts resolve concurrently on the worker pool.

Examples:
  # Network reach for a group
  swaydash network grp_123

  # Limit the table to the top 10 leaders
  swaydash network grp_123 --limit 10

  # Export the leader edges to CSV
  swaydash network grp_123 --output csv --output-file network.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteNetworkReach(rootCtx, cfg, dispatcher, input.GroupIDStr); err != nil {
			contract.LogFatal("Cannot compute network reach", err)
		}
	},
}
