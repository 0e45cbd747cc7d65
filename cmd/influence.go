package cmd

import (
	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/spf13/cobra"
)

// influenceCmd breaks down a group's verified voters by electoral geography.
var influenceCmd = &cobra.Command{
	Use:   "influence <group-id>",
	Short: "Show where a group's verified voters can vote.",
	Long: `Break down a group's verified voters by jurisdiction, race, and
upcoming election.

A voter registered in several jurisdictions counts once per registration, so
the jurisdiction totals can exceed the sway score. Races inherit the verified
count of their ballot item's jurisdiction, and elections with a poll date of
today or later are rolled up separately.

Examples:
  # Full influence breakdown for a group
  swaydash influence grp_123

  # Influence via the graph API (state-level approximation)
  swaydash influence grp_123 --backend sway_api --api-url https://api.sway.example/graphql

  # Export the breakdown to CSV for tracking
  swaydash influence grp_123 --output csv --output-file influence.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteElectoralInfluence(rootCtx, cfg, dispatcher, input.GroupIDStr); err != nil {
			contract.LogFatal("Cannot compute electoral influence", err)
		}
	},
}
