package cmd

import (
	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd computes the sway score for one viewpoint group.
var scoreCmd = &cobra.Command{
	Use:   "score <group-id>",
	Short: "Show the verified supporter count for a viewpoint group.",
	Long: `Compute the sway score: the number of a group's supporters who are
fully verified voters.

The score walks the supporter chain in bounded batches:
- Supporter relations for the group
- Profiles for those relations
- Voter verifications for those profiles

A reach tier (Emerging, Growing, Strong, Major) accompanies the raw count.

Examples:
  # Score a group from the local snapshot
  swaydash score grp_123

  # Score against a Postgres snapshot
  swaydash score grp_123 --backend postgresql --db-connect "host=localhost dbname=sway"

  # Score via the graph API
  swaydash score grp_123 --backend sway_api --api-url https://api.sway.example/graphql

  # Export the score as JSON
  swaydash score grp_123 --output json --output-file score.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSwayScore(rootCtx, cfg, dispatcher, input.GroupIDStr); err != nil {
			contract.LogFatal("Cannot compute sway score", err)
		}
	},
}
