package cmd

import (
	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/spf13/cobra"
)

// groupsCmd lists viewpoint groups that have supporters.
var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List viewpoint groups that have at least one supporter.",
	Long: `List viewpoint groups with at least one supporter relation, sorted
by title.

Groups without a usable title (missing, blank, or the "Untitled Group"
placeholder) are dropped from the listing. The listing always reads from a
relational snapshot; when the selected backend is the graph API, the
configured snapshot serves the listing instead.

Examples:
  # List groups from the local snapshot
  swaydash groups

  # List the top 50 groups as JSON
  swaydash groups --limit 50 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGroups(rootCtx, cfg, dispatcher); err != nil {
			contract.LogFatal("Cannot list viewpoint groups", err)
		}
	},
}
