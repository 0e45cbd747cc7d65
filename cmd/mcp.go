package cmd

import (
	"github.com/BrettEastman/sway-leader-dashboard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd starts the MCP server on stdio.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the swaydash MCP server.",
	Long: `Start a Model Context Protocol server exposing the sway metrics as
tools over stdio.

Tools:
  get_sway_score          - Verified supporter count for a group
  get_electoral_influence - Jurisdiction/race/election breakdown
  get_growth_over_time    - Cumulative verified-voter series
  get_network_reach       - Supporter-led downstream groups
  get_dashboard           - All four metrics in one call
  list_viewpoint_groups   - Groups with at least one supporter

The server reads from the same backend the CLI would, configured via flags,
environment variables, or the .swaydash config file.

Examples:
  # Serve metrics from the local snapshot
  swaydash mcp

  # Serve metrics from the graph API
  swaydash mcp --backend sway_api --api-url https://api.sway.example/graphql`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, dispatcher)
	},
}
