// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the swaydash MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, disp *core.Dispatcher) *server.MCPServer {
	s := server.NewMCPServer(
		"Sway Leader Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		disp:    disp,
	}

	// --- 1. Tool: get_sway_score ---
	s.AddTool(mcp.NewTool("get_sway_score",
		mcp.WithDescription("Compute the verified supporter count (sway score) for a viewpoint group."),
		mcp.WithString("group_id", mcp.Description("The viewpoint group's unique identifier."), mcp.Required()),
		mcp.WithString("backend", mcp.Description("Data backend to read from (sqlite, mysql, postgresql, sway_api). Defaults to the configured backend."), mcp.Enum("sqlite", "mysql", "postgresql", "sway_api")),
	), h.handleGetSwayScore)

	// --- 2. Tool: get_electoral_influence ---
	s.AddTool(mcp.NewTool("get_electoral_influence",
		mcp.WithDescription("Break down a viewpoint group's verified voters by jurisdiction, race, and upcoming election."),
		mcp.WithString("group_id", mcp.Description("The viewpoint group's unique identifier."), mcp.Required()),
		mcp.WithString("backend", mcp.Description("Data backend to read from."), mcp.Enum("sqlite", "mysql", "postgresql", "sway_api")),
	), h.handleGetElectoralInfluence)

	// --- 3. Tool: get_growth_over_time ---
	s.AddTool(mcp.NewTool("get_growth_over_time",
		mcp.WithDescription("Compute the cumulative verified-voter growth series for a viewpoint group."),
		mcp.WithString("group_id", mcp.Description("The viewpoint group's unique identifier."), mcp.Required()),
		mcp.WithString("backend", mcp.Description("Data backend to read from."), mcp.Enum("sqlite", "mysql", "postgresql", "sway_api")),
	), h.handleGetGrowthOverTime)

	// --- 4. Tool: get_network_reach ---
	s.AddTool(mcp.NewTool("get_network_reach",
		mcp.WithDescription("Find supporters of a viewpoint group who lead other groups, with each downstream group's verified-voter count."),
		mcp.WithString("group_id", mcp.Description("The viewpoint group's unique identifier."), mcp.Required()),
		mcp.WithString("backend", mcp.Description("Data backend to read from."), mcp.Enum("sqlite", "mysql", "postgresql", "sway_api")),
	), h.handleGetNetworkReach)

	// --- 5. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Compute all four sway metrics for a viewpoint group in one call."),
		mcp.WithString("group_id", mcp.Description("The viewpoint group's unique identifier."), mcp.Required()),
		mcp.WithString("backend", mcp.Description("Data backend to read from."), mcp.Enum("sqlite", "mysql", "postgresql", "sway_api")),
	), h.handleGetDashboard)

	// --- 6. Tool: list_viewpoint_groups ---
	s.AddTool(mcp.NewTool("list_viewpoint_groups",
		mcp.WithDescription("List viewpoint groups that have at least one supporter."),
		mcp.WithString("backend", mcp.Description("Data backend to read from."), mcp.Enum("sqlite", "mysql", "postgresql", "sway_api")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of groups returned.")),
	), h.handleListViewpointGroups)

	return s
}

// StartMCPServer starts the swaydash MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, disp *core.Dispatcher) error {
	s := NewMCPServer(baseCfg, disp)
	return server.ServeStdio(s)
}
