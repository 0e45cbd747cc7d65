package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	mcp_internal "github.com/BrettEastman/sway-leader-dashboard/internal/mcp"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer wires an in-memory datastore behind a real dispatcher.
func newTestServer(t *testing.T) *server.MCPServer {
	t.Helper()

	titled := func(s string) *string { return &s }
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &contract.MemoryDatastore{
		Groups: []schema.ViewpointGroup{{ID: "g1", Title: titled("Clean Water")}},
		Memberships: []schema.MembershipRelation{
			{ID: "r1", ProfileID: "p1", ViewpointGroupID: "g1", Type: schema.SupporterRelation, CreatedAt: created},
		},
		Profiles: []schema.Profile{{ID: "p1", PersonID: "per1"}},
		Verifications: []schema.VoterVerification{
			{ID: "v1", PersonID: "per1", IsFullyVerified: true, CreatedAt: created},
		},
	}

	cfg := &contract.Config{
		Backend:   schema.SQLiteBackend,
		BatchSize: 100,
		Workers:   2,
	}
	engine := core.NewEngine(store, schema.SQLiteBackend, cfg)
	disp, err := core.NewDispatcher(schema.SQLiteBackend, engine)
	require.NoError(t, err)

	return mcp_internal.NewMCPServer(cfg, disp)
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	t.Run("get_sway_score missing group_id", func(t *testing.T) {
		res := callTool(t, s, "get_sway_score", map[string]any{"group_id": ""})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, textOf(t, res), "group_id is required")
	})

	t.Run("get_network_reach invalid backend", func(t *testing.T) {
		res := callTool(t, s, "get_network_reach", map[string]any{
			"group_id": "g1",
			"backend":  "oracle",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "invalid backend")
	})

	t.Run("get_dashboard missing group_id", func(t *testing.T) {
		res := callTool(t, s, "get_dashboard", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "group_id is required")
	})
}

func TestMCPServerHandlers_Results(t *testing.T) {
	s := newTestServer(t)

	t.Run("get_sway_score returns counts", func(t *testing.T) {
		res := callTool(t, s, "get_sway_score", map[string]any{"group_id": "g1"})
		require.False(t, res.IsError)
		text := textOf(t, res)
		assert.Contains(t, text, `"count": 1`)
		assert.Contains(t, text, `"totalSupporters": 1`)
	})

	t.Run("list_viewpoint_groups returns groups", func(t *testing.T) {
		res := callTool(t, s, "list_viewpoint_groups", map[string]any{})
		require.False(t, res.IsError)
		assert.Contains(t, textOf(t, res), "Clean Water")
	})

	t.Run("list_viewpoint_groups honors limit", func(t *testing.T) {
		res := callTool(t, s, "list_viewpoint_groups", map[string]any{"limit": 1.0})
		require.False(t, res.IsError)
		assert.Contains(t, textOf(t, res), "g1")
	})

	t.Run("get_dashboard bundles all metrics", func(t *testing.T) {
		res := callTool(t, s, "get_dashboard", map[string]any{"group_id": "g1"})
		require.False(t, res.IsError)
		text := textOf(t, res)
		assert.Contains(t, text, `"swayScore"`)
		assert.Contains(t, text, `"electoralInfluence"`)
		assert.Contains(t, text, `"growthOverTime"`)
		assert.Contains(t, text, `"networkReach"`)
	})
}
