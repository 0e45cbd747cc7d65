package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	disp    *core.Dispatcher
}

// resolveBackend reads the optional backend argument, falling back to the
// configured backend when absent.
func (h *toolHandler) resolveBackend(request mcp.CallToolRequest) (schema.DataBackend, error) {
	raw := request.GetString("backend", "")
	if raw == "" {
		return h.baseCfg.Backend, nil
	}
	backend := schema.DataBackend(raw)
	if _, ok := schema.ValidDataBackends[backend]; !ok {
		return "", fmt.Errorf("invalid backend %q", raw)
	}
	return backend, nil
}

// requireGroupID reads the mandatory group_id argument.
func requireGroupID(request mcp.CallToolRequest) (string, error) {
	groupID := request.GetString("group_id", "")
	if groupID == "" {
		return "", fmt.Errorf("group_id is required")
	}
	return groupID, nil
}

func (h *toolHandler) handleGetSwayScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID, err := requireGroupID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	backend, err := h.resolveBackend(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.disp.SwayScore(ctx, backend, groupID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("sway score failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetElectoralInfluence(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID, err := requireGroupID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	backend, err := h.resolveBackend(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.disp.ElectoralInfluence(ctx, backend, groupID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("electoral influence failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetGrowthOverTime(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID, err := requireGroupID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	backend, err := h.resolveBackend(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.disp.GrowthOverTime(ctx, backend, groupID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("growth over time failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetNetworkReach(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID, err := requireGroupID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	backend, err := h.resolveBackend(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.disp.NetworkReach(ctx, backend, groupID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("network reach failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	groupID, err := requireGroupID(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	backend, err := h.resolveBackend(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := core.ComputeDashboard(ctx, backend, h.disp, groupID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListViewpointGroups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	backend, err := h.resolveBackend(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	groups, err := h.disp.GroupsWithSupporters(ctx, backend)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("group listing failed: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 && len(groups) > l {
		groups = groups[:l]
	}

	jsonData, _ := json.MarshalIndent(groups, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
