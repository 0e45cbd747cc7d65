package core

import (
	"context"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// SwayScore counts fully-verified voters among a group's supporters. A group
// with no supporters, an unknown group, or a mid-pipeline fetch failure all
// resolve to the zero result.
func (e *Engine) SwayScore(ctx context.Context, groupID string) (schema.SwayScoreResult, error) {
	var result schema.SwayScoreResult
	if groupID == "" {
		return result, nil
	}

	set, err := e.resolveSupporters(ctx, groupID)
	if err != nil {
		return schema.SwayScoreResult{}, recoverFetch(err, "Sway score supporter resolution failed")
	}

	result.Count = len(set.Verified)
	result.TotalSupporters = set.TotalSupporters
	return result, nil
}
