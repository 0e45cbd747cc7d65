package core

import (
	"context"
	"sort"
	"sync"

	"github.com/BrettEastman/sway-leader-dashboard/core/batch"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// leaderPair is one (supporter profile, downstream group) candidate before
// downstream counts are attached.
type leaderPair struct {
	ProfileID string
	GroupID   string
}

// downstreamCount is a downstream group's own supporter pipeline output.
type downstreamCount struct {
	GroupID        string
	Verified       int
	SupporterCount int
}

// NetworkReach finds supporters of the target group who lead other groups
// and attaches each downstream group's own verified-voter count. Downstream
// pipelines run on a bounded worker pool since they are independent reads.
func (e *Engine) NetworkReach(ctx context.Context, groupID string) (schema.NetworkReachResult, error) {
	result := schema.NetworkReachResult{NetworkLeaders: []schema.NetworkLeader{}}
	if groupID == "" {
		return result, nil
	}

	// --- 1. Supporter profile ids, pre-verification ---
	rels, err := e.store.MembershipsForGroup(ctx, groupID, schema.SupporterRelation)
	if err != nil {
		return result, recoverFetch(err, "Network reach supporter fetch failed")
	}
	if len(rels) == 0 {
		return result, nil
	}
	profileIDs := batch.Keys(rels, func(r schema.MembershipRelation) string { return r.ProfileID })

	// --- 2. Leader relations held by those profiles, excluding self-loops ---
	leaderRels, err := batch.Fetch(ctx, profileIDs, e.batchSize, func(ctx context.Context, window []string) ([]schema.MembershipRelation, error) {
		return e.store.MembershipsForProfiles(ctx, window, schema.LeaderRelation)
	})
	if err != nil {
		return schema.NetworkReachResult{NetworkLeaders: []schema.NetworkLeader{}}, recoverFetch(err, "Network reach leader fetch failed")
	}

	pairs := make([]leaderPair, 0, len(leaderRels))
	seen := make(map[leaderPair]struct{}, len(leaderRels))
	for _, rel := range leaderRels {
		if rel.ViewpointGroupID == groupID {
			continue
		}
		pair := leaderPair{ProfileID: rel.ProfileID, GroupID: rel.ViewpointGroupID}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
	}
	if len(pairs) == 0 {
		// The common case: supporters who lead nothing else.
		return result, nil
	}

	// --- 3. Display names and group titles, degrading to nil on failure ---
	profileIdx, groupIdx := e.resolveLeaderLabels(ctx, pairs)

	// --- 4. Downstream pipelines on a worker pool, one per distinct group ---
	groupIDs := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		groupIDs = append(groupIDs, pair.GroupID)
	}
	counts := e.countDownstreamGroups(ctx, batch.Dedupe(groupIDs))
	if err := ctx.Err(); err != nil {
		return schema.NetworkReachResult{NetworkLeaders: []schema.NetworkLeader{}}, err
	}

	// --- 5. One record per pair; the sum is intentionally not deduplicated ---
	for _, pair := range pairs {
		leader := schema.NetworkLeader{
			ProfileID:        pair.ProfileID,
			ViewpointGroupID: pair.GroupID,
		}
		if p, ok := profileIdx[pair.ProfileID]; ok {
			leader.DisplayName = p.DisplayName
		}
		if g, ok := groupIdx[pair.GroupID]; ok {
			leader.ViewpointGroupTitle = g.Title
		}
		if c, ok := counts[pair.GroupID]; ok {
			leader.DownstreamVerifiedVoters = c.Verified
			leader.SupporterCount = c.SupporterCount
		}
		result.NetworkLeaders = append(result.NetworkLeaders, leader)
		result.TotalDownstreamReach += leader.DownstreamVerifiedVoters
	}
	sort.SliceStable(result.NetworkLeaders, func(i, j int) bool {
		return result.NetworkLeaders[i].DownstreamVerifiedVoters > result.NetworkLeaders[j].DownstreamVerifiedVoters
	})
	return result, nil
}

// resolveLeaderLabels fetches profile and group rows for the label columns.
// Either lookup may fail independently without touching the counts.
func (e *Engine) resolveLeaderLabels(ctx context.Context, pairs []leaderPair) (map[string]schema.Profile, map[string]schema.ViewpointGroup) {
	profileIDs := batch.Keys(pairs, func(p leaderPair) string { return p.ProfileID })
	groupIDs := batch.Keys(pairs, func(p leaderPair) string { return p.GroupID })

	profiles, err := batch.Fetch(ctx, profileIDs, e.batchSize, e.store.ProfilesByIDs)
	if err != nil {
		_ = recoverFetch(err, "Network leader profile lookup failed")
	}
	groups, err := batch.Fetch(ctx, groupIDs, e.batchSize, e.store.GroupsByIDs)
	if err != nil {
		_ = recoverFetch(err, "Network leader group lookup failed")
	}

	return batch.Index(profiles, func(p schema.Profile) string { return p.ID }),
		batch.Index(groups, func(g schema.ViewpointGroup) string { return g.ID })
}

// countDownstreamGroups runs the supporter pipeline for each downstream
// group concurrently, bounded by the configured worker count. A failing
// group degrades to zero counts instead of sinking the whole metric.
func (e *Engine) countDownstreamGroups(ctx context.Context, groupIDs []string) map[string]downstreamCount {
	groupCh := make(chan string, len(groupIDs))
	countCh := make(chan downstreamCount, len(groupIDs))
	var wg sync.WaitGroup

	workers := min(e.workers, len(groupIDs))
	for range workers {
		wg.Go(func() {
			for id := range groupCh {
				set, err := e.resolveSupporters(ctx, id)
				if err != nil {
					_ = recoverFetch(err, "Downstream group pipeline failed")
					countCh <- downstreamCount{GroupID: id}
					continue
				}
				countCh <- downstreamCount{
					GroupID:        id,
					Verified:       len(set.Verified),
					SupporterCount: set.TotalSupporters,
				}
			}
		})
	}

	for _, id := range groupIDs {
		groupCh <- id
	}
	close(groupCh)
	wg.Wait()
	close(countCh)

	counts := make(map[string]downstreamCount, len(groupIDs))
	for c := range countCh {
		counts[c.GroupID] = c
	}
	return counts
}
