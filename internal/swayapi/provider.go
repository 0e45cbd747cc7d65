package swayapi

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/core"
	"github.com/BrettEastman/sway-leader-dashboard/core/batch"
	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// Provider computes the four dashboard metrics against the Sway GraphQL API.
// Supporter pages replace the snapshot's membership relations, and states
// extracted from free-text locations stand in for formal jurisdiction
// registrations.
type Provider struct {
	client   *Client
	pageSize int
	workers  int
}

var _ contract.MetricsProvider = &Provider{} // Compile-time check

// NewProvider builds a Provider. The configured batch size doubles as the
// supporter page size and the profile-ID window for leader lookups.
func NewProvider(client *Client, cfg *contract.Config) *Provider {
	pageSize := cfg.BatchSize
	if pageSize <= 0 {
		pageSize = contract.DefaultBatchSize
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = contract.DefaultWorkers
	}
	return &Provider{client: client, pageSize: pageSize, workers: workers}
}

// Backend implements the MetricsProvider interface.
func (p *Provider) Backend() schema.DataBackend {
	return schema.SwayAPIBackend
}

// GroupsWithSupporters implements the MetricsProvider interface. The API
// has no listing surface, so the dispatcher falls back to the relational
// provider.
func (p *Provider) GroupsWithSupporters(_ context.Context) ([]schema.GroupSummary, error) {
	return nil, contract.ErrUnsupported
}

// absorb mirrors the engine's degrade policy: cancellation propagates,
// anything else is logged and swallowed.
func absorb(err error, step string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	contract.LogWarn(step, err)
	return nil
}

// GraphQL documents. The API caps _in filters and page sizes the same way
// the relational store caps IN-lists.
const (
	verifiedAggregateQuery = `query VerifiedSupporterAggregate($groupId: ID!) {
  voterVerificationsAggregate(groupId: $groupId, isFullyVerified: true) {
    count
  }
}`

	groupSummaryQuery = `query GroupSummary($groupId: ID!) {
  viewpointGroup(id: $groupId) {
    supporterCount
    verifiedSupporterCount
  }
}`

	supporterPageQuery = `query SupporterPage($groupId: ID!, $limit: Int!, $offset: Int!) {
  viewpointGroup(id: $groupId) {
    supporters(limit: $limit, offset: $offset) {
      profileId
      displayName
      location
      relationCreatedAt
      verification {
        id
        isFullyVerified
        createdAt
      }
    }
  }
}`

	leaderRelationsQuery = `query LeaderRelations($profileIds: [ID!]!) {
  membershipRelations(profileIdIn: $profileIds, type: "leader") {
    profileId
    viewpointGroup {
      id
      title
    }
  }
}`
)

// apiSupporter is one supporter entry from a supporter page.
type apiSupporter struct {
	ProfileID         string           `json:"profileId"`
	DisplayName       *string          `json:"displayName"`
	Location          *string          `json:"location"`
	RelationCreatedAt *time.Time       `json:"relationCreatedAt"`
	Verification      *apiVerification `json:"verification"`
}

// apiVerification is a supporter's voter verification, when one exists.
type apiVerification struct {
	ID              string     `json:"id"`
	IsFullyVerified bool       `json:"isFullyVerified"`
	CreatedAt       *time.Time `json:"createdAt"`
}

// verified reports whether the supporter counts as a verified voter.
func (s apiSupporter) verified() bool {
	return s.Verification != nil && s.Verification.IsFullyVerified
}

// groupSummary is the per-group rollup the API maintains.
type groupSummary struct {
	SupporterCount         int `json:"supporterCount"`
	VerifiedSupporterCount int `json:"verifiedSupporterCount"`
}

// fetchGroupSummary loads the per-group rollup counts.
func (p *Provider) fetchGroupSummary(ctx context.Context, groupID string) (*groupSummary, error) {
	payload := struct {
		ViewpointGroup *groupSummary `json:"viewpointGroup"`
	}{}
	if err := p.client.Do(ctx, groupSummaryQuery, map[string]any{"groupId": groupID}, &payload); err != nil {
		return nil, err
	}
	if payload.ViewpointGroup == nil {
		return &groupSummary{}, nil
	}
	return payload.ViewpointGroup, nil
}

// fetchSupporters pages through a group's supporters until a short page
// signals the end.
func (p *Provider) fetchSupporters(ctx context.Context, groupID string) ([]apiSupporter, error) {
	var supporters []apiSupporter
	for offset := 0; ; offset += p.pageSize {
		payload := struct {
			ViewpointGroup *struct {
				Supporters []apiSupporter `json:"supporters"`
			} `json:"viewpointGroup"`
		}{}
		variables := map[string]any{"groupId": groupID, "limit": p.pageSize, "offset": offset}
		if err := p.client.Do(ctx, supporterPageQuery, variables, &payload); err != nil {
			return supporters, err
		}
		if payload.ViewpointGroup == nil {
			return supporters, nil
		}
		supporters = append(supporters, payload.ViewpointGroup.Supporters...)
		if len(payload.ViewpointGroup.Supporters) < p.pageSize {
			return supporters, nil
		}
	}
}

// SwayScore implements the MetricsProvider interface. The aggregate count
// query is authoritative; the group summary supplies the raw supporter
// count and serves as the fallback when the aggregate query fails.
func (p *Provider) SwayScore(ctx context.Context, groupID string) (schema.SwayScoreResult, error) {
	var result schema.SwayScoreResult
	if groupID == "" {
		return result, nil
	}

	summary, err := p.fetchGroupSummary(ctx, groupID)
	if err != nil {
		return schema.SwayScoreResult{}, absorb(err, "Sway score summary fetch failed")
	}
	result.TotalSupporters = summary.SupporterCount

	aggregate := struct {
		VoterVerificationsAggregate struct {
			Count int `json:"count"`
		} `json:"voterVerificationsAggregate"`
	}{}
	if err := p.client.Do(ctx, verifiedAggregateQuery, map[string]any{"groupId": groupID}, &aggregate); err != nil {
		if cancelErr := absorb(err, "Sway score aggregate fetch failed"); cancelErr != nil {
			return schema.SwayScoreResult{}, cancelErr
		}
		result.Count = summary.VerifiedSupporterCount
		return result, nil
	}
	result.Count = aggregate.VoterVerificationsAggregate.Count
	return result, nil
}

// ElectoralInfluence implements the MetricsProvider interface. Without
// registration relations, verified supporters are grouped by the state in
// their profile location; race and election branches stay empty.
func (p *Provider) ElectoralInfluence(ctx context.Context, groupID string) (schema.ElectoralInfluenceResult, error) {
	result := schema.ElectoralInfluenceResult{
		ByJurisdiction:    []schema.ElectoralInfluenceByJurisdiction{},
		ByRace:            []schema.ElectoralInfluenceByRace{},
		UpcomingElections: []schema.UpcomingElection{},
	}
	if groupID == "" {
		return result, nil
	}

	supporters, err := p.fetchSupporters(ctx, groupID)
	if err != nil {
		return result, absorb(err, "Electoral influence supporter fetch failed")
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, s := range supporters {
		if !s.verified() || s.Location == nil {
			continue
		}
		code, ok := ExtractState(*s.Location)
		if !ok {
			continue
		}
		if _, seen := counts[code]; !seen {
			order = append(order, code)
		}
		counts[code]++
	}

	for _, code := range order {
		name := StateName(code)
		state := code
		result.ByJurisdiction = append(result.ByJurisdiction, schema.ElectoralInfluenceByJurisdiction{
			JurisdictionID:   code,
			JurisdictionName: &name,
			State:            &state,
			SupporterCount:   counts[code],
		})
	}
	sort.SliceStable(result.ByJurisdiction, func(i, j int) bool {
		return result.ByJurisdiction[i].SupporterCount > result.ByJurisdiction[j].SupporterCount
	})
	return result, nil
}

// GrowthOverTime implements the MetricsProvider interface. The series math
// is shared with the relational engine so both backends bucket identically.
func (p *Provider) GrowthOverTime(ctx context.Context, groupID string) (schema.GrowthOverTimeResult, error) {
	result := schema.GrowthOverTimeResult{DataPoints: []schema.GrowthOverTimeDataPoint{}}
	if groupID == "" {
		return result, nil
	}

	supporters, err := p.fetchSupporters(ctx, groupID)
	if err != nil {
		return result, absorb(err, "Growth supporter fetch failed")
	}

	events := make([]schema.GrowthEvent, 0, len(supporters))
	for _, s := range supporters {
		if !s.verified() {
			continue
		}
		var ev schema.GrowthEvent
		if s.RelationCreatedAt != nil {
			ev.RelationCreatedAt = *s.RelationCreatedAt
		}
		if s.Verification.CreatedAt != nil {
			ev.VerificationCreatedAt = *s.Verification.CreatedAt
		}
		events = append(events, ev)
	}
	return core.BuildGrowthSeries(events), nil
}

// apiLeaderRelation is one leader membership row from the API.
type apiLeaderRelation struct {
	ProfileID      string `json:"profileId"`
	ViewpointGroup struct {
		ID    string  `json:"id"`
		Title *string `json:"title"`
	} `json:"viewpointGroup"`
}

// leaderPair identifies one (supporter profile, downstream group) edge.
type leaderPair struct {
	ProfileID string
	GroupID   string
}

// NetworkReach implements the MetricsProvider interface.
func (p *Provider) NetworkReach(ctx context.Context, groupID string) (schema.NetworkReachResult, error) {
	result := schema.NetworkReachResult{NetworkLeaders: []schema.NetworkLeader{}}
	if groupID == "" {
		return result, nil
	}

	// --- 1. Supporter pages, pre-verification ---
	supporters, err := p.fetchSupporters(ctx, groupID)
	if err != nil {
		return result, absorb(err, "Network reach supporter fetch failed")
	}
	if len(supporters) == 0 {
		return result, nil
	}
	nameByProfile := make(map[string]*string, len(supporters))
	profileIDs := make([]string, 0, len(supporters))
	for _, s := range supporters {
		if _, ok := nameByProfile[s.ProfileID]; ok {
			continue
		}
		nameByProfile[s.ProfileID] = s.DisplayName
		profileIDs = append(profileIDs, s.ProfileID)
	}

	// --- 2. Leader relations for those profiles, windowed by page size ---
	leaderRels, err := batch.Fetch(ctx, profileIDs, p.pageSize, func(ctx context.Context, window []string) ([]apiLeaderRelation, error) {
		payload := struct {
			MembershipRelations []apiLeaderRelation `json:"membershipRelations"`
		}{}
		if err := p.client.Do(ctx, leaderRelationsQuery, map[string]any{"profileIds": window}, &payload); err != nil {
			return nil, err
		}
		return payload.MembershipRelations, nil
	})
	if err != nil {
		return schema.NetworkReachResult{NetworkLeaders: []schema.NetworkLeader{}}, absorb(err, "Network reach leader fetch failed")
	}

	pairs := make([]leaderPair, 0, len(leaderRels))
	titleByGroup := make(map[string]*string)
	seen := make(map[leaderPair]struct{}, len(leaderRels))
	for _, rel := range leaderRels {
		if rel.ViewpointGroup.ID == groupID {
			continue
		}
		pair := leaderPair{ProfileID: rel.ProfileID, GroupID: rel.ViewpointGroup.ID}
		if _, ok := seen[pair]; ok {
			continue
		}
		seen[pair] = struct{}{}
		pairs = append(pairs, pair)
		titleByGroup[rel.ViewpointGroup.ID] = rel.ViewpointGroup.Title
	}
	if len(pairs) == 0 {
		return result, nil
	}

	// --- 3. Downstream summaries on a worker pool ---
	groupIDs := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		groupIDs = append(groupIDs, pair.GroupID)
	}
	summaries := p.fetchDownstreamSummaries(ctx, batch.Dedupe(groupIDs))
	if err := ctx.Err(); err != nil {
		return schema.NetworkReachResult{NetworkLeaders: []schema.NetworkLeader{}}, err
	}

	// --- 4. One record per pair; the sum stays un-deduplicated ---
	for _, pair := range pairs {
		leader := schema.NetworkLeader{
			ProfileID:           pair.ProfileID,
			DisplayName:         nameByProfile[pair.ProfileID],
			ViewpointGroupID:    pair.GroupID,
			ViewpointGroupTitle: titleByGroup[pair.GroupID],
		}
		if summary, ok := summaries[pair.GroupID]; ok {
			leader.DownstreamVerifiedVoters = summary.VerifiedSupporterCount
			leader.SupporterCount = summary.SupporterCount
		}
		result.NetworkLeaders = append(result.NetworkLeaders, leader)
		result.TotalDownstreamReach += leader.DownstreamVerifiedVoters
	}
	sort.SliceStable(result.NetworkLeaders, func(i, j int) bool {
		return result.NetworkLeaders[i].DownstreamVerifiedVoters > result.NetworkLeaders[j].DownstreamVerifiedVoters
	})
	return result, nil
}

// fetchDownstreamSummaries loads group summaries concurrently, one worker
// pool slot per downstream group. A failing group degrades to zero counts.
func (p *Provider) fetchDownstreamSummaries(ctx context.Context, groupIDs []string) map[string]groupSummary {
	type keyed struct {
		GroupID string
		Summary groupSummary
	}
	groupCh := make(chan string, len(groupIDs))
	summaryCh := make(chan keyed, len(groupIDs))
	var wg sync.WaitGroup

	workers := min(p.workers, len(groupIDs))
	for range workers {
		wg.Go(func() {
			for id := range groupCh {
				summary, err := p.fetchGroupSummary(ctx, id)
				if err != nil {
					_ = absorb(err, "Downstream group summary failed")
					summaryCh <- keyed{GroupID: id}
					continue
				}
				summaryCh <- keyed{GroupID: id, Summary: *summary}
			}
		})
	}

	for _, id := range groupIDs {
		groupCh <- id
	}
	close(groupCh)
	wg.Wait()
	close(summaryCh)

	summaries := make(map[string]groupSummary, len(groupIDs))
	for k := range summaryCh {
		summaries[k.GroupID] = k.Summary
	}
	return summaries
}
