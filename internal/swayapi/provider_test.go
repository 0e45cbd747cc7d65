package swayapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a canned GraphQL backend. Supporters are served in pages per
// group; summaries and leader relations come straight from the maps.
type fakeAPI struct {
	supporters map[string][]apiSupporter
	summaries  map[string]groupSummary
	leaderRels []apiLeaderRelation

	supporterPageCalls int
	failAggregate      bool
}

func (f *fakeAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch {
		case strings.Contains(req.Query, "VerifiedSupporterAggregate"):
			if f.failAggregate {
				_, _ = w.Write([]byte(`{"errors": [{"message": "aggregate unavailable"}]}`))
				return
			}
			groupID, _ := req.Variables["groupId"].(string)
			count := 0
			for _, s := range f.supporters[groupID] {
				if s.verified() {
					count++
				}
			}
			_, _ = fmt.Fprintf(w, `{"data": {"voterVerificationsAggregate": {"count": %d}}}`, count)

		case strings.Contains(req.Query, "GroupSummary"):
			groupID, _ := req.Variables["groupId"].(string)
			summary := f.summaries[groupID]
			_, _ = fmt.Fprintf(w, `{"data": {"viewpointGroup": {"supporterCount": %d, "verifiedSupporterCount": %d}}}`,
				summary.SupporterCount, summary.VerifiedSupporterCount)

		case strings.Contains(req.Query, "SupporterPage"):
			f.supporterPageCalls++
			groupID, _ := req.Variables["groupId"].(string)
			limit := int(req.Variables["limit"].(float64))
			offset := int(req.Variables["offset"].(float64))
			all := f.supporters[groupID]
			page := []apiSupporter{}
			if offset < len(all) {
				page = all[offset:min(offset+limit, len(all))]
			}
			writeData(w, map[string]any{"viewpointGroup": map[string]any{"supporters": page}})

		case strings.Contains(req.Query, "LeaderRelations"):
			ids, _ := req.Variables["profileIds"].([]any)
			idSet := make(map[string]bool, len(ids))
			for _, id := range ids {
				idSet[id.(string)] = true
			}
			matched := []apiLeaderRelation{}
			for _, rel := range f.leaderRels {
				if idSet[rel.ProfileID] {
					matched = append(matched, rel)
				}
			}
			writeData(w, map[string]any{"membershipRelations": matched})

		default:
			http.Error(w, "unknown query", http.StatusBadRequest)
		}
	}
}

func writeData(w http.ResponseWriter, data map[string]any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

// newTestProvider wires a Provider to a fakeAPI with small pages.
func newTestProvider(t *testing.T, api *fakeAPI, pageSize int) *Provider {
	t.Helper()
	server := httptest.NewServer(api.handler())
	t.Cleanup(server.Close)
	cfg := &contract.Config{
		APIURL:    server.URL,
		APIToken:  "token",
		BatchSize: pageSize,
		Workers:   2,
	}
	client := NewClient(cfg)
	client.httpClient = server.Client()
	return NewProvider(client, cfg)
}

func strPtr(s string) *string { return &s }

func verifiedSupporter(profileID, location string) apiSupporter {
	return apiSupporter{
		ProfileID:    profileID,
		DisplayName:  strPtr("Supporter " + profileID),
		Location:     strPtr(location),
		Verification: &apiVerification{ID: "v-" + profileID, IsFullyVerified: true},
	}
}

func TestProviderBackend(t *testing.T) {
	p := newTestProvider(t, &fakeAPI{}, 10)
	assert.Equal(t, schema.SwayAPIBackend, p.Backend())
}

func TestProviderSwayScore(t *testing.T) {
	api := &fakeAPI{
		supporters: map[string][]apiSupporter{
			"g1": {
				verifiedSupporter("p1", "Austin, TX"),
				verifiedSupporter("p2", "Reno, NV"),
				{ProfileID: "p3"}, // no verification
			},
		},
		summaries: map[string]groupSummary{
			"g1": {SupporterCount: 3, VerifiedSupporterCount: 2},
		},
	}
	p := newTestProvider(t, api, 10)

	result, err := p.SwayScore(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, 3, result.TotalSupporters)
}

func TestProviderSwayScoreAggregateFallback(t *testing.T) {
	api := &fakeAPI{
		summaries: map[string]groupSummary{
			"g1": {SupporterCount: 5, VerifiedSupporterCount: 4},
		},
		failAggregate: true,
	}
	p := newTestProvider(t, api, 10)

	result, err := p.SwayScore(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, 4, result.Count, "summary count stands in when the aggregate query fails")
	assert.Equal(t, 5, result.TotalSupporters)
}

func TestProviderSupporterPaging(t *testing.T) {
	supporters := make([]apiSupporter, 5)
	for i := range supporters {
		supporters[i] = verifiedSupporter(fmt.Sprintf("p%d", i), "Austin, TX")
	}
	api := &fakeAPI{supporters: map[string][]apiSupporter{"g1": supporters}}
	p := newTestProvider(t, api, 2)

	got, err := p.fetchSupporters(context.Background(), "g1")
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.Equal(t, 3, api.supporterPageCalls, "5 supporters with page size 2 take 3 pages")
}

func TestProviderElectoralInfluence(t *testing.T) {
	api := &fakeAPI{
		supporters: map[string][]apiSupporter{
			"g1": {
				verifiedSupporter("p1", "Austin, TX"),
				verifiedSupporter("p2", "Dallas, TX"),
				verifiedSupporter("p3", "Portland, Oregon"),
				verifiedSupporter("p4", "Somewhere Unknown"),
				{ProfileID: "p5", Location: strPtr("Reno, NV")}, // unverified
			},
		},
	}
	p := newTestProvider(t, api, 10)

	result, err := p.ElectoralInfluence(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, result.ByJurisdiction, 2)
	assert.Equal(t, "TX", result.ByJurisdiction[0].JurisdictionID)
	assert.Equal(t, 2, result.ByJurisdiction[0].SupporterCount)
	require.NotNil(t, result.ByJurisdiction[0].JurisdictionName)
	assert.Equal(t, "Texas", *result.ByJurisdiction[0].JurisdictionName)
	assert.Equal(t, "OR", result.ByJurisdiction[1].JurisdictionID)
	assert.Empty(t, result.ByRace)
	assert.Empty(t, result.UpcomingElections)
}

func TestProviderNetworkReach(t *testing.T) {
	api := &fakeAPI{
		supporters: map[string][]apiSupporter{
			"g1": {verifiedSupporter("p1", "Austin, TX"), verifiedSupporter("p2", "Reno, NV")},
		},
		summaries: map[string]groupSummary{
			"h": {SupporterCount: 12, VerifiedSupporterCount: 10},
			"k": {SupporterCount: 7, VerifiedSupporterCount: 5},
		},
		leaderRels: []apiLeaderRelation{
			leaderRel("p1", "h", "Group H"),
			leaderRel("p1", "k", "Group K"),
			leaderRel("p2", "g1", "Target Group"), // self-loop, excluded
		},
	}
	p := newTestProvider(t, api, 10)

	result, err := p.NetworkReach(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, result.NetworkLeaders, 2)
	assert.Equal(t, 15, result.TotalDownstreamReach)
	assert.Equal(t, "h", result.NetworkLeaders[0].ViewpointGroupID)
	assert.Equal(t, 10, result.NetworkLeaders[0].DownstreamVerifiedVoters)
	assert.Equal(t, 12, result.NetworkLeaders[0].SupporterCount)
	require.NotNil(t, result.NetworkLeaders[0].DisplayName)
	assert.Equal(t, "Supporter p1", *result.NetworkLeaders[0].DisplayName)
}

func leaderRel(profileID, groupID, title string) apiLeaderRelation {
	rel := apiLeaderRelation{ProfileID: profileID}
	rel.ViewpointGroup.ID = groupID
	rel.ViewpointGroup.Title = &title
	return rel
}

func TestProviderGrowthOverTime(t *testing.T) {
	api := &fakeAPI{supporters: map[string][]apiSupporter{"g1": {}}}
	p := newTestProvider(t, api, 10)

	result, err := p.GrowthOverTime(context.Background(), "g1")
	require.NoError(t, err)
	assert.Empty(t, result.DataPoints)
	assert.Equal(t, 0, result.TotalGrowth)
}

func TestProviderGroupsWithSupportersUnsupported(t *testing.T) {
	p := newTestProvider(t, &fakeAPI{}, 10)
	_, err := p.GroupsWithSupporters(context.Background())
	require.ErrorIs(t, err, contract.ErrUnsupported)
}

func TestProviderEmptyGroupID(t *testing.T) {
	p := newTestProvider(t, &fakeAPI{}, 10)
	ctx := context.Background()

	score, err := p.SwayScore(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, score.Count)

	reach, err := p.NetworkReach(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, reach.NetworkLeaders)
}
