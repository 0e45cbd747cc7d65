package core

import (
	"context"
	"errors"
	"testing"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// networkStore is the Scenario E fixture: supporter profile P of group G
// leads group H (10 verified voters) and group K (5 verified voters).
func networkStore() *contract.MemoryDatastore {
	store := &contract.MemoryDatastore{
		Groups: []schema.ViewpointGroup{
			{ID: "G", Title: titled("Target Group")},
			{ID: "H", Title: titled("Group H")},
			{ID: "K", Title: titled("Group K")},
		},
		Memberships: []schema.MembershipRelation{
			{ID: "rg", ProfileID: "P", ViewpointGroupID: "G", Type: schema.SupporterRelation, CreatedAt: day("2024-01-01")},
			{ID: "lh", ProfileID: "P", ViewpointGroupID: "H", Type: schema.LeaderRelation, CreatedAt: day("2024-01-02")},
			{ID: "lk", ProfileID: "P", ViewpointGroupID: "K", Type: schema.LeaderRelation, CreatedAt: day("2024-01-03")},
		},
		Profiles: []schema.Profile{
			{ID: "P", PersonID: "perP", DisplayName: titled("Pat Lee")},
		},
	}

	// H gets 10 verified supporters, K gets 5.
	addVerifiedSupporters(store, "H", "h", 10)
	addVerifiedSupporters(store, "K", "k", 5)
	return store
}

// addVerifiedSupporters seeds n verified supporter chains onto a group.
func addVerifiedSupporters(store *contract.MemoryDatastore, groupID, prefix string, n int) {
	for i := range n {
		profileID := prefixed(prefix, "p", i)
		personID := prefixed(prefix, "per", i)
		store.Memberships = append(store.Memberships, schema.MembershipRelation{
			ID:               prefixed(prefix, "r", i),
			ProfileID:        profileID,
			ViewpointGroupID: groupID,
			Type:             schema.SupporterRelation,
			CreatedAt:        day("2024-02-01"),
		})
		store.Profiles = append(store.Profiles, schema.Profile{ID: profileID, PersonID: personID})
		store.Verifications = append(store.Verifications, schema.VoterVerification{
			ID:              prefixed(prefix, "v", i),
			PersonID:        personID,
			IsFullyVerified: true,
			CreatedAt:       day("2024-02-02"),
		})
	}
}

func prefixed(prefix, kind string, i int) string {
	return prefix + kind + string(rune('a'+i))
}

func TestNetworkReachScenario(t *testing.T) {
	engine := newTestEngine(networkStore())

	result, err := engine.NetworkReach(context.Background(), "G")
	require.NoError(t, err)

	require.Len(t, result.NetworkLeaders, 2)
	assert.Equal(t, 15, result.TotalDownstreamReach)

	// Sorted descending by downstream verified voters.
	first, second := result.NetworkLeaders[0], result.NetworkLeaders[1]
	assert.Equal(t, "H", first.ViewpointGroupID)
	assert.Equal(t, 10, first.DownstreamVerifiedVoters)
	assert.Equal(t, 10, first.SupporterCount)
	require.NotNil(t, first.ViewpointGroupTitle)
	assert.Equal(t, "Group H", *first.ViewpointGroupTitle)
	require.NotNil(t, first.DisplayName)
	assert.Equal(t, "Pat Lee", *first.DisplayName)

	assert.Equal(t, "K", second.ViewpointGroupID)
	assert.Equal(t, 5, second.DownstreamVerifiedVoters)
}

func TestNetworkReachSumLaw(t *testing.T) {
	engine := newTestEngine(networkStore())

	result, err := engine.NetworkReach(context.Background(), "G")
	require.NoError(t, err)

	sum := 0
	for _, leader := range result.NetworkLeaders {
		sum += leader.DownstreamVerifiedVoters
	}
	assert.Equal(t, sum, result.TotalDownstreamReach)
}

func TestNetworkReachExcludesSelfLoop(t *testing.T) {
	store := networkStore()
	// P also leads the target group itself; that edge must not appear.
	store.Memberships = append(store.Memberships, schema.MembershipRelation{
		ID: "lg", ProfileID: "P", ViewpointGroupID: "G", Type: schema.LeaderRelation, CreatedAt: day("2024-01-04"),
	})
	engine := newTestEngine(store)

	result, err := engine.NetworkReach(context.Background(), "G")
	require.NoError(t, err)
	require.Len(t, result.NetworkLeaders, 2)
	for _, leader := range result.NetworkLeaders {
		assert.NotEqual(t, "G", leader.ViewpointGroupID)
	}
}

func TestNetworkReachNoLeadersIsEmpty(t *testing.T) {
	engine := newTestEngine(threeSupporterStore())

	result, err := engine.NetworkReach(context.Background(), "G")
	require.NoError(t, err)
	assert.Empty(t, result.NetworkLeaders)
	assert.Zero(t, result.TotalDownstreamReach)
}

func TestNetworkReachDuplicateLeaderRelations(t *testing.T) {
	store := networkStore()
	// A second supporter of G who also leads H: two records, reach counted twice.
	store.Memberships = append(store.Memberships,
		schema.MembershipRelation{ID: "rq", ProfileID: "Q", ViewpointGroupID: "G", Type: schema.SupporterRelation, CreatedAt: day("2024-01-05")},
		schema.MembershipRelation{ID: "lq", ProfileID: "Q", ViewpointGroupID: "H", Type: schema.LeaderRelation, CreatedAt: day("2024-01-06")},
	)
	store.Profiles = append(store.Profiles, schema.Profile{ID: "Q", PersonID: "perQ", DisplayName: titled("Quinn Cho")})
	engine := newTestEngine(store)

	result, err := engine.NetworkReach(context.Background(), "G")
	require.NoError(t, err)
	require.Len(t, result.NetworkLeaders, 3)
	assert.Equal(t, 25, result.TotalDownstreamReach, "H's 10 voters are attributed to both leaders")
}

func TestNetworkReachEmptyGroupID(t *testing.T) {
	store := networkStore()
	engine := newTestEngine(store)

	result, err := engine.NetworkReach(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, result.NetworkLeaders)
	assert.Empty(t, store.Calls)
}

func TestNetworkReachDownstreamFailureDegrades(t *testing.T) {
	store := networkStore()
	store.FailOn = map[string]error{"ProfilesByIDs": errors.New("replica lag")}
	engine := newTestEngine(store)

	result, err := engine.NetworkReach(context.Background(), "G")
	require.NoError(t, err)
	require.Len(t, result.NetworkLeaders, 2)
	for _, leader := range result.NetworkLeaders {
		assert.Zero(t, leader.DownstreamVerifiedVoters)
		assert.Nil(t, leader.DisplayName, "label lookup shares the failing fetch")
	}
	assert.Zero(t, result.TotalDownstreamReach)
}

func TestNetworkReachLeaderFetchFailure(t *testing.T) {
	store := networkStore()
	store.FailOn = map[string]error{"MembershipsForProfiles": errors.New("timeout")}
	engine := newTestEngine(store)

	result, err := engine.NetworkReach(context.Background(), "G")
	require.NoError(t, err)
	assert.Empty(t, result.NetworkLeaders)
}
