package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// electoralStore builds a fixture with one verified voter registered in two
// jurisdictions, plus a past and a future election sharing a jurisdiction.
func electoralStore() *contract.MemoryDatastore {
	past := day("2026-06-14")
	future := day("2026-06-16")
	return &contract.MemoryDatastore{
		Memberships: []schema.MembershipRelation{
			{ID: "r1", ProfileID: "p1", ViewpointGroupID: "G", Type: schema.SupporterRelation, CreatedAt: day("2024-01-01")},
		},
		Profiles: []schema.Profile{
			{ID: "p1", PersonID: "per1"},
		},
		Verifications: []schema.VoterVerification{
			{ID: "v1", PersonID: "per1", IsFullyVerified: true, CreatedAt: day("2024-01-05")},
		},
		Registrations: []schema.JurisdictionRegistration{
			{VoterVerificationID: "v1", JurisdictionID: "j1"},
			{VoterVerificationID: "v1", JurisdictionID: "j2"},
		},
		Jurisdictions: []schema.Jurisdiction{
			{ID: "j1", Name: titled("Travis County"), State: titled("TX")},
			{ID: "j2", Name: titled("Hays County"), State: titled("TX")},
		},
		BallotItems: []schema.BallotItem{
			{ID: "b1", ElectionID: "e1", JurisdictionID: "j1"},
			{ID: "b2", ElectionID: "e2", JurisdictionID: "j1"},
		},
		Races: []schema.Race{
			{ID: "race1", BallotItemID: "b1", OfficeTermID: "ot1"},
			{ID: "race2", BallotItemID: "b2", OfficeTermID: "ot2"},
		},
		OfficeTerms: []schema.OfficeTerm{
			{ID: "ot1", OfficeID: "off1"},
			{ID: "ot2", OfficeID: "off2"},
		},
		Offices: []schema.Office{
			{ID: "off1", Name: titled("County Clerk")},
			{ID: "off2", Name: titled("Sheriff")},
		},
		Elections: []schema.Election{
			{ID: "e1", Name: titled("Past Primary"), PollDate: &past},
			{ID: "e2", Name: titled("General Election"), PollDate: &future},
		},
	}
}

// newElectoralEngine pins the clock between the two poll dates.
func newElectoralEngine(store contract.Datastore) *Engine {
	engine := newTestEngine(store)
	engine.now = func() time.Time { return day("2026-06-15") }
	return engine
}

func TestElectoralInfluenceMultiJurisdictionVoter(t *testing.T) {
	engine := newElectoralEngine(electoralStore())

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)

	// One voter in two jurisdictions contributes two increments.
	require.Len(t, result.ByJurisdiction, 2)
	total := 0
	for _, entry := range result.ByJurisdiction {
		assert.Equal(t, 1, entry.SupporterCount)
		require.NotNil(t, entry.State)
		assert.Equal(t, "TX", *entry.State)
		total += entry.SupporterCount
	}
	assert.Equal(t, 2, total)
}

func TestElectoralInfluenceRaceAttribution(t *testing.T) {
	engine := newElectoralEngine(electoralStore())

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)

	require.Len(t, result.ByRace, 2)
	for _, race := range result.ByRace {
		assert.Equal(t, 1, race.SupporterCount, "races inherit the jurisdiction count")
		assert.Equal(t, "j1", race.JurisdictionID)
		require.NotNil(t, race.RaceName)
	}

	names := []string{*result.ByRace[0].RaceName, *result.ByRace[1].RaceName}
	assert.ElementsMatch(t, []string{"County Clerk", "Sheriff"}, names)
}

func TestElectoralInfluenceUpcomingFiltersPastElections(t *testing.T) {
	engine := newElectoralEngine(electoralStore())

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)

	require.Len(t, result.UpcomingElections, 1, "yesterday's election is excluded")
	upcoming := result.UpcomingElections[0]
	assert.Equal(t, "e2", upcoming.ElectionID)
	require.NotNil(t, upcoming.PollDate)
	assert.Equal(t, "2026-06-16", *upcoming.PollDate)
	assert.Equal(t, 1, upcoming.TotalSupporters)
	require.Len(t, upcoming.Races, 1)
	assert.Equal(t, "race2", upcoming.Races[0].RaceID)
}

func TestElectoralInfluenceSameDayElectionIsUpcoming(t *testing.T) {
	store := electoralStore()
	today := day("2026-06-15")
	store.Elections[0].PollDate = &today
	engine := newElectoralEngine(store)

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	assert.Len(t, result.UpcomingElections, 2, "poll date equal to today still counts as upcoming")
}

func TestElectoralInfluenceNilPollDateNeverUpcoming(t *testing.T) {
	store := electoralStore()
	store.Elections[1].PollDate = nil
	engine := newElectoralEngine(store)

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	assert.Empty(t, result.UpcomingElections)
}

func TestElectoralInfluenceEmptyGroup(t *testing.T) {
	engine := newElectoralEngine(&contract.MemoryDatastore{})

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	assert.Empty(t, result.ByJurisdiction)
	assert.Empty(t, result.ByRace)
	assert.Empty(t, result.UpcomingElections)
}

func TestElectoralInfluenceRegistrationFailureIsTerminal(t *testing.T) {
	store := electoralStore()
	store.FailOn = map[string]error{"RegistrationsForVerifications": errors.New("timeout")}
	engine := newElectoralEngine(store)

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	assert.Empty(t, result.ByJurisdiction)
	assert.Empty(t, result.ByRace)
	assert.Empty(t, result.UpcomingElections)
}

func TestElectoralInfluenceOfficeFailureDegradesNamesOnly(t *testing.T) {
	store := electoralStore()
	store.FailOn = map[string]error{"OfficesByIDs": errors.New("timeout")}
	engine := newElectoralEngine(store)

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	require.Len(t, result.ByRace, 2)
	for _, race := range result.ByRace {
		assert.Nil(t, race.RaceName, "race names degrade to null")
		assert.Equal(t, 1, race.SupporterCount, "counts survive the office failure")
	}
}

func TestElectoralInfluenceElectionFailureDegradesBranch(t *testing.T) {
	store := electoralStore()
	store.FailOn = map[string]error{"ElectionsByIDs": errors.New("timeout")}
	engine := newElectoralEngine(store)

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	assert.Len(t, result.ByJurisdiction, 2, "earlier branches stay computed")
	require.Len(t, result.ByRace, 2)
	for _, race := range result.ByRace {
		assert.Nil(t, race.ElectionName)
		assert.Nil(t, race.PollDate)
	}
	assert.Empty(t, result.UpcomingElections, "no poll dates means no upcoming set")
}

func TestElectoralInfluenceBallotItemFailureKeepsJurisdictions(t *testing.T) {
	store := electoralStore()
	store.FailOn = map[string]error{"BallotItemsForJurisdictions": errors.New("timeout")}
	engine := newElectoralEngine(store)

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	assert.Len(t, result.ByJurisdiction, 2)
	assert.Empty(t, result.ByRace)
	assert.Empty(t, result.UpcomingElections)
}

func TestElectoralInfluenceSortsByCountDescending(t *testing.T) {
	store := electoralStore()
	// A second verified voter registered only in j2 tips the balance.
	store.Memberships = append(store.Memberships, schema.MembershipRelation{
		ID: "r2", ProfileID: "p2", ViewpointGroupID: "G", Type: schema.SupporterRelation, CreatedAt: day("2024-02-01"),
	})
	store.Profiles = append(store.Profiles, schema.Profile{ID: "p2", PersonID: "per2"})
	store.Verifications = append(store.Verifications, schema.VoterVerification{
		ID: "v2", PersonID: "per2", IsFullyVerified: true, CreatedAt: day("2024-02-05"),
	})
	store.Registrations = append(store.Registrations, schema.JurisdictionRegistration{
		VoterVerificationID: "v2", JurisdictionID: "j2",
	})
	engine := newElectoralEngine(store)

	result, err := engine.ElectoralInfluence(context.Background(), "G")
	require.NoError(t, err)
	require.Len(t, result.ByJurisdiction, 2)
	assert.Equal(t, "j2", result.ByJurisdiction[0].JurisdictionID)
	assert.Equal(t, 2, result.ByJurisdiction[0].SupporterCount)
	assert.Equal(t, 1, result.ByJurisdiction[1].SupporterCount)
}
