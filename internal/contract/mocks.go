package contract

import (
	"context"
	"fmt"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/mock"
)

// MockDatastore is a mock implementation of Datastore for testing.
type MockDatastore struct {
	mock.Mock
}

var _ Datastore = &MockDatastore{} // Compile-time check

// MaxKeysPerFetch implements the Datastore interface.
func (m *MockDatastore) MaxKeysPerFetch() int {
	ret := m.Called()
	return ret.Int(0)
}

// AllGroups implements the Datastore interface.
func (m *MockDatastore) AllGroups(ctx context.Context) ([]schema.ViewpointGroup, error) {
	ret := m.Called(ctx)
	rows, _ := ret.Get(0).([]schema.ViewpointGroup)
	return rows, ret.Error(1)
}

// GroupsByIDs implements the Datastore interface.
func (m *MockDatastore) GroupsByIDs(ctx context.Context, ids []string) ([]schema.ViewpointGroup, error) {
	ret := m.Called(ctx, ids)
	rows, _ := ret.Get(0).([]schema.ViewpointGroup)
	return rows, ret.Error(1)
}

// SupporterGroupIDs implements the Datastore interface.
func (m *MockDatastore) SupporterGroupIDs(ctx context.Context) ([]string, error) {
	ret := m.Called(ctx)
	ids, _ := ret.Get(0).([]string)
	return ids, ret.Error(1)
}

// MembershipsForGroup implements the Datastore interface.
func (m *MockDatastore) MembershipsForGroup(ctx context.Context, groupID string, relType schema.RelationType) ([]schema.MembershipRelation, error) {
	ret := m.Called(ctx, groupID, relType)
	rows, _ := ret.Get(0).([]schema.MembershipRelation)
	return rows, ret.Error(1)
}

// MembershipsForProfiles implements the Datastore interface.
func (m *MockDatastore) MembershipsForProfiles(ctx context.Context, profileIDs []string, relType schema.RelationType) ([]schema.MembershipRelation, error) {
	ret := m.Called(ctx, profileIDs, relType)
	rows, _ := ret.Get(0).([]schema.MembershipRelation)
	return rows, ret.Error(1)
}

// ProfilesByIDs implements the Datastore interface.
func (m *MockDatastore) ProfilesByIDs(ctx context.Context, ids []string) ([]schema.Profile, error) {
	ret := m.Called(ctx, ids)
	rows, _ := ret.Get(0).([]schema.Profile)
	return rows, ret.Error(1)
}

// VerifiedVerificationsForPersons implements the Datastore interface.
func (m *MockDatastore) VerifiedVerificationsForPersons(ctx context.Context, personIDs []string) ([]schema.VoterVerification, error) {
	ret := m.Called(ctx, personIDs)
	rows, _ := ret.Get(0).([]schema.VoterVerification)
	return rows, ret.Error(1)
}

// RegistrationsForVerifications implements the Datastore interface.
func (m *MockDatastore) RegistrationsForVerifications(ctx context.Context, verificationIDs []string) ([]schema.JurisdictionRegistration, error) {
	ret := m.Called(ctx, verificationIDs)
	rows, _ := ret.Get(0).([]schema.JurisdictionRegistration)
	return rows, ret.Error(1)
}

// JurisdictionsByIDs implements the Datastore interface.
func (m *MockDatastore) JurisdictionsByIDs(ctx context.Context, ids []string) ([]schema.Jurisdiction, error) {
	ret := m.Called(ctx, ids)
	rows, _ := ret.Get(0).([]schema.Jurisdiction)
	return rows, ret.Error(1)
}

// BallotItemsForJurisdictions implements the Datastore interface.
func (m *MockDatastore) BallotItemsForJurisdictions(ctx context.Context, jurisdictionIDs []string) ([]schema.BallotItem, error) {
	ret := m.Called(ctx, jurisdictionIDs)
	rows, _ := ret.Get(0).([]schema.BallotItem)
	return rows, ret.Error(1)
}

// RacesForBallotItems implements the Datastore interface.
func (m *MockDatastore) RacesForBallotItems(ctx context.Context, ballotItemIDs []string) ([]schema.Race, error) {
	ret := m.Called(ctx, ballotItemIDs)
	rows, _ := ret.Get(0).([]schema.Race)
	return rows, ret.Error(1)
}

// OfficeTermsByIDs implements the Datastore interface.
func (m *MockDatastore) OfficeTermsByIDs(ctx context.Context, ids []string) ([]schema.OfficeTerm, error) {
	ret := m.Called(ctx, ids)
	rows, _ := ret.Get(0).([]schema.OfficeTerm)
	return rows, ret.Error(1)
}

// OfficesByIDs implements the Datastore interface.
func (m *MockDatastore) OfficesByIDs(ctx context.Context, ids []string) ([]schema.Office, error) {
	ret := m.Called(ctx, ids)
	rows, _ := ret.Get(0).([]schema.Office)
	return rows, ret.Error(1)
}

// ElectionsByIDs implements the Datastore interface.
func (m *MockDatastore) ElectionsByIDs(ctx context.Context, ids []string) ([]schema.Election, error) {
	ret := m.Called(ctx, ids)
	rows, _ := ret.Get(0).([]schema.Election)
	return rows, ret.Error(1)
}

// Close implements the Datastore interface.
func (m *MockDatastore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}

// MockProvider is a mock implementation of MetricsProvider for testing.
type MockProvider struct {
	mock.Mock
}

var _ MetricsProvider = &MockProvider{} // Compile-time check

// Backend implements the MetricsProvider interface.
func (m *MockProvider) Backend() schema.DataBackend {
	ret := m.Called()
	backend, _ := ret.Get(0).(schema.DataBackend)
	return backend
}

// SwayScore implements the MetricsProvider interface.
func (m *MockProvider) SwayScore(ctx context.Context, groupID string) (schema.SwayScoreResult, error) {
	ret := m.Called(ctx, groupID)
	res, _ := ret.Get(0).(schema.SwayScoreResult)
	return res, ret.Error(1)
}

// ElectoralInfluence implements the MetricsProvider interface.
func (m *MockProvider) ElectoralInfluence(ctx context.Context, groupID string) (schema.ElectoralInfluenceResult, error) {
	ret := m.Called(ctx, groupID)
	res, _ := ret.Get(0).(schema.ElectoralInfluenceResult)
	return res, ret.Error(1)
}

// GrowthOverTime implements the MetricsProvider interface.
func (m *MockProvider) GrowthOverTime(ctx context.Context, groupID string) (schema.GrowthOverTimeResult, error) {
	ret := m.Called(ctx, groupID)
	res, _ := ret.Get(0).(schema.GrowthOverTimeResult)
	return res, ret.Error(1)
}

// NetworkReach implements the MetricsProvider interface.
func (m *MockProvider) NetworkReach(ctx context.Context, groupID string) (schema.NetworkReachResult, error) {
	ret := m.Called(ctx, groupID)
	res, _ := ret.Get(0).(schema.NetworkReachResult)
	return res, ret.Error(1)
}

// GroupsWithSupporters implements the MetricsProvider interface.
func (m *MockProvider) GroupsWithSupporters(ctx context.Context) ([]schema.GroupSummary, error) {
	ret := m.Called(ctx)
	groups, _ := ret.Get(0).([]schema.GroupSummary)
	return groups, ret.Error(1)
}

// MemoryDatastore is an in-memory Datastore backed by fixture rows. Engine
// tests use it instead of wiring sixteen testify expectations per join
// chain; FailOn injects an error for a single named operation.
type MemoryDatastore struct {
	MaxKeys int

	Groups        []schema.ViewpointGroup
	Memberships   []schema.MembershipRelation
	Profiles      []schema.Profile
	Verifications []schema.VoterVerification
	Registrations []schema.JurisdictionRegistration
	Jurisdictions []schema.Jurisdiction
	BallotItems   []schema.BallotItem
	Races         []schema.Race
	OfficeTerms   []schema.OfficeTerm
	Offices       []schema.Office
	Elections     []schema.Election

	// FailOn maps an operation name (e.g. "RegistrationsForVerifications")
	// to the error it should return.
	FailOn map[string]error

	// Calls counts invocations per operation name.
	Calls map[string]int
}

var _ Datastore = &MemoryDatastore{} // Compile-time check

func (m *MemoryDatastore) record(op string) error {
	if m.Calls == nil {
		m.Calls = make(map[string]int)
	}
	m.Calls[op]++
	if err, ok := m.FailOn[op]; ok {
		return err
	}
	return nil
}

func (m *MemoryDatastore) checkKeys(op string, n int) error {
	if max := m.MaxKeysPerFetch(); n > max {
		return fmt.Errorf("%s: %d keys exceeds fetch limit %d", op, n, max)
	}
	return nil
}

// MaxKeysPerFetch implements the Datastore interface.
func (m *MemoryDatastore) MaxKeysPerFetch() int {
	if m.MaxKeys <= 0 {
		return DefaultBatchSize
	}
	return m.MaxKeys
}

// AllGroups implements the Datastore interface.
func (m *MemoryDatastore) AllGroups(_ context.Context) ([]schema.ViewpointGroup, error) {
	if err := m.record("AllGroups"); err != nil {
		return nil, err
	}
	return m.Groups, nil
}

// GroupsByIDs implements the Datastore interface.
func (m *MemoryDatastore) GroupsByIDs(_ context.Context, ids []string) ([]schema.ViewpointGroup, error) {
	if err := m.record("GroupsByIDs"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("GroupsByIDs", len(ids)); err != nil {
		return nil, err
	}
	idSet := toSet(ids)
	var out []schema.ViewpointGroup
	for _, g := range m.Groups {
		if _, ok := idSet[g.ID]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// SupporterGroupIDs implements the Datastore interface.
func (m *MemoryDatastore) SupporterGroupIDs(_ context.Context) ([]string, error) {
	if err := m.record("SupporterGroupIDs"); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, rel := range m.Memberships {
		if rel.Type == schema.SupporterRelation && !seen[rel.ViewpointGroupID] {
			seen[rel.ViewpointGroupID] = true
			out = append(out, rel.ViewpointGroupID)
		}
	}
	return out, nil
}

// MembershipsForGroup implements the Datastore interface.
func (m *MemoryDatastore) MembershipsForGroup(_ context.Context, groupID string, relType schema.RelationType) ([]schema.MembershipRelation, error) {
	if err := m.record("MembershipsForGroup"); err != nil {
		return nil, err
	}
	var out []schema.MembershipRelation
	for _, rel := range m.Memberships {
		if rel.ViewpointGroupID == groupID && rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out, nil
}

// MembershipsForProfiles implements the Datastore interface.
func (m *MemoryDatastore) MembershipsForProfiles(_ context.Context, profileIDs []string, relType schema.RelationType) ([]schema.MembershipRelation, error) {
	if err := m.record("MembershipsForProfiles"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("MembershipsForProfiles", len(profileIDs)); err != nil {
		return nil, err
	}
	idSet := toSet(profileIDs)
	var out []schema.MembershipRelation
	for _, rel := range m.Memberships {
		if _, ok := idSet[rel.ProfileID]; ok && rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out, nil
}

// ProfilesByIDs implements the Datastore interface.
func (m *MemoryDatastore) ProfilesByIDs(_ context.Context, ids []string) ([]schema.Profile, error) {
	if err := m.record("ProfilesByIDs"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("ProfilesByIDs", len(ids)); err != nil {
		return nil, err
	}
	idSet := toSet(ids)
	var out []schema.Profile
	for _, p := range m.Profiles {
		if _, ok := idSet[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// VerifiedVerificationsForPersons implements the Datastore interface.
func (m *MemoryDatastore) VerifiedVerificationsForPersons(_ context.Context, personIDs []string) ([]schema.VoterVerification, error) {
	if err := m.record("VerifiedVerificationsForPersons"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("VerifiedVerificationsForPersons", len(personIDs)); err != nil {
		return nil, err
	}
	idSet := toSet(personIDs)
	var out []schema.VoterVerification
	for _, v := range m.Verifications {
		if _, ok := idSet[v.PersonID]; ok && v.IsFullyVerified {
			out = append(out, v)
		}
	}
	return out, nil
}

// RegistrationsForVerifications implements the Datastore interface.
func (m *MemoryDatastore) RegistrationsForVerifications(_ context.Context, verificationIDs []string) ([]schema.JurisdictionRegistration, error) {
	if err := m.record("RegistrationsForVerifications"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("RegistrationsForVerifications", len(verificationIDs)); err != nil {
		return nil, err
	}
	idSet := toSet(verificationIDs)
	var out []schema.JurisdictionRegistration
	for _, r := range m.Registrations {
		if _, ok := idSet[r.VoterVerificationID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// JurisdictionsByIDs implements the Datastore interface.
func (m *MemoryDatastore) JurisdictionsByIDs(_ context.Context, ids []string) ([]schema.Jurisdiction, error) {
	if err := m.record("JurisdictionsByIDs"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("JurisdictionsByIDs", len(ids)); err != nil {
		return nil, err
	}
	idSet := toSet(ids)
	var out []schema.Jurisdiction
	for _, j := range m.Jurisdictions {
		if _, ok := idSet[j.ID]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

// BallotItemsForJurisdictions implements the Datastore interface.
func (m *MemoryDatastore) BallotItemsForJurisdictions(_ context.Context, jurisdictionIDs []string) ([]schema.BallotItem, error) {
	if err := m.record("BallotItemsForJurisdictions"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("BallotItemsForJurisdictions", len(jurisdictionIDs)); err != nil {
		return nil, err
	}
	idSet := toSet(jurisdictionIDs)
	var out []schema.BallotItem
	for _, b := range m.BallotItems {
		if _, ok := idSet[b.JurisdictionID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

// RacesForBallotItems implements the Datastore interface.
func (m *MemoryDatastore) RacesForBallotItems(_ context.Context, ballotItemIDs []string) ([]schema.Race, error) {
	if err := m.record("RacesForBallotItems"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("RacesForBallotItems", len(ballotItemIDs)); err != nil {
		return nil, err
	}
	idSet := toSet(ballotItemIDs)
	var out []schema.Race
	for _, r := range m.Races {
		if _, ok := idSet[r.BallotItemID]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// OfficeTermsByIDs implements the Datastore interface.
func (m *MemoryDatastore) OfficeTermsByIDs(_ context.Context, ids []string) ([]schema.OfficeTerm, error) {
	if err := m.record("OfficeTermsByIDs"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("OfficeTermsByIDs", len(ids)); err != nil {
		return nil, err
	}
	idSet := toSet(ids)
	var out []schema.OfficeTerm
	for _, t := range m.OfficeTerms {
		if _, ok := idSet[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// OfficesByIDs implements the Datastore interface.
func (m *MemoryDatastore) OfficesByIDs(_ context.Context, ids []string) ([]schema.Office, error) {
	if err := m.record("OfficesByIDs"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("OfficesByIDs", len(ids)); err != nil {
		return nil, err
	}
	idSet := toSet(ids)
	var out []schema.Office
	for _, o := range m.Offices {
		if _, ok := idSet[o.ID]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// ElectionsByIDs implements the Datastore interface.
func (m *MemoryDatastore) ElectionsByIDs(_ context.Context, ids []string) ([]schema.Election, error) {
	if err := m.record("ElectionsByIDs"); err != nil {
		return nil, err
	}
	if err := m.checkKeys("ElectionsByIDs", len(ids)); err != nil {
		return nil, err
	}
	idSet := toSet(ids)
	var out []schema.Election
	for _, e := range m.Elections {
		if _, ok := idSet[e.ID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// Close implements the Datastore interface.
func (m *MemoryDatastore) Close() error {
	return m.record("Close")
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
