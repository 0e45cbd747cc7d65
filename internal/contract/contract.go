// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"errors"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// ErrUnsupported marks an operation a provider does not implement. The
// dispatcher falls back to the relational provider when it sees this.
var ErrUnsupported = errors.New("operation not supported by this backend")

// Datastore defines the read-only operations the metric engine needs from
// the relational snapshot. Every *ByIDs/*For* method takes an ID list whose
// length must not exceed MaxKeysPerFetch; the engine chunks larger key sets
// through the batch primitive before calling in.
type Datastore interface {
	// --- Limits ---

	// MaxKeysPerFetch returns the largest IN-list the store accepts per query.
	MaxKeysPerFetch() int

	// --- Viewpoint groups ---

	// AllGroups returns every viewpoint group row.
	AllGroups(ctx context.Context) ([]schema.ViewpointGroup, error)

	// GroupsByIDs resolves group titles for a bounded ID list.
	GroupsByIDs(ctx context.Context, ids []string) ([]schema.ViewpointGroup, error)

	// SupporterGroupIDs returns the distinct group IDs that have at least
	// one supporter relation.
	SupporterGroupIDs(ctx context.Context) ([]string, error)

	// --- Membership relations ---

	// MembershipsForGroup returns all relations of the given type for one group.
	MembershipsForGroup(ctx context.Context, groupID string, relType schema.RelationType) ([]schema.MembershipRelation, error)

	// MembershipsForProfiles returns all relations of the given type held by
	// a bounded list of profiles.
	MembershipsForProfiles(ctx context.Context, profileIDs []string, relType schema.RelationType) ([]schema.MembershipRelation, error)

	// --- Identity chain ---

	// ProfilesByIDs fetches profile rows for a bounded ID list.
	ProfilesByIDs(ctx context.Context, ids []string) ([]schema.Profile, error)

	// VerifiedVerificationsForPersons fetches fully-verified voter
	// verifications for a bounded person ID list. Unverified rows are
	// filtered at the store, never in the engine.
	VerifiedVerificationsForPersons(ctx context.Context, personIDs []string) ([]schema.VoterVerification, error)

	// --- Electoral chain ---

	// RegistrationsForVerifications fetches jurisdiction registrations for a
	// bounded voter-verification ID list.
	RegistrationsForVerifications(ctx context.Context, verificationIDs []string) ([]schema.JurisdictionRegistration, error)

	// JurisdictionsByIDs fetches jurisdiction rows for a bounded ID list.
	JurisdictionsByIDs(ctx context.Context, ids []string) ([]schema.Jurisdiction, error)

	// BallotItemsForJurisdictions fetches ballot items in a bounded
	// jurisdiction ID list.
	BallotItemsForJurisdictions(ctx context.Context, jurisdictionIDs []string) ([]schema.BallotItem, error)

	// RacesForBallotItems fetches races on a bounded ballot item ID list.
	RacesForBallotItems(ctx context.Context, ballotItemIDs []string) ([]schema.Race, error)

	// OfficeTermsByIDs fetches office terms for a bounded ID list.
	OfficeTermsByIDs(ctx context.Context, ids []string) ([]schema.OfficeTerm, error)

	// OfficesByIDs fetches offices for a bounded ID list.
	OfficesByIDs(ctx context.Context, ids []string) ([]schema.Office, error)

	// ElectionsByIDs fetches elections for a bounded ID list.
	ElectionsByIDs(ctx context.Context, ids []string) ([]schema.Election, error)

	// Close closes the underlying connection.
	Close() error
}

// MetricsProvider computes the four dashboard metrics for one backend.
// Every metric method is total over its zero-valued result: internal fetch
// failures degrade to empty results and a warning log. The only error a
// metric returns is context cancellation, so callers can tell an abandoned
// call from a legitimately empty one.
type MetricsProvider interface {
	// Backend identifies the data source this provider reads from.
	Backend() schema.DataBackend

	// SwayScore counts verified voters among a group's supporters.
	SwayScore(ctx context.Context, groupID string) (schema.SwayScoreResult, error)

	// ElectoralInfluence breaks verified voters down by jurisdiction, race
	// and upcoming election.
	ElectoralInfluence(ctx context.Context, groupID string) (schema.ElectoralInfluenceResult, error)

	// GrowthOverTime builds the cumulative verified-voter series.
	GrowthOverTime(ctx context.Context, groupID string) (schema.GrowthOverTimeResult, error)

	// NetworkReach finds supporters who lead other groups and counts their
	// downstream verified voters.
	NetworkReach(ctx context.Context, groupID string) (schema.NetworkReachResult, error)

	// GroupsWithSupporters lists groups that have at least one supporter.
	// Providers without a listing surface return ErrUnsupported.
	GroupsWithSupporters(ctx context.Context) ([]schema.GroupSummary, error)
}
