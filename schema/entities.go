package schema

import "time"

// Entity rows mirror the normalized snapshot tables. The engine reads them
// through the Datastore contract and never writes them back.

// ViewpointGroup represents a leader's following.
type ViewpointGroup struct {
	ID    string
	Title *string
}

// MembershipRelation links a profile to a viewpoint group with a relation
// type (supporter, leader, administrator, bookmarker, default).
type MembershipRelation struct {
	ID               string
	ProfileID        string
	ViewpointGroupID string
	Type             RelationType
	CreatedAt        time.Time
}

// Profile is a public identity owned by at most one person. Location is the
// free-text field the graph backend derives jurisdictions from.
type Profile struct {
	ID          string
	PersonID    string
	DisplayName *string
	Location    *string
}

// VoterVerification is a person's voter-verification record. Only rows with
// IsFullyVerified true count toward any metric.
type VoterVerification struct {
	ID              string
	PersonID        string
	IsFullyVerified bool
	CreatedAt       time.Time
}

// JurisdictionRegistration links a voter verification to a jurisdiction the
// voter is registered in.
type JurisdictionRegistration struct {
	VoterVerificationID string
	JurisdictionID      string
}

// Jurisdiction is a geographic voting area.
type Jurisdiction struct {
	ID    string
	Name  *string
	State *string
}

// BallotItem is a votable item scoped to a jurisdiction and election.
type BallotItem struct {
	ID             string
	ElectionID     string
	JurisdictionID string
}

// Race links a ballot item to an office term.
type Race struct {
	ID           string
	BallotItemID string
	OfficeTermID string
}

// OfficeTerm links a race to an office.
type OfficeTerm struct {
	ID       string
	OfficeID string
}

// Office is the named office a race is for.
type Office struct {
	ID   string
	Name *string
}

// Election has a name and a poll date; a nil poll date excludes the election
// from the upcoming set.
type Election struct {
	ID       string
	Name     *string
	PollDate *time.Time
}

// GrowthEvent carries the two candidate acquisition timestamps for one
// verified voter. The earlier non-zero timestamp wins.
type GrowthEvent struct {
	RelationCreatedAt     time.Time
	VerificationCreatedAt time.Time
}
