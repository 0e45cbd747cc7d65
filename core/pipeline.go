package core

import (
	"context"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/core/batch"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// supporterSet is the output of the supporter resolution pipeline: the
// verified voters behind a group's supporters plus the raw counts every
// metric reports alongside them.
type supporterSet struct {
	// TotalSupporters is the raw supporter relation count, pre-verification.
	TotalSupporters int

	// Verified holds the fully-verified voter verification rows.
	Verified []schema.VoterVerification

	// RelCreatedByPerson maps a person ID to the earliest supporter relation
	// timestamp that reached them. Growth buckets need it alongside the
	// verification timestamp.
	RelCreatedByPerson map[string]time.Time
}

// resolveSupporters walks group -> supporter relations -> profiles ->
// persons -> fully-verified voter verifications. Every hop after the first
// is chunked through the batch primitive. Errors propagate raw; metric
// entry points decide how to degrade.
func (e *Engine) resolveSupporters(ctx context.Context, groupID string) (*supporterSet, error) {
	// --- 1. Supporter relations for the group ---
	rels, err := e.store.MembershipsForGroup(ctx, groupID, schema.SupporterRelation)
	if err != nil {
		return nil, err
	}
	set := &supporterSet{TotalSupporters: len(rels)}
	if len(rels) == 0 {
		return set, nil
	}

	// --- 2. Profiles, dropping rows without a person ---
	profileIDs := batch.Keys(rels, func(r schema.MembershipRelation) string { return r.ProfileID })
	profiles, err := batch.Fetch(ctx, profileIDs, e.batchSize, e.store.ProfilesByIDs)
	if err != nil {
		return nil, err
	}

	relByProfile := batch.Index(rels, func(r schema.MembershipRelation) string { return r.ProfileID })
	set.RelCreatedByPerson = make(map[string]time.Time, len(profiles))
	personIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.PersonID == "" {
			continue
		}
		personIDs = append(personIDs, p.PersonID)
		created := relByProfile[p.ID].CreatedAt
		if prev, ok := set.RelCreatedByPerson[p.PersonID]; !ok || (!created.IsZero() && created.Before(prev)) {
			set.RelCreatedByPerson[p.PersonID] = created
		}
	}

	// --- 3. Fully-verified voter verifications ---
	set.Verified, err = batch.Fetch(ctx, batch.Dedupe(personIDs), e.batchSize, e.store.VerifiedVerificationsForPersons)
	if err != nil {
		return nil, err
	}
	return set, nil
}
