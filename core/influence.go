package core

import (
	"context"
	"sort"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/core/batch"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// emptyInfluence is the terminal zero result with initialized slices so JSON
// output renders arrays, not nulls.
func emptyInfluence() schema.ElectoralInfluenceResult {
	return schema.ElectoralInfluenceResult{
		ByJurisdiction:    []schema.ElectoralInfluenceByJurisdiction{},
		ByRace:            []schema.ElectoralInfluenceByRace{},
		UpcomingElections: []schema.UpcomingElection{},
	}
}

// ElectoralInfluence joins a group's verified voters to their registered
// jurisdictions and onward to ballot items, races, offices and elections.
// A failure in the supporter or registration hop forces the empty result;
// failures in later hops degrade only the branches they feed.
func (e *Engine) ElectoralInfluence(ctx context.Context, groupID string) (schema.ElectoralInfluenceResult, error) {
	result := emptyInfluence()
	if groupID == "" {
		return result, nil
	}

	// --- 1. Verified voters ---
	set, err := e.resolveSupporters(ctx, groupID)
	if err != nil {
		return emptyInfluence(), recoverFetch(err, "Electoral influence supporter resolution failed")
	}
	if len(set.Verified) == 0 {
		return result, nil
	}

	// --- 2. Jurisdiction registrations ---
	verificationIDs := batch.Keys(set.Verified, func(v schema.VoterVerification) string { return v.ID })
	registrations, err := batch.Fetch(ctx, verificationIDs, e.batchSize, e.store.RegistrationsForVerifications)
	if err != nil {
		return emptyInfluence(), recoverFetch(err, "Electoral influence registration fetch failed")
	}
	if len(registrations) == 0 {
		return result, nil
	}

	// --- 3. Per-jurisdiction counts, first-discovery order ---
	// Each registration counts independently, so a voter registered in two
	// jurisdictions increments both.
	counts := make(map[string]int, len(registrations))
	jurisdictionIDs := make([]string, 0, len(registrations))
	for _, reg := range registrations {
		if _, seen := counts[reg.JurisdictionID]; !seen {
			jurisdictionIDs = append(jurisdictionIDs, reg.JurisdictionID)
		}
		counts[reg.JurisdictionID]++
	}

	jurisdictions, err := batch.Fetch(ctx, jurisdictionIDs, e.batchSize, e.store.JurisdictionsByIDs)
	if err != nil {
		if cancelErr := recoverFetch(err, "Jurisdiction name resolution failed"); cancelErr != nil {
			return emptyInfluence(), cancelErr
		}
	}
	jurisdictionIdx := batch.Index(jurisdictions, func(j schema.Jurisdiction) string { return j.ID })

	for _, id := range jurisdictionIDs {
		entry := schema.ElectoralInfluenceByJurisdiction{
			JurisdictionID: id,
			SupporterCount: counts[id],
		}
		if j, ok := jurisdictionIdx[id]; ok {
			entry.JurisdictionName = j.Name
			entry.State = j.State
		}
		result.ByJurisdiction = append(result.ByJurisdiction, entry)
	}
	sort.SliceStable(result.ByJurisdiction, func(i, j int) bool {
		return result.ByJurisdiction[i].SupporterCount > result.ByJurisdiction[j].SupporterCount
	})

	// --- 4. Ballot items and races ---
	ballotItems, err := batch.Fetch(ctx, jurisdictionIDs, e.batchSize, e.store.BallotItemsForJurisdictions)
	if err != nil {
		return result, recoverFetch(err, "Ballot item fetch failed")
	}
	if len(ballotItems) == 0 {
		return result, nil
	}
	ballotItemIDs := batch.Keys(ballotItems, func(b schema.BallotItem) string { return b.ID })
	races, err := batch.Fetch(ctx, ballotItemIDs, e.batchSize, e.store.RacesForBallotItems)
	if err != nil {
		return result, recoverFetch(err, "Race fetch failed")
	}
	if len(races) == 0 {
		return result, nil
	}

	// --- 5. Office and election lookups, each branch degrading alone ---
	officeNames := e.resolveOfficeNames(ctx, races)
	elections, err := batch.Fetch(ctx, batch.Keys(ballotItems, func(b schema.BallotItem) string { return b.ElectionID }), e.batchSize, e.store.ElectionsByIDs)
	if err != nil {
		if cancelErr := recoverFetch(err, "Election fetch failed"); cancelErr != nil {
			return emptyInfluence(), cancelErr
		}
		elections = nil
	}
	electionIdx := batch.Index(elections, func(el schema.Election) string { return el.ID })
	ballotItemIdx := batch.Index(ballotItems, func(b schema.BallotItem) string { return b.ID })

	for _, race := range races {
		item, ok := ballotItemIdx[race.BallotItemID]
		if !ok {
			continue
		}
		entry := schema.ElectoralInfluenceByRace{
			RaceID:         race.ID,
			RaceName:       officeNames[race.ID],
			JurisdictionID: item.JurisdictionID,
			ElectionID:     item.ElectionID,
			SupporterCount: counts[item.JurisdictionID],
		}
		if j, ok := jurisdictionIdx[item.JurisdictionID]; ok {
			entry.JurisdictionName = j.Name
		}
		if el, ok := electionIdx[item.ElectionID]; ok {
			entry.ElectionName = el.Name
			if el.PollDate != nil {
				formatted := el.PollDate.UTC().Format(schema.DayFormat)
				entry.PollDate = &formatted
			}
		}
		result.ByRace = append(result.ByRace, entry)
	}
	sort.SliceStable(result.ByRace, func(i, j int) bool {
		return result.ByRace[i].SupporterCount > result.ByRace[j].SupporterCount
	})

	// --- 6. Upcoming election rollups ---
	result.UpcomingElections = e.buildUpcomingElections(result.ByRace, electionIdx)
	return result, nil
}

// resolveOfficeNames maps race IDs to office names through office terms.
// Any failure along the way leaves names nil without touching counts.
func (e *Engine) resolveOfficeNames(ctx context.Context, races []schema.Race) map[string]*string {
	names := make(map[string]*string, len(races))

	termIDs := batch.Keys(races, func(r schema.Race) string { return r.OfficeTermID })
	terms, err := batch.Fetch(ctx, termIDs, e.batchSize, e.store.OfficeTermsByIDs)
	if err != nil {
		// Cancellation resurfaces through the election hop that follows.
		_ = recoverFetch(err, "Office term fetch failed")
		return names
	}
	officeIDs := batch.Keys(terms, func(t schema.OfficeTerm) string { return t.OfficeID })
	offices, err := batch.Fetch(ctx, officeIDs, e.batchSize, e.store.OfficesByIDs)
	if err != nil {
		_ = recoverFetch(err, "Office fetch failed")
		return names
	}

	termIdx := batch.Index(terms, func(t schema.OfficeTerm) string { return t.ID })
	officeIdx := batch.Index(offices, func(o schema.Office) string { return o.ID })
	for _, race := range races {
		term, ok := termIdx[race.OfficeTermID]
		if !ok {
			continue
		}
		if office, ok := officeIdx[term.OfficeID]; ok {
			names[race.ID] = office.Name
		}
	}
	return names
}

// buildUpcomingElections groups byRace entries under elections whose poll
// date is today or later, sorted by poll date ascending. Elections without
// a poll date never qualify as upcoming.
func (e *Engine) buildUpcomingElections(byRace []schema.ElectoralInfluenceByRace, electionIdx map[string]schema.Election) []schema.UpcomingElection {
	today := e.now().UTC().Truncate(24 * time.Hour)

	order := make([]string, 0)
	grouped := make(map[string]*schema.UpcomingElection)
	for _, entry := range byRace {
		el, ok := electionIdx[entry.ElectionID]
		if !ok || el.PollDate == nil {
			continue
		}
		if el.PollDate.UTC().Truncate(24 * time.Hour).Before(today) {
			continue
		}

		rollup, ok := grouped[entry.ElectionID]
		if !ok {
			rollup = &schema.UpcomingElection{
				ElectionID:   entry.ElectionID,
				ElectionName: entry.ElectionName,
				PollDate:     entry.PollDate,
			}
			grouped[entry.ElectionID] = rollup
			order = append(order, entry.ElectionID)
		}
		rollup.Races = append(rollup.Races, schema.UpcomingElectionRace{
			RaceID:         entry.RaceID,
			SupporterCount: entry.SupporterCount,
		})
		rollup.TotalSupporters += entry.SupporterCount
	}

	upcoming := make([]schema.UpcomingElection, 0, len(order))
	for _, id := range order {
		upcoming = append(upcoming, *grouped[id])
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		left, right := upcoming[i].PollDate, upcoming[j].PollDate
		if left == nil || right == nil {
			return right == nil
		}
		return *left < *right
	})
	return upcoming
}
