package relstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// AllGroups implements the Datastore interface.
func (s *Store) AllGroups(ctx context.Context) ([]schema.ViewpointGroup, error) {
	query := fmt.Sprintf(`SELECT id, title FROM %s`, groupsTable)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []schema.ViewpointGroup
	for rows.Next() {
		var g schema.ViewpointGroup
		var title sql.NullString
		if err := rows.Scan(&g.ID, &title); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		if title.Valid {
			g.Title = &title.String
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// GroupsByIDs implements the Datastore interface.
func (s *Store) GroupsByIDs(ctx context.Context, ids []string) ([]schema.ViewpointGroup, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(ids); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, title FROM %s WHERE id IN (%s)`, groupsTable, s.placeholders(len(ids), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups by id: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []schema.ViewpointGroup
	for rows.Next() {
		var g schema.ViewpointGroup
		var title sql.NullString
		if err := rows.Scan(&g.ID, &title); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		if title.Valid {
			g.Title = &title.String
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// SupporterGroupIDs implements the Datastore interface.
func (s *Store) SupporterGroupIDs(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT viewpoint_group_id FROM %s WHERE type = %s`,
		membershipsTable, s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, string(schema.SupporterRelation))
	if err != nil {
		return nil, fmt.Errorf("failed to query supporter group ids: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// scanMemberships drains membership relation rows.
func scanMemberships(rows *sql.Rows) ([]schema.MembershipRelation, error) {
	defer func() { _ = rows.Close() }()

	var rels []schema.MembershipRelation
	for rows.Next() {
		var rel schema.MembershipRelation
		var relType string
		var created nullTime
		if err := rows.Scan(&rel.ID, &rel.ProfileID, &rel.ViewpointGroupID, &relType, &created); err != nil {
			return nil, fmt.Errorf("failed to scan membership row: %w", err)
		}
		rel.Type = schema.RelationType(relType)
		rel.CreatedAt = created.Time
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

// MembershipsForGroup implements the Datastore interface.
func (s *Store) MembershipsForGroup(ctx context.Context, groupID string, relType schema.RelationType) ([]schema.MembershipRelation, error) {
	query := fmt.Sprintf(`SELECT id, profile_id, viewpoint_group_id, type, created_at FROM %s
		WHERE viewpoint_group_id = %s AND type = %s`,
		membershipsTable, s.placeholder(1), s.placeholder(2))
	rows, err := s.db.QueryContext(ctx, query, groupID, string(relType))
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships for group: %w", err)
	}
	return scanMemberships(rows)
}

// MembershipsForProfiles implements the Datastore interface.
func (s *Store) MembershipsForProfiles(ctx context.Context, profileIDs []string, relType schema.RelationType) ([]schema.MembershipRelation, error) {
	if len(profileIDs) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(profileIDs); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, profile_id, viewpoint_group_id, type, created_at FROM %s
		WHERE profile_id IN (%s) AND type = %s`,
		membershipsTable, s.placeholders(len(profileIDs), 0), s.placeholder(len(profileIDs)+1))
	args := append(asArgs(profileIDs), string(relType))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query memberships for profiles: %w", err)
	}
	return scanMemberships(rows)
}

// ProfilesByIDs implements the Datastore interface.
func (s *Store) ProfilesByIDs(ctx context.Context, ids []string) ([]schema.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(ids); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, person_id, display_name_long, location FROM %s WHERE id IN (%s)`,
		profilesTable, s.placeholders(len(ids), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []schema.Profile
	for rows.Next() {
		var p schema.Profile
		var personID, displayName, location sql.NullString
		if err := rows.Scan(&p.ID, &personID, &displayName, &location); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		p.PersonID = personID.String
		if displayName.Valid {
			p.DisplayName = &displayName.String
		}
		if location.Valid {
			p.Location = &location.String
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// VerifiedVerificationsForPersons implements the Datastore interface.
// The is_fully_verified gate lives here so unverified rows never even reach
// the engine.
func (s *Store) VerifiedVerificationsForPersons(ctx context.Context, personIDs []string) ([]schema.VoterVerification, error) {
	if len(personIDs) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(personIDs); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, person_id, is_fully_verified, created_at FROM %s
		WHERE person_id IN (%s) AND is_fully_verified = TRUE`,
		verificationsTable, s.placeholders(len(personIDs), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(personIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter verifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var verifications []schema.VoterVerification
	for rows.Next() {
		var v schema.VoterVerification
		var created nullTime
		if err := rows.Scan(&v.ID, &v.PersonID, &v.IsFullyVerified, &created); err != nil {
			return nil, fmt.Errorf("failed to scan voter verification row: %w", err)
		}
		v.CreatedAt = created.Time
		verifications = append(verifications, v)
	}
	return verifications, rows.Err()
}

// RegistrationsForVerifications implements the Datastore interface.
func (s *Store) RegistrationsForVerifications(ctx context.Context, verificationIDs []string) ([]schema.JurisdictionRegistration, error) {
	if len(verificationIDs) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(verificationIDs); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT voter_verification_id, jurisdiction_id FROM %s WHERE voter_verification_id IN (%s)`,
		registrationsTable, s.placeholders(len(verificationIDs), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(verificationIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jurisdiction registrations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var regs []schema.JurisdictionRegistration
	for rows.Next() {
		var r schema.JurisdictionRegistration
		if err := rows.Scan(&r.VoterVerificationID, &r.JurisdictionID); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		regs = append(regs, r)
	}
	return regs, rows.Err()
}

// JurisdictionsByIDs implements the Datastore interface.
func (s *Store) JurisdictionsByIDs(ctx context.Context, ids []string) ([]schema.Jurisdiction, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(ids); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, name, state FROM %s WHERE id IN (%s)`,
		jurisdictionsTable, s.placeholders(len(ids), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jurisdictions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var jurisdictions []schema.Jurisdiction
	for rows.Next() {
		var j schema.Jurisdiction
		var name, state sql.NullString
		if err := rows.Scan(&j.ID, &name, &state); err != nil {
			return nil, fmt.Errorf("failed to scan jurisdiction row: %w", err)
		}
		if name.Valid {
			j.Name = &name.String
		}
		if state.Valid {
			j.State = &state.String
		}
		jurisdictions = append(jurisdictions, j)
	}
	return jurisdictions, rows.Err()
}

// BallotItemsForJurisdictions implements the Datastore interface.
func (s *Store) BallotItemsForJurisdictions(ctx context.Context, jurisdictionIDs []string) ([]schema.BallotItem, error) {
	if len(jurisdictionIDs) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(jurisdictionIDs); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, election_id, jurisdiction_id FROM %s WHERE jurisdiction_id IN (%s)`,
		ballotItemsTable, s.placeholders(len(jurisdictionIDs), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(jurisdictionIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballot items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []schema.BallotItem
	for rows.Next() {
		var b schema.BallotItem
		if err := rows.Scan(&b.ID, &b.ElectionID, &b.JurisdictionID); err != nil {
			return nil, fmt.Errorf("failed to scan ballot item row: %w", err)
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

// RacesForBallotItems implements the Datastore interface.
func (s *Store) RacesForBallotItems(ctx context.Context, ballotItemIDs []string) ([]schema.Race, error) {
	if len(ballotItemIDs) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(ballotItemIDs); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, ballot_item_id, office_term_id FROM %s WHERE ballot_item_id IN (%s)`,
		racesTable, s.placeholders(len(ballotItemIDs), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(ballotItemIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query races: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var races []schema.Race
	for rows.Next() {
		var r schema.Race
		if err := rows.Scan(&r.ID, &r.BallotItemID, &r.OfficeTermID); err != nil {
			return nil, fmt.Errorf("failed to scan race row: %w", err)
		}
		races = append(races, r)
	}
	return races, rows.Err()
}

// OfficeTermsByIDs implements the Datastore interface.
func (s *Store) OfficeTermsByIDs(ctx context.Context, ids []string) ([]schema.OfficeTerm, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(ids); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, office_id FROM %s WHERE id IN (%s)`,
		officeTermsTable, s.placeholders(len(ids), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query office terms: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var terms []schema.OfficeTerm
	for rows.Next() {
		var t schema.OfficeTerm
		if err := rows.Scan(&t.ID, &t.OfficeID); err != nil {
			return nil, fmt.Errorf("failed to scan office term row: %w", err)
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// OfficesByIDs implements the Datastore interface.
func (s *Store) OfficesByIDs(ctx context.Context, ids []string) ([]schema.Office, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(ids); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, name FROM %s WHERE id IN (%s)`,
		officesTable, s.placeholders(len(ids), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var offices []schema.Office
	for rows.Next() {
		var o schema.Office
		var name sql.NullString
		if err := rows.Scan(&o.ID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan office row: %w", err)
		}
		if name.Valid {
			o.Name = &name.String
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

// ElectionsByIDs implements the Datastore interface.
func (s *Store) ElectionsByIDs(ctx context.Context, ids []string) ([]schema.Election, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := s.checkKeyCount(ids); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id, name, poll_date FROM %s WHERE id IN (%s)`,
		electionsTable, s.placeholders(len(ids), 0))
	rows, err := s.db.QueryContext(ctx, query, asArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query elections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var elections []schema.Election
	for rows.Next() {
		var el schema.Election
		var name sql.NullString
		var pollDate nullTime
		if err := rows.Scan(&el.ID, &name, &pollDate); err != nil {
			return nil, fmt.Errorf("failed to scan election row: %w", err)
		}
		if name.Valid {
			el.Name = &name.String
		}
		if pollDate.Valid {
			t := pollDate.Time
			el.PollDate = &t
		}
		elections = append(elections, el)
	}
	return elections, rows.Err()
}
