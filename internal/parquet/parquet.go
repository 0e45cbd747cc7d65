// Package parquet provides row structures and functions for exporting sway
// metric results to Parquet using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/parquet-go/parquet-go"
)

// SwayScoreRow is one group's verified-supporter rollup.
type SwayScoreRow struct {
	// GroupID is the viewpoint group's unique identifier.
	GroupID string `parquet:"group_id,snappy"`

	// VerifiedVoters is the fully-verified supporter count.
	VerifiedVoters int32 `parquet:"verified_voters,snappy"`

	// TotalSupporters is the raw supporter relation count.
	TotalSupporters int32 `parquet:"total_supporters,snappy"`

	// ReachLabel is the plain reach tier for the verified count.
	ReachLabel string `parquet:"reach_label,snappy"`
}

// JurisdictionRow is one jurisdiction's share of a group's verified voters.
type JurisdictionRow struct {
	GroupID string `parquet:"group_id,snappy"`

	JurisdictionID string `parquet:"jurisdiction_id,snappy"`

	JurisdictionName *string `parquet:"jurisdiction_name,optional,snappy"`

	State *string `parquet:"state,optional,snappy"`

	SupporterCount int32 `parquet:"supporter_count,snappy"`
}

// RaceRow is one race's supporter attribution with its election context.
type RaceRow struct {
	GroupID string `parquet:"group_id,snappy"`

	RaceID string `parquet:"race_id,snappy"`

	RaceName *string `parquet:"race_name,optional,snappy"`

	JurisdictionID string `parquet:"jurisdiction_id,snappy"`

	ElectionID string `parquet:"election_id,snappy"`

	ElectionName *string `parquet:"election_name,optional,snappy"`

	PollDate *string `parquet:"poll_date,optional,snappy"`

	SupporterCount int32 `parquet:"supporter_count,snappy"`
}

// GrowthPointRow is one day of a group's cumulative verified-voter series.
type GrowthPointRow struct {
	GroupID string `parquet:"group_id,snappy"`

	Date string `parquet:"date,snappy"`

	CumulativeCount int32 `parquet:"cumulative_count,snappy"`

	PeriodChange *int32 `parquet:"period_change,optional,snappy"`
}

// NetworkLeaderRow is one supporter-leads-group edge with downstream counts.
type NetworkLeaderRow struct {
	GroupID string `parquet:"group_id,snappy"`

	ProfileID string `parquet:"profile_id,snappy"`

	DisplayName *string `parquet:"display_name,optional,snappy"`

	DownstreamGroupID string `parquet:"downstream_group_id,snappy"`

	DownstreamGroupTitle *string `parquet:"downstream_group_title,optional,snappy"`

	DownstreamVerifiedVoters int32 `parquet:"downstream_verified_voters,snappy"`

	SupporterCount int32 `parquet:"supporter_count,snappy"`
}

// DashboardRow is a flat one-row summary of all four metrics for a group.
type DashboardRow struct {
	GroupID string `parquet:"group_id,snappy"`

	VerifiedVoters int32 `parquet:"verified_voters,snappy"`

	TotalSupporters int32 `parquet:"total_supporters,snappy"`

	Jurisdictions int32 `parquet:"jurisdictions,snappy"`

	Races int32 `parquet:"races,snappy"`

	UpcomingElections int32 `parquet:"upcoming_elections,snappy"`

	TotalGrowth int32 `parquet:"total_growth,snappy"`

	GrowthRate *float64 `parquet:"growth_rate,optional,snappy"`

	NetworkLeaders int32 `parquet:"network_leaders,snappy"`

	TotalDownstreamReach int32 `parquet:"total_downstream_reach,snappy"`
}

// GroupRow is a viewpoint group listing entry.
type GroupRow struct {
	ID string `parquet:"id,snappy"`

	Title string `parquet:"title,snappy"`
}

// WriteRows writes a slice of row structs to w using struct schema inference.
// An empty slice still produces a valid file with the schema and no rows.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// ConvertSwayScore converts a sway score result to Parquet rows.
func ConvertSwayScore(groupID string, result schema.SwayScoreResult) []SwayScoreRow {
	return []SwayScoreRow{{
		GroupID:         groupID,
		VerifiedVoters:  int32(result.Count),
		TotalSupporters: int32(result.TotalSupporters),
		ReachLabel:      contract.GetPlainLabel(result.Count),
	}}
}

// ConvertJurisdictions converts the jurisdiction breakdown to Parquet rows.
func ConvertJurisdictions(groupID string, result schema.ElectoralInfluenceResult) []JurisdictionRow {
	rows := make([]JurisdictionRow, len(result.ByJurisdiction))
	for i, j := range result.ByJurisdiction {
		rows[i] = JurisdictionRow{
			GroupID:          groupID,
			JurisdictionID:   j.JurisdictionID,
			JurisdictionName: j.JurisdictionName,
			State:            j.State,
			SupporterCount:   int32(j.SupporterCount),
		}
	}
	return rows
}

// ConvertRaces converts the race breakdown to Parquet rows.
func ConvertRaces(groupID string, result schema.ElectoralInfluenceResult) []RaceRow {
	rows := make([]RaceRow, len(result.ByRace))
	for i, r := range result.ByRace {
		rows[i] = RaceRow{
			GroupID:        groupID,
			RaceID:         r.RaceID,
			RaceName:       r.RaceName,
			JurisdictionID: r.JurisdictionID,
			ElectionID:     r.ElectionID,
			ElectionName:   r.ElectionName,
			PollDate:       r.PollDate,
			SupporterCount: int32(r.SupporterCount),
		}
	}
	return rows
}

// ConvertGrowthPoints converts the growth series to Parquet rows.
func ConvertGrowthPoints(groupID string, result schema.GrowthOverTimeResult) []GrowthPointRow {
	rows := make([]GrowthPointRow, len(result.DataPoints))
	for i, p := range result.DataPoints {
		row := GrowthPointRow{
			GroupID:         groupID,
			Date:            p.Date,
			CumulativeCount: int32(p.CumulativeCount),
		}
		if p.PeriodChange != nil {
			change := int32(*p.PeriodChange)
			row.PeriodChange = &change
		}
		rows[i] = row
	}
	return rows
}

// ConvertNetworkLeaders converts the network reach edges to Parquet rows.
func ConvertNetworkLeaders(groupID string, result schema.NetworkReachResult) []NetworkLeaderRow {
	rows := make([]NetworkLeaderRow, len(result.NetworkLeaders))
	for i, l := range result.NetworkLeaders {
		rows[i] = NetworkLeaderRow{
			GroupID:                  groupID,
			ProfileID:                l.ProfileID,
			DisplayName:              l.DisplayName,
			DownstreamGroupID:        l.ViewpointGroupID,
			DownstreamGroupTitle:     l.ViewpointGroupTitle,
			DownstreamVerifiedVoters: int32(l.DownstreamVerifiedVoters),
			SupporterCount:           int32(l.SupporterCount),
		}
	}
	return rows
}

// ConvertDashboard flattens a dashboard result into a single summary row.
func ConvertDashboard(result *schema.DashboardResult) []DashboardRow {
	return []DashboardRow{{
		GroupID:              result.GroupID,
		VerifiedVoters:       int32(result.SwayScore.Count),
		TotalSupporters:      int32(result.SwayScore.TotalSupporters),
		Jurisdictions:        int32(len(result.ElectoralInfluence.ByJurisdiction)),
		Races:                int32(len(result.ElectoralInfluence.ByRace)),
		UpcomingElections:    int32(len(result.ElectoralInfluence.UpcomingElections)),
		TotalGrowth:          int32(result.GrowthOverTime.TotalGrowth),
		GrowthRate:           result.GrowthOverTime.GrowthRate,
		NetworkLeaders:       int32(len(result.NetworkReach.NetworkLeaders)),
		TotalDownstreamReach: int32(result.NetworkReach.TotalDownstreamReach),
	}}
}

// ConvertGroups converts the group listing to Parquet rows.
func ConvertGroups(groups []schema.GroupSummary) []GroupRow {
	rows := make([]GroupRow, len(groups))
	for i, g := range groups {
		rows[i] = GroupRow{ID: g.ID, Title: g.Title}
	}
	return rows
}
