// Package schema has configs, models and global variables for all parts of swaydash.
package schema

// SwayScoreResult is the verified-supporter count for a viewpoint group.
// Count is the number of fully-verified voters among the group's supporters;
// TotalSupporters is the raw supporter relation count before verification.
type SwayScoreResult struct {
	Count           int `json:"count"`
	TotalSupporters int `json:"totalSupporters"`
}

// ElectoralInfluenceByJurisdiction is one jurisdiction's share of a group's
// verified voters. A voter registered in several jurisdictions counts once
// per registration.
type ElectoralInfluenceByJurisdiction struct {
	JurisdictionID   string  `json:"jurisdictionId"`
	JurisdictionName *string `json:"jurisdictionName"`
	State            *string `json:"state"`
	SupporterCount   int     `json:"supporterCount"`
}

// ElectoralInfluenceByRace is one race's supporter attribution. Races inherit
// the full verified-voter count of their ballot item's jurisdiction.
type ElectoralInfluenceByRace struct {
	RaceID           string  `json:"raceId"`
	RaceName         *string `json:"raceName"`
	JurisdictionID   string  `json:"jurisdictionId"`
	JurisdictionName *string `json:"jurisdictionName"`
	ElectionID       string  `json:"electionId"`
	ElectionName     *string `json:"electionName"`
	PollDate         *string `json:"pollDate"`
	SupporterCount   int     `json:"supporterCount"`
}

// UpcomingElectionRace is a race entry inside an upcoming election rollup.
type UpcomingElectionRace struct {
	RaceID         string `json:"raceId"`
	SupporterCount int    `json:"supporterCount"`
}

// UpcomingElection groups races by election for elections whose poll date is
// today or later. TotalSupporters sums the distinct race supporter counts.
type UpcomingElection struct {
	ElectionID      string                 `json:"electionId"`
	ElectionName    *string                `json:"electionName"`
	PollDate        *string                `json:"pollDate"`
	TotalSupporters int                    `json:"totalSupporters"`
	Races           []UpcomingElectionRace `json:"races"`
}

// ElectoralInfluenceResult is the full electoral influence breakdown for a
// viewpoint group.
type ElectoralInfluenceResult struct {
	ByJurisdiction    []ElectoralInfluenceByJurisdiction `json:"byJurisdiction"`
	ByRace            []ElectoralInfluenceByRace         `json:"byRace"`
	UpcomingElections []UpcomingElection                 `json:"upcomingElections"`
}

// GrowthOverTimeDataPoint is one day in the cumulative verified-voter series.
// PeriodChange is the delta contributed by that day's bucket.
type GrowthOverTimeDataPoint struct {
	Date            string `json:"date"`
	CumulativeCount int    `json:"cumulativeCount"`
	PeriodChange    *int   `json:"periodChange,omitempty"`
}

// GrowthOverTimeResult is the cumulative growth series for a viewpoint group.
// GrowthRate is a percentage relative to the first cumulative value and is
// omitted when the baseline is zero or the magnitude is implausible.
type GrowthOverTimeResult struct {
	DataPoints  []GrowthOverTimeDataPoint `json:"dataPoints"`
	TotalGrowth int                       `json:"totalGrowth"`
	GrowthRate  *float64                  `json:"growthRate,omitempty"`
}

// NetworkLeader is a supporter of the target group who independently leads
// another viewpoint group, with that group's own verified-voter count.
type NetworkLeader struct {
	ProfileID                string  `json:"profileId"`
	DisplayName              *string `json:"displayName"`
	ViewpointGroupID         string  `json:"viewpointGroupId"`
	ViewpointGroupTitle      *string `json:"viewpointGroupTitle"`
	DownstreamVerifiedVoters int     `json:"downstreamVerifiedVoters"`
	SupporterCount           int     `json:"supporterCount"`
}

// NetworkReachResult is the second-order reach of a viewpoint group.
// TotalDownstreamReach is the plain sum across leaders; a voter reachable
// through two leaders is counted twice on purpose.
type NetworkReachResult struct {
	NetworkLeaders       []NetworkLeader `json:"networkLeaders"`
	TotalDownstreamReach int             `json:"totalDownstreamReach"`
}

// GroupSummary is a viewpoint group entry for the listing surface.
type GroupSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DashboardResult bundles all four metrics for one viewpoint group.
type DashboardResult struct {
	GroupID            string                   `json:"groupId"`
	SwayScore          SwayScoreResult          `json:"swayScore"`
	ElectoralInfluence ElectoralInfluenceResult `json:"electoralInfluence"`
	GrowthOverTime     GrowthOverTimeResult     `json:"growthOverTime"`
	NetworkReach       NetworkReachResult       `json:"networkReach"`
}
