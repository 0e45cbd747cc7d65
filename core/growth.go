package core

import (
	"context"
	"math"
	"sort"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
)

// growthRateCeiling is the percentage above which a growth rate is dropped
// from the result as implausible.
const growthRateCeiling = 1000.0

// GrowthOverTime buckets verified-voter acquisition events by calendar day
// and produces the cumulative series. Each voter lands on the earlier of
// their supporter relation timestamp and verification timestamp.
func (e *Engine) GrowthOverTime(ctx context.Context, groupID string) (schema.GrowthOverTimeResult, error) {
	result := schema.GrowthOverTimeResult{DataPoints: []schema.GrowthOverTimeDataPoint{}}
	if groupID == "" {
		return result, nil
	}

	set, err := e.resolveSupporters(ctx, groupID)
	if err != nil {
		return result, recoverFetch(err, "Growth supporter resolution failed")
	}

	events := make([]schema.GrowthEvent, 0, len(set.Verified))
	for _, v := range set.Verified {
		events = append(events, schema.GrowthEvent{
			RelationCreatedAt:     set.RelCreatedByPerson[v.PersonID],
			VerificationCreatedAt: v.CreatedAt,
		})
	}
	return BuildGrowthSeries(events), nil
}

// BuildGrowthSeries turns acquisition events into the cumulative daily
// series. The sway API provider reuses it so both backends share identical
// bucketing and rate arithmetic. Events with neither timestamp are skipped.
func BuildGrowthSeries(events []schema.GrowthEvent) schema.GrowthOverTimeResult {
	result := schema.GrowthOverTimeResult{DataPoints: []schema.GrowthOverTimeDataPoint{}}

	// --- 1. Bucket voters by effective day ---
	buckets := make(map[string]int)
	for _, ev := range events {
		effective := ev.VerificationCreatedAt
		if effective.IsZero() || (!ev.RelationCreatedAt.IsZero() && ev.RelationCreatedAt.Before(effective)) {
			effective = ev.RelationCreatedAt
		}
		if effective.IsZero() {
			continue
		}
		buckets[effective.UTC().Format(schema.DayFormat)]++
	}
	if len(buckets) == 0 {
		return result
	}

	// --- 2. Walk dates ascending, accumulating ---
	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	cumulative := 0
	for _, d := range dates {
		change := buckets[d]
		cumulative += change
		point := schema.GrowthOverTimeDataPoint{Date: d, CumulativeCount: cumulative}
		if change != 0 {
			point.PeriodChange = &change
		}
		result.DataPoints = append(result.DataPoints, point)
	}

	// --- 3. Totals, with a zero pre-first-bucket baseline ---
	first := result.DataPoints[0].CumulativeCount
	last := result.DataPoints[len(result.DataPoints)-1].CumulativeCount
	result.TotalGrowth = last

	if first > 0 && last > first {
		rate := (float64(last-first) / float64(first)) * 100
		if rate < growthRateCeiling && !math.IsInf(rate, 0) {
			result.GrowthRate = &rate
		}
	}
	return result
}
