package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func growthFixture() schema.GrowthOverTimeResult {
	two := 2
	one := 1
	rate := 50.0
	return schema.GrowthOverTimeResult{
		DataPoints: []schema.GrowthOverTimeDataPoint{
			{Date: "2024-01-01", CumulativeCount: 2, PeriodChange: &two},
			{Date: "2024-01-03", CumulativeCount: 3, PeriodChange: &one},
		},
		TotalGrowth: 3,
		GrowthRate:  &rate,
	}
}

func TestWriteGrowthText(t *testing.T) {
	cfg := newOutputConfig()

	var buf bytes.Buffer
	require.NoError(t, writeGrowthText(&buf, growthFixture(), cfg))

	out := buf.String()
	assert.Contains(t, out, "Growth Over Time")
	assert.Contains(t, out, "2024-01-01")
	assert.Contains(t, out, "+2")
	assert.Contains(t, out, "Total growth: 3 verified voters over 2 days")
	assert.Contains(t, out, "Growth rate: +50.0%")
}

func TestWriteGrowthTextNoRate(t *testing.T) {
	cfg := newOutputConfig()
	result := growthFixture()
	result.GrowthRate = nil

	var buf bytes.Buffer
	require.NoError(t, writeGrowthText(&buf, result, cfg))
	assert.NotContains(t, buf.String(), "Growth rate")
}

func TestWriteGrowthCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeGrowthCSV(w, growthFixture(), "g1"))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"group_id", "date", "cumulative_count", "period_change"}, records[0])
	assert.Equal(t, []string{"g1", "2024-01-01", "2", "2"}, records[1])
	assert.Equal(t, []string{"g1", "2024-01-03", "3", "1"}, records[2])
}

func TestWriteGrowthJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeGrowthJSON(&buf, growthFixture(), "g1"))

	out := buf.String()
	assert.Contains(t, out, `"groupId": "g1"`)
	assert.Contains(t, out, `"totalGrowth": 3`)
	assert.Contains(t, out, `"growthRate": 50`)
}
