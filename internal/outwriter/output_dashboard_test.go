package outwriter

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dashboardFixture() *schema.DashboardResult {
	return &schema.DashboardResult{
		GroupID:            "g1",
		SwayScore:          schema.SwayScoreResult{Count: 120, TotalSupporters: 200},
		ElectoralInfluence: influenceFixture(),
		GrowthOverTime:     growthFixture(),
		NetworkReach:       networkFixture(),
	}
}

func TestWriteDashboardText(t *testing.T) {
	cfg := newOutputConfig()

	var buf bytes.Buffer
	require.NoError(t, writeDashboardText(&buf, dashboardFixture(), cfg))

	out := buf.String()
	assert.Contains(t, out, "Sway Score")
	assert.Contains(t, out, "Electoral Influence")
	assert.Contains(t, out, "Growth Over Time")
	assert.Contains(t, out, "Network Reach")
}

func TestWriteDashboardCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeDashboardCSV(w, dashboardFixture()))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "g1", records[1][0])
	assert.Equal(t, "120", records[1][1])
	assert.Equal(t, "Strong", records[1][3])
	assert.Equal(t, "2", records[1][4])
	assert.Equal(t, "50.00", records[1][8])
	assert.Equal(t, "155", records[1][10])
}

func TestPrintDashboardParquetToFile(t *testing.T) {
	cfg := newOutputConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "dashboard.parquet")

	require.NoError(t, PrintDashboard(dashboardFixture(), cfg, time.Second))
	assert.FileExists(t, cfg.OutputFile)
}
