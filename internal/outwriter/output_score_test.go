package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSwayScoreText(t *testing.T) {
	cfg := newOutputConfig()
	result := schema.SwayScoreResult{Count: 120, TotalSupporters: 200}

	var buf bytes.Buffer
	require.NoError(t, writeSwayScoreText(&buf, result, "g1", cfg))

	out := buf.String()
	assert.Contains(t, out, "Sway Score")
	assert.Contains(t, out, "Group:            g1")
	assert.Contains(t, out, "Verified voters:  120 (Strong)")
	assert.Contains(t, out, "Total supporters: 200")
}

func TestWriteSwayScoreCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeSwayScoreCSV(w, schema.SwayScoreResult{Count: 3, TotalSupporters: 10}, "g1"))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"group_id", "verified_voters", "total_supporters", "label"}, records[0])
	assert.Equal(t, []string{"g1", "3", "10", "Emerging"}, records[1])
}

func TestWriteSwayScoreJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSwayScoreJSON(&buf, schema.SwayScoreResult{Count: 600, TotalSupporters: 700}, "g1"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "g1", decoded["groupId"])
	assert.Equal(t, "Major", decoded["label"])
	assert.Equal(t, float64(600), decoded["count"])
	assert.Equal(t, float64(700), decoded["totalSupporters"])
}

func TestPrintSwayScoreToFile(t *testing.T) {
	cfg := newOutputConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "score.json")

	result := schema.SwayScoreResult{Count: 30, TotalSupporters: 40}
	require.NoError(t, PrintSwayScore(result, "g1", cfg, time.Second))

	raw, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, float64(30), decoded["count"])
	assert.Equal(t, "Growing", decoded["label"])
}
