package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func networkFixture() schema.NetworkReachResult {
	pat := "Pat Lee"
	groupH := "Group H"
	return schema.NetworkReachResult{
		NetworkLeaders: []schema.NetworkLeader{
			{
				ProfileID:                "p1",
				DisplayName:              &pat,
				ViewpointGroupID:         "H",
				ViewpointGroupTitle:      &groupH,
				DownstreamVerifiedVoters: 150,
				SupporterCount:           180,
			},
			{ProfileID: "p1", ViewpointGroupID: "K", DownstreamVerifiedVoters: 5, SupporterCount: 9},
		},
		TotalDownstreamReach: 155,
	}
}

func TestWriteNetworkText(t *testing.T) {
	cfg := newOutputConfig()

	var buf bytes.Buffer
	require.NoError(t, writeNetworkText(&buf, networkFixture(), cfg))

	out := buf.String()
	assert.Contains(t, out, "Network Reach")
	assert.Contains(t, out, "Pat Lee")
	assert.Contains(t, out, "Group H")
	assert.Contains(t, out, "Strong")
	assert.Contains(t, out, "Showing 2 of 2 leaders (total downstream reach: 155)")
}

func TestWriteNetworkCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, writeNetworkCSV(w, networkFixture(), "g1"))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Pat Lee", records[1][3])
	assert.Equal(t, "150", records[1][6])
	assert.Equal(t, "Strong", records[1][8])
	assert.Equal(t, "", records[2][3], "missing display name stays empty in CSV")
	assert.Equal(t, "Emerging", records[2][8])
}

func TestWriteNetworkJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeNetworkJSON(&buf, networkFixture(), "g1"))

	out := buf.String()
	assert.Contains(t, out, `"groupId": "g1"`)
	assert.Contains(t, out, `"totalDownstreamReach": 155`)
}

func TestWriteNetworkTextRespectsLimit(t *testing.T) {
	cfg := newOutputConfig()
	cfg.ResultLimit = 1

	var buf bytes.Buffer
	require.NoError(t, writeNetworkText(&buf, networkFixture(), cfg))
	assert.Contains(t, buf.String(), "Showing 1 of 2 leaders")
}
