package outwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/BrettEastman/sway-leader-dashboard/internal/contract"
	"github.com/BrettEastman/sway-leader-dashboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newOutputConfig returns a validated-shape config suitable for writers.
func newOutputConfig() *contract.Config {
	return &contract.Config{
		Backend:     schema.SQLiteBackend,
		BatchSize:   100,
		Workers:     4,
		ResultLimit: 25,
		Precision:   1,
		Output:      schema.TextOut,
		Width:       100,
		UseEmojis:   true,
		UseColors:   false,
	}
}

func TestHeading(t *testing.T) {
	cfg := newOutputConfig()

	var buf bytes.Buffer
	require.NoError(t, heading(&buf, cfg, "📊", "Sway Score"))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "📊 Sway Score", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "===="))

	cfg.UseEmojis = false
	buf.Reset()
	require.NoError(t, heading(&buf, cfg, "📊", "Sway Score"))
	assert.True(t, strings.HasPrefix(buf.String(), "Sway Score\n"))
	assert.NotContains(t, buf.String(), "📊")
}

func TestLimitRows(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	assert.Len(t, limitRows(rows, 3), 3)
	assert.Len(t, limitRows(rows, 0), 5)
	assert.Len(t, limitRows(rows, 10), 5)
}

func TestGetMaxTableTitleWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{name: "wide terminal capped", width: 200, want: 60},
		{name: "narrow terminal floored", width: 50, want: 15},
		{name: "mid terminal", width: 100, want: 55},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newOutputConfig()
			cfg.Width = tc.width
			assert.Equal(t, tc.want, getMaxTableTitleWidth(cfg))
		})
	}
}

func TestCreateFloatFormatter(t *testing.T) {
	fmtFloat := createFloatFormatter(1)
	assert.Equal(t, "50.0", fmtFloat(50.04))

	fmtFloat = createFloatFormatter(2)
	assert.Equal(t, "33.33", fmtFloat(33.3333))
}

func TestLabelFor(t *testing.T) {
	cfg := newOutputConfig()
	assert.Equal(t, "Strong", labelFor(cfg, 150))

	// Colored output still carries the tier text.
	cfg.UseColors = true
	assert.Contains(t, labelFor(cfg, 150), "Strong")
}

func TestWriteComputeFooter(t *testing.T) {
	cfg := newOutputConfig()

	var buf bytes.Buffer
	require.NoError(t, writeComputeFooter(&buf, cfg, 1500*time.Millisecond))
	assert.Contains(t, buf.String(), "Computed in 1.5s with 4 workers")
	assert.Contains(t, buf.String(), "Data backend: sqlite")
}
