package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanDate(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today", HumanDate(now.Add(-2*time.Hour), now))
	assert.Equal(t, "Yesterday", HumanDate(now.Add(-24*time.Hour), now))
	assert.Equal(t, "Feb 1, 2026", HumanDate(now.AddDate(0, 0, -6), now))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "Just now"},
		{"minutes ago", now.Add(-25 * time.Minute), "25m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.AddDate(0, 0, -3), "Feb 4, 2026"},
		{"future", now.Add(time.Hour), "Today"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestamp(tt.in, now))
		})
	}
}

func TestUntil(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "in <1m", Until(now.Add(30*time.Second), now))
	assert.Equal(t, "in 12m", Until(now.Add(12*time.Minute+59*time.Second), now))
	assert.Equal(t, "in 1h 5m", Until(now.Add(65*time.Minute), now))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0m", FormatMinutes(0))
	assert.Equal(t, "25m", FormatMinutes(25))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
}

func TestTruncID(t *testing.T) {
	got := stripANSI(TruncID("0123456789abcdef"))
	assert.Equal(t, "01234567", got)
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "WHEN"},
		[][]string{
			{StyleGreen.Render("a"), "now"},
			{"abcdef", Dim("1h ago")},
		},
	))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, []string{
		"ID      WHEN",
		"──────  ──────",
		"a       now",
		"abcdef  1h ago",
	}, lines)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
