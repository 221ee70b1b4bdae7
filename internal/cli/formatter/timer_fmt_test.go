package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/focus/internal/domain"
	"github.com/alexanderramin/focus/internal/timer"
	"github.com/stretchr/testify/assert"
)

func TestFormatTimerStatus_Running(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out := stripANSI(FormatTimerStatus(TimerStatusData{
		Snapshot: timer.Snapshot{
			State:     timer.StateRunning,
			Remaining: 754,
			Deadline:  now.Add(754 * time.Second),
		},
		Visible:    true,
		Now:        now,
		TodayCount: 1,
	}))

	assert.Contains(t, out, "FOCUS")
	assert.Contains(t, out, "12:34")
	assert.Contains(t, out, "● Running")
	assert.Contains(t, out, "ends 09:12:34, in 12m")
	assert.Contains(t, out, "today: 1 session")
}

func TestFormatTimerStatus_HiddenAndIdle(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	out := stripANSI(FormatTimerStatus(TimerStatusData{
		Snapshot: timer.Snapshot{State: timer.StateIdle, Remaining: timer.DefaultDuration},
		Now:      now,
	}))

	assert.NotContains(t, out, "25:00")
	assert.Contains(t, out, "(hidden)")
	assert.Contains(t, out, "○ Ready")
	assert.NotContains(t, out, "ends")
	assert.Contains(t, out, "today: 0 sessions")
}

func TestStatePill_Paused(t *testing.T) {
	got := stripANSI(StatePill(timer.Snapshot{State: timer.StateIdle, Remaining: 300}))
	assert.Equal(t, "‖ Paused", got)
}

func TestFormatTimerLine(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	running := timer.Snapshot{State: timer.StateRunning, Remaining: 1500, Deadline: now.Add(25 * time.Minute)}
	assert.Equal(t, "Started 25:00 (ends 09:25:00)", stripANSI(FormatTimerLine("Started", running, now)))

	idle := timer.Snapshot{Remaining: 300}
	assert.Equal(t, "Preset 05:00", stripANSI(FormatTimerLine("Preset", idle, now)))
}

func TestFormatHistory(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	empty := FormatHistory(nil, 7, now)
	assert.Equal(t, "No focus sessions in the last 7 days.\n", empty)

	sessions := []*domain.FocusSession{
		{ID: "aaaaaaaa-1111", CompletedAt: now.Add(-30 * time.Minute)},
		{ID: "bbbbbbbb-2222", CompletedAt: now.Add(-26 * time.Hour)},
	}
	out := stripANSI(FormatHistory(sessions, 7, now))
	assert.Contains(t, out, "HISTORY")
	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "11:30")
	assert.Contains(t, out, "30m ago")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "2 sessions in the last 7 days")
}
