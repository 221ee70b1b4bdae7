package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focus/internal/timer"
)

// TimerStatusData is everything the timer panel shows.
type TimerStatusData struct {
	Snapshot   timer.Snapshot
	Visible    bool
	Now        time.Time
	TodayCount int
}

// FormatTimerStatus renders the timer panel used by `status` and `watch`.
// A hidden timer keeps its state line but not the digits.
func FormatTimerStatus(d TimerStatusData) string {
	var b strings.Builder

	if d.Visible {
		b.WriteString(Bold(d.Snapshot.Display()))
	} else {
		b.WriteString(Dim("--:--  (hidden)"))
	}
	b.WriteString("   ")
	b.WriteString(StatePill(d.Snapshot))
	b.WriteString("\n")

	if d.Snapshot.Running() {
		end := d.Snapshot.Deadline.In(d.Now.Location())
		b.WriteString(Dim(fmt.Sprintf("ends %s, %s", end.Format("15:04:05"), Until(end, d.Now))))
		b.WriteString("\n")
	}

	b.WriteString(Dim(fmt.Sprintf("today: %s", sessionCount(d.TodayCount))))
	return RenderBox("Focus", b.String())
}

// FormatTimerLine is the one-line summary printed after a command changes
// the timer.
func FormatTimerLine(verb string, s timer.Snapshot, now time.Time) string {
	line := fmt.Sprintf("%s %s", verb, Bold(s.Display()))
	if s.Running() {
		end := s.Deadline.In(now.Location())
		line += Dim(fmt.Sprintf(" (ends %s)", end.Format("15:04:05")))
	}
	return line
}

func sessionCount(n int) string {
	if n == 1 {
		return "1 session"
	}
	return fmt.Sprintf("%d sessions", n)
}
