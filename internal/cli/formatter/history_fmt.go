package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/focus/internal/domain"
)

// FormatHistory renders completed sessions, newest first, with a total line.
func FormatHistory(sessions []*domain.FocusSession, days int, now time.Time) string {
	if len(sessions) == 0 {
		return fmt.Sprintf("No focus sessions in the last %d days.\n", days)
	}

	headers := []string{"ID", "DAY", "COMPLETED", "WHEN"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		local := s.CompletedAt.In(now.Location())
		rows = append(rows, []string{
			TruncID(s.ID),
			HumanDate(local, now),
			local.Format("15:04"),
			Dim(HumanTimestamp(local, now)),
		})
	}

	body := RenderTable(headers, rows) + "\n" +
		Dim(fmt.Sprintf("%s in the last %d days", sessionCount(len(sessions)), days))
	return RenderBox("History", body)
}
