package timer

import "fmt"

// FormatRemaining renders seconds as MM:SS. Minutes are not wrapped into
// hours, so 3661 renders as "61:01".
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
