package timer

import (
	"strconv"
	"time"
)

// Persisted keys. The names and encodings are shared with every process
// that resumes the countdown.
const (
	KeyTimeLeft = "timerTimeLeft" // decimal seconds
	KeyRunning  = "timerRunning"  // "true" / "false"
	KeyEndTime  = "timerEndTime"  // decimal epoch milliseconds, only while running
)

// decodeSeconds accepts a positive decimal integer up to one day. Zero is
// treated as absent: a stored zero can only come from an interrupted
// completion.
func decodeSeconds(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > maxSeconds {
		return 0, false
	}
	return n, true
}

// decodeRunning is deliberately lenient: only the literal "true" is true,
// every other value (including garbage) reads as false.
func decodeRunning(s string) bool {
	return s == "true"
}

func decodeDeadline(s string) (time.Time, bool) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

func encodeSeconds(n int) string { return strconv.Itoa(n) }

func encodeRunning(b bool) string { return strconv.FormatBool(b) }

func encodeDeadline(t time.Time) string { return strconv.FormatInt(t.UnixMilli(), 10) }
