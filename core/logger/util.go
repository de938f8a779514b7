package logger

import (
	"strings"
	"time"
)

// Took returns the time since start rounded to milliseconds.
func Took(start time.Time) time.Duration {
	return RoundMS(time.Since(start))
}

// RoundMS rounds d to the nearest millisecond; negative values become zero.
func RoundMS(d time.Duration) time.Duration {
	return max(d, 0).Round(time.Millisecond)
}

// Preview joins at most limit names for a log line and reports whether
// some were left out.
func Preview(names []string, limit int) (string, bool) {
	n := min(len(names), max(limit, 0))
	return strings.Join(names[:n], ", "), n < len(names)
}
