package util //nolint:revive // package name util hosts shared formatting helpers used by the run trace and report templates

import "time"

// TimestampLayout renders times the way the run trace and reports show them.
const TimestampLayout = "2006-01-02 15:04:05 -0700"

// FormatTimestamp formats t with TimestampLayout. The zero time renders as "—".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(TimestampLayout)
}

// FormatRunDuration formats a run duration for display, handling edge cases.
// Returns "—" for zero or negative durations, truncates to milliseconds under
// a minute and to seconds above.
func FormatRunDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "—"
	case d < time.Millisecond:
		return d.String()
	case d < time.Minute:
		return d.Truncate(time.Millisecond).String()
	default:
		return d.Truncate(time.Second).String()
	}
}
