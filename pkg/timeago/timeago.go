package timeago

import (
	"fmt"
	"time"
)

// Format buckets the elapsed time since t into a human phrase. Anything older
// than a week falls back to an absolute date.
func Format(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 02, 2006")
	}
}

// Since is Format against the current time.
func Since(t time.Time) string {
	return Format(t, time.Now())
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
