package model

import (
	"fmt"
	"strings"
	"time"
)

// FormatRelativeTime renders t relative to now, e.g. "1 day, 2 hours ago".
// Seconds are never reported, so anything under a minute reads "0 minutes ago".
// A zero time yields "Never" and a time in the future is printed as is.
func FormatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return NeverUpdated
	}

	total := int(now.Sub(t).Seconds())
	if total < 0 {
		return t.Format(TimestampLayout)
	}

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if minutes > 0 || len(parts) == 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, ", ") + " ago"
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
