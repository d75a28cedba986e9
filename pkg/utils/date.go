package utils

import (
	"fmt"
	"time"
)

// FormatDate renders an epoch-millisecond timestamp as "January 2, 2006".
// A zero timestamp renders empty.
func FormatDate(millis int64) string {
	if millis == 0 {
		return ""
	}
	return time.UnixMilli(millis).UTC().Format("January 2, 2006")
}

// FormatRelativeDate renders an epoch-millisecond timestamp relative to now,
// e.g. "2 days ago".
func FormatRelativeDate(millis int64) string {
	if millis == 0 {
		return ""
	}

	days := int(time.Since(time.UnixMilli(millis)).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return plural(days/7, "week")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year")
	}
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
