package normalize

import (
	"fmt"
	"strings"
	"time"
)

// displayLayout renders timestamps like "04 Mar 2024, 09:15 PM".
const displayLayout = "02 Jan 2006, 03:04 PM"

// isoLayouts are tried in order after the trailing Z marker is stripped.
// Go accepts a fractional second on parse even when the layout omits it.
var isoLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseISO defensively parses an ISO-8601-ish timestamp string. Empty or
// unparsable input reports false; it never panics.
func ParseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDateTime renders a timestamp string for display, degrading to the
// N/A sentinel when parsing fails.
func FormatDateTime(s string) string {
	t, ok := ParseISO(s)
	if !ok {
		return TimestampSentinel
	}
	return t.Format(displayLayout)
}

// ResolutionTime renders the elapsed wall-clock time between creation and
// resolution as "{hours}h {minutes}m" with floor division. Either endpoint
// failing to parse yields N/A. An interval that runs backwards (resolution
// recorded before creation) clamps to zero rather than rendering a
// negative duration.
func ResolutionTime(created, resolved string) string {
	start, ok := ParseISO(created)
	if !ok {
		return TimestampSentinel
	}
	end, ok := ParseISO(resolved)
	if !ok {
		return TimestampSentinel
	}

	elapsed := end.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	total := int64(elapsed.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
