package helpers

import (
	"strings"
	"time"
)

// Game sessions are keyed by calendar date, so only date layouts are
// accepted; any time-of-day input is rejected rather than silently dropped.
var flexibleDateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"02.01.2006",
	"2.1.2006",
	"02.01",
	"2.1",
}

// ParseFlexibleDate tries the date formats admins commonly type in chat.
// Day-and-month input without a year resolves to the next occurrence from
// today. The result is midnight local time.
func ParseFlexibleDate(input string) (time.Time, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleDateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err != nil {
			continue
		}
		if !strings.Contains(layout, "2006") {
			now := time.Now()
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
			if t.Before(now.Truncate(24 * time.Hour)) {
				t = t.AddDate(1, 0, 0)
			}
		}
		return t, true
	}
	return time.Time{}, false
}
