package chat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var textualDatePattern = regexp.MustCompile(`(\d{1,2})[/\-.](\d{1,2})(?:[/\-.](\d{2,4}))?`)

// ResolveDate converts a relative or textual date expression into a calendar
// date (midnight, local zone of now). The reference time is injected so tests
// can fix "today". Returns false when the expression is not understood.
func ResolveDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	today := truncateToDay(now)

	// "antes de ayer" contains "ayer", so the two-day forms go first.
	switch {
	case strings.Contains(lower, "antier"), strings.Contains(lower, "antes de ayer"):
		return today.AddDate(0, 0, -2), true
	case strings.Contains(lower, "ayer"):
		return today.AddDate(0, 0, -1), true
	case strings.Contains(lower, "hoy"):
		return today, true
	}

	match := textualDatePattern.FindStringSubmatch(lower)
	if match == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year := now.Year()
	if match[3] != "" {
		y, _ := strconv.Atoi(match[3])
		if len(match[3]) == 2 {
			y += 2000
		}
		year = y
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	// time.Date normalizes overflow (31/02 becomes March); reject that.
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return date, true
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
