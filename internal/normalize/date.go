package normalize

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Numeric layouts put the day before the month,
// so "07/01/2026" is 7 January. Non-padded verbs also accept zero-padded input.
var dateLayouts = []string{
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"2-January-2006",
	"2 Jan 06",
	"2-Jan-06",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
	"2006-01-02",
	"2006/01/02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"Jan 2, 2006",
	"January 2, 2006",
}

// Date parses statement date text into a calendar date at UTC midnight.
// A trailing time of day ("07/01/2026 14:32") is ignored. The second result
// is false when no layout matches.
func Date(text string) (time.Time, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return time.Time{}, false
	}
	if len(fields) > 1 && strings.Contains(fields[len(fields)-1], ":") {
		fields = fields[:len(fields)-1]
	}
	s := strings.Join(fields, " ")

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
