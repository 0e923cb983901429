package dataset

import (
	"strconv"
	"strings"
	"time"
)

// offsetLayouts carry their own zone and are parsed as given.
var offsetLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05.000 MST",
	"2006-01-02 15:04:05.000 MST",
	"2006-01-02 15:04:05 MST",
}

// wallLayouts have no zone and are read as UTC wall clock.
var wallLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02/01/2006 3:04pm",
	"02/01/2006 03:04pm",
	"02/01/2006 3:04 pm",
	"02/01/2006 03:04 pm",
	"02/01/2006 3:04PM",
	"02/01/2006 3:04 PM",
}

// ParseTime parses s as a timestamp using the first matching layout.
// Bare integers are rejected so numeric identifiers never become dates.
func ParseTime(s string) (time.Time, bool) {
	ss := strings.TrimSpace(s)
	if ss == "" {
		return time.Time{}, false
	}
	if _, err := strconv.ParseFloat(ss, 64); err == nil {
		return time.Time{}, false
	}
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, ss); err == nil {
			return t, true
		}
	}
	for _, layout := range wallLayouts {
		if t, err := time.ParseInLocation(layout, ss, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Naive drops the zone of t while keeping its wall clock reading.
// The result is in UTC so comparisons are offset-free.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
