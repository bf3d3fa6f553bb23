// Package dateutils provides the ISO-8601 parsing and formatting used for every
// persisted timestamp. All values are normalized to UTC.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layout constants
const (
	DateLayoutISO   = "2006-01-02"
	MonthLayoutISO  = "2006-01"
	DateTimeLayoutZ = "2006-01-02T15:04:05Z"
)

// offsetLayouts carry an explicit UTC offset. Fractional seconds are accepted
// by time.Parse even though the layouts do not spell them out.
var offsetLayouts = []string{
	"2006-01-02T15:04:05-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02T15:04-07:00",
	"2006-01-02 15:04-07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-0700",
}

// naiveLayouts have no zone information and are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15",
	DateLayoutISO,
}

// ParseISO parses an ISO-8601 date or datetime. A trailing "Z" is read as
// "+00:00" and values without an offset are treated as UTC.
func ParseISO(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime: %s", value)
}

// NormalizeUTC converts t to UTC at whole-second precision, the precision at
// which timestamps are persisted.
func NormalizeUTC(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// FormatISO renders t as an ISO-8601 UTC timestamp with a literal trailing Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(DateTimeLayoutZ)
}

// StartOfMonth returns midnight UTC of the first day of the month for a given date
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last second of the month for a given date
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, 0).Add(-time.Second)
}

// MonthBounds parses a YYYY-MM string and returns the inclusive bounds of that month.
func MonthBounds(month string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation(MonthLayoutISO, strings.TrimSpace(month), time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", month, err)
	}
	return StartOfMonth(t), EndOfMonth(t), nil
}
