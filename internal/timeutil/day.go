// Package timeutil provides the day arithmetic used for report buckets
// and the --from/--to/--last range flags.
package timeutil

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve on hosts without zoneinfo
)

// DayLayout is the layout of day keys and date flags.
const DayLayout = "2006-01-02"

// StartOfDay returns midnight (00:00:00) of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day (23:59:59.999999999)
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// DayKey returns the calendar day of t in loc, formatted with DayLayout.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// LoadLocation resolves a configured timezone name.
// Empty and "Local" map to time.Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}
