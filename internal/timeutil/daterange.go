package timeutil

import (
	"fmt"
	"time"
)

// Range is an inclusive time interval. A zero Start means "since the beginning".
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within [Start, End].
func (r Range) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	return !t.After(r.End)
}

// IsAllTime reports whether the range has no lower bound.
func (r Range) IsAllTime() bool {
	return r.Start.IsZero()
}

// String renders the range for headings.
func (r Range) String() string {
	if r.IsAllTime() {
		return "all time"
	}
	start := r.Start.Format(DayLayout)
	end := r.End.Format(DayLayout)
	if start == end {
		return start
	}
	return start + " to " + end
}

// ParseDate parses a YYYY-MM-DD or DD/MM/YYYY date at the start of that day in loc.
func ParseDate(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD, e.g., 2024-01-15)")
	}

	if t, err := time.ParseInLocation(DayLayout, input, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("02/01/2006", input, loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
}

// ParseRangeFlags builds a Range from the --from, --to and --last flags.
// lastDays counts whole days ending today, today included.
// With no flags the range is all time up to the end of today.
func ParseRangeFlags(fromStr, toStr string, lastDays int, now time.Time) (Range, error) {
	loc := now.Location()

	if lastDays < 0 {
		return Range{}, fmt.Errorf("--last must be positive, got %d", lastDays)
	}
	if lastDays > 0 && (fromStr != "" || toStr != "") {
		return Range{}, fmt.Errorf("cannot use --last with --from or --to")
	}

	r := Range{End: EndOfDay(now)}

	if lastDays > 0 {
		r.Start = StartOfDay(now.AddDate(0, 0, -(lastDays - 1)))
		return r, nil
	}

	if fromStr != "" {
		start, err := ParseDate(fromStr, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --from date: %w", err)
		}
		r.Start = start
	}

	if toStr != "" {
		to, err := ParseDate(toStr, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --to date: %w", err)
		}
		r.End = EndOfDay(to)
	}

	if !r.Start.IsZero() && r.Start.After(r.End) {
		return Range{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			r.Start.Format(DayLayout), r.End.Format(DayLayout))
	}

	return r, nil
}
