// Package cli provides the CLI presentation layer for nutritrack.
// It handles command-line output formatting and user interaction.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/nutritrack/internal/filter"
	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/storage"
)

// FormatMacros formats macros on one line.
// Example: "350 kcal  P 20g  C 40g  F 10g"
func FormatMacros(m food.Macros) string {
	return fmt.Sprintf("%s kcal  P %sg  C %sg  F %sg",
		stats.Format(m.Calories),
		stats.Format(m.Protein),
		stats.Format(m.Carbs),
		stats.Format(m.Fat))
}

// FormatTimestamp formats an entry timestamp in loc.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}

// FormatEntry formats an entry as a list row.
// Example: "3f2a9c1d  2024-05-01 12:00  Chicken [Protein]  150 kcal  P 16g  C 0g  F 10g"
func FormatEntry(e food.Entry, loc *time.Location) string {
	return fmt.Sprintf("%s  %s  %s [%s]  %s",
		e.ShortID(),
		FormatTimestamp(e.Timestamp, loc),
		e.Name,
		e.Category,
		FormatMacros(e.Macros()))
}

// DescribeQuery returns a heading suffix for an active filter.
// Example: ` matching "egg" in Protein`
func DescribeQuery(q filter.Query) string {
	if q.IsEmpty() {
		return ""
	}
	return " matching " + q.Describe()
}

// FormatHealthIssue formats a storage.Issue for display
func FormatHealthIssue(issue storage.Issue) string {
	if issue.ID == "" {
		return fmt.Sprintf("  Entry %d: %s", issue.Index+1, issue.Problem)
	}
	return fmt.Sprintf("  Entry %d (%s): %s", issue.Index+1, issue.ID, issue.Problem)
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}

// CategoryList returns the entry categories joined for help text.
func CategoryList() string {
	names := make([]string, 0, len(food.Categories()))
	for _, c := range food.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
