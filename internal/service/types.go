// Package service is the application layer shared by the CLI and the TUI.
// It owns the storage backend, the lazily opened food log store and the
// configuration.
package service

import (
	"github.com/xolan/nutritrack/internal/filter"
	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// ListResult is a filtered view of the log.
type ListResult struct {
	Entries []food.Entry // matching entries, newest first
	Query   filter.Query
	Total   int         // entries in the whole log
	Totals  food.Macros // totals of the whole log, not only Entries
}

// Summary holds totals and breakdowns for a time range.
type Summary struct {
	Range      timeutil.Range
	EntryCount int
	Totals     food.Macros
	DailyAvg   food.Macros // Totals divided by the number of days with entries
	Categories []stats.CategoryBreakdown
	Days       []stats.DayBreakdown
}
