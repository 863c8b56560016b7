package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// ShowTotals prints totals and the per-category breakdown for r
func ShowTotals(deps *cli.Deps, r timeutil.Range) {
	summary, err := deps.Services.Stats.ForRange(r)
	if err != nil {
		reportLoadError(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Totals for %s (%d %s)\n", r, summary.EntryCount, cli.Pluralize("entry", summary.EntryCount))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "  Calories: %s kcal\n", stats.Format(summary.Totals.Calories))
	_, _ = fmt.Fprintf(deps.Stdout, "  Protein:  %s g\n", stats.Format(summary.Totals.Protein))
	_, _ = fmt.Fprintf(deps.Stdout, "  Carbs:    %s g\n", stats.Format(summary.Totals.Carbs))
	_, _ = fmt.Fprintf(deps.Stdout, "  Fat:      %s g\n", stats.Format(summary.Totals.Fat))

	if summary.EntryCount == 0 {
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "\nDaily average (%d %s): %s\n",
		len(summary.Days), cli.Pluralize("day", len(summary.Days)), cli.FormatMacros(summary.DailyAvg))

	_, _ = fmt.Fprintln(deps.Stdout, "\nBy category:")
	for _, c := range summary.Categories {
		_, _ = fmt.Fprintf(deps.Stdout, "  %-10s %3d  %s\n", c.Category, c.EntryCount, cli.FormatMacros(c.Totals))
	}
}
