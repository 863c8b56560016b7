package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/cli/handlers"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/timeutil"
)

const rangeHelp = `Date Filtering:
  --from and --to accept YYYY-MM-DD or DD/MM/YYYY and are inclusive.
  --last N covers the last N days, today included.
  Without any of them the whole log is used.`

// totalsCmd represents the totals command
var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show totals and breakdowns",
	Long: `Show calories and macros summed over the whole log or a date range,
with the daily average and a per-category breakdown.

` + rangeHelp + `

Examples:
  nutri totals
  nutri totals --last 7
  nutri totals --from 2024-05-01 --to 2024-05-31`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		r, ok := rangeFromFlags(cmd, deps)
		if !ok {
			return
		}
		handlers.ShowTotals(deps, r)
	},
}

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a markdown report",
	Long: `Render a report of the food log as markdown: totals, daily average and
tables grouped by category and by day.

The report is rendered for the terminal unless --raw is given, in which
case the markdown itself is printed (useful for saving to a file).

` + rangeHelp + `

Examples:
  nutri report --last 7
  nutri report --raw > week.md
  nutri report --style light --width 100`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		r, ok := rangeFromFlags(cmd, deps)
		if !ok {
			return
		}
		raw, _ := cmd.Flags().GetBool("raw")
		style, _ := cmd.Flags().GetString("style")
		width, _ := cmd.Flags().GetInt("width")
		handlers.ShowReport(deps, r, handlers.ReportOptions{Raw: raw, Style: style, Width: width})
	},
}

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <json|csv>",
	Short: "Export entries as JSON or CSV",
	Long: `Export entries to stdout. JSON uses the same shape as the stored log;
CSV has one row per entry with a header line.

` + rangeHelp + `

Examples:
  nutri export json > backup.json
  nutri export csv --last 30 > month.csv`,
	ValidArgs: []string{service.FormatJSON, service.FormatCSV},
	Args:      cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		r, ok := rangeFromFlags(cmd, deps)
		if !ok {
			return
		}
		handlers.ExportEntries(deps, args[0], r)
	},
}

func init() {
	rootCmd.AddCommand(totalsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)

	for _, c := range []*cobra.Command{totalsCmd, reportCmd, exportCmd} {
		addRangeFlags(c)
	}

	reportCmd.Flags().Bool("raw", false, "Print markdown without rendering")
	reportCmd.Flags().String("style", service.StyleAuto, "Rendering style: auto, dark, light or notty")
	reportCmd.Flags().Int("width", 80, "Word wrap width (0 disables wrapping)")
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD or DD/MM/YYYY)")
	cmd.Flags().Int("last", 0, "Last N days, today included")
}

// rangeFromFlags parses --from, --to and --last in the configured timezone.
func rangeFromFlags(cmd *cobra.Command, deps *cli.Deps) (timeutil.Range, bool) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	last, _ := cmd.Flags().GetInt("last")

	log := deps.Services.Log
	r, err := timeutil.ParseRangeFlags(from, to, last, log.Now().In(log.Location()))
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --from/--to with YYYY-MM-DD dates, or --last N on its own")
		deps.Exit(1)
		return timeutil.Range{}, false
	}
	return r, true
}
