package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// ExportEntries writes the entries in r to stdout as json or csv.
// The entry count goes to stderr so stdout stays machine-readable.
func ExportEntries(deps *cli.Deps, format string, r timeutil.Range) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != service.FormatJSON && format != service.FormatCSV {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unknown export format '%s'\n", format)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'nutri export json' or 'nutri export csv'")
		deps.Exit(1)
		return
	}

	n, err := deps.Services.Export.Write(deps.Stdout, format, r)
	if err != nil {
		reportLoadError(deps, err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stderr, "Exported %d %s (%s)\n", n, cli.Pluralize("entry", n), r)
}
