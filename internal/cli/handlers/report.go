package handlers

import (
	"fmt"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// ReportOptions controls how the markdown report is printed.
type ReportOptions struct {
	Raw   bool   // print markdown without rendering
	Style string // glamour style: auto, dark, light, notty
	Width int    // word wrap width
}

// ShowReport prints the markdown report for r
func ShowReport(deps *cli.Deps, r timeutil.Range, opts ReportOptions) {
	md, err := deps.Services.Report.Markdown(r)
	if err != nil {
		reportLoadError(deps, err)
		return
	}

	if opts.Raw {
		_, _ = fmt.Fprint(deps.Stdout, md)
		return
	}

	out, err := service.Render(md, opts.Style, opts.Width)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to render report")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --raw to print plain markdown")
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprint(deps.Stdout, out)
}
