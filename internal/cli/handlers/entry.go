package handlers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/filter"
	"github.com/xolan/nutritrack/internal/form"
	"github.com/xolan/nutritrack/internal/store"
)

// AddEntry validates the fields and logs a new food entry
func AddEntry(deps *cli.Deps, fields form.Fields) {
	e, err := deps.Services.Log.Add(fields)
	if err != nil {
		var fieldErr *form.FieldError
		switch {
		case errors.Is(err, form.ErrIncomplete):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Name and calories are required")
			_, _ = fmt.Fprintln(deps.Stderr, "Usage: nutri add <name> --calories <n> [--category <c>] [--protein <g>] [--carbs <g>] [--fat <g>]")
			_, _ = fmt.Fprintln(deps.Stderr, "Example: nutri add \"Greek yogurt\" --calories 100 --protein 10 --category Protein")
		case errors.As(err, &fieldErr):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid %s\n", fieldErr.Field)
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", fieldErr)
			if fieldErr.Field == form.FieldCategory {
				_, _ = fmt.Fprintf(deps.Stderr, "Hint: Valid categories are %s\n", cli.CategoryList())
			} else {
				_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use plain decimal numbers such as 12 or 3.5")
			}
		default:
			reportLoadError(deps, err)
			return
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s [%s] (%s)\n", e.Name, e.Category, cli.FormatMacros(e.Macros()))
	_, _ = fmt.Fprintf(deps.Stdout, "  ID: %s\n", e.ShortID())
}

// ListEntries prints the entries matching q, newest first, followed by
// the totals of the whole log
func ListEntries(deps *cli.Deps, q filter.Query) {
	result, err := deps.Services.Log.List(q)
	if err != nil {
		reportLoadError(deps, err)
		return
	}

	loc := deps.Services.Log.Location()
	suffix := cli.DescribeQuery(q)

	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "No entries found%s\n", suffix)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Entries%s (%d of %d):\n", suffix, len(result.Entries), result.Total)
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
		for _, e := range result.Entries {
			_, _ = fmt.Fprintln(deps.Stdout, cli.FormatEntry(e, loc))
		}
		_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Total (all %d %s): %s\n",
		result.Total, cli.Pluralize("entry", result.Total), cli.FormatMacros(result.Totals))
}

// DeleteEntry deletes an entry with optional confirmation
func DeleteEntry(deps *cli.Deps, idPrefix string, skipConfirm bool) {
	e, err := deps.Services.Log.Get(idPrefix)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNoMatch):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry matches '%s'\n", idPrefix)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: List entries with 'nutri list' to see their IDs")
		case errors.Is(err, store.ErrAmbiguous):
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Type more characters of the ID")
		default:
			reportLoadError(deps, err)
			return
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Entry to delete:")
	_, _ = fmt.Fprintf(deps.Stdout, "  %s\n", cli.FormatEntry(e, deps.Services.Log.Location()))

	if !skipConfirm {
		if !promptConfirmation(deps.Stdout, deps.Stdin) {
			_, _ = fmt.Fprintln(deps.Stdout, "Deletion cancelled")
			return
		}
	}

	removed, err := deps.Services.Log.Delete(e.ID)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to delete entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s [%s]\n", removed.Name, removed.Category)
	if _, err := deps.Services.Log.Backups(); err == nil {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Use 'nutri restore' to undo this")
	}
}

// promptConfirmation asks the user to confirm deletion
func promptConfirmation(stdout io.Writer, stdin io.Reader) bool {
	_, _ = fmt.Fprint(stdout, "Delete this entry? [y/N]: ")

	scanner := bufio.NewScanner(stdin)
	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}
