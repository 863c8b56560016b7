package handlers

import (
	"errors"
	"fmt"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/store"
)

// reportLoadError prints a failure to open the food log and exits.
func reportLoadError(deps *cli.Deps, err error) {
	if errors.Is(err, store.ErrCorrupt) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: The food log could not be read")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'nutri validate' to inspect it or 'nutri restore' to roll back to a backup")
	} else {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to access the food log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the data directory exists and is writable")
	}
	deps.Exit(1)
}
