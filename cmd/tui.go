package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/nutritrack/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for nutri.

Views available:
  - Log: running totals, the history with search and category filter,
    and the form for new entries
  - Totals: macro totals with per-category and per-day breakdowns
  - Config: theme selection and current settings

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-3: Jump to specific view
  - n: New entry, /: Search, c/C: Cycle category filter
  - d: Delete the selected entry
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI initializes and runs the TUI application
func runTUI() {
	deps, ok := openDeps()
	if !ok {
		return
	}

	if err := tui.Run(deps.Services); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running TUI: %v\n", err)
		deps.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
