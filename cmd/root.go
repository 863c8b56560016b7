package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/cli/handlers"
	"github.com/xolan/nutritrack/internal/filter"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "A food logging CLI application",
	Long: `nutri is a personal food log for the terminal. Log what you eat with its
category and macros, browse and filter the history, and keep an eye on your totals.

Usage:
  nutri                                          List all entries and the running total
  nutri add <name> --calories <n> [flags]        Log a new entry
  nutri list [--search text] [--category c]      Search and filter the history
  nutri totals [--from d] [--to d] [--last n]    Show totals and breakdowns
  nutri delete <id>                              Delete an entry (with confirmation)
  nutri report                                   Render a markdown report
  nutri export json|csv                          Export entries
  nutri validate                                 Check the stored food log
  nutri restore [n]                              Restore from backup (default: most recent)
  nutri tui                                      Launch the interactive terminal UI

Categories: Vegetable, Protein, Fruit, Grain, Snack, Liquid, Other`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		deps, ok := openDeps()
		if !ok {
			return
		}
		handlers.ListEntries(deps, filter.Query{})
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored food log",
	Long:  `Validate the stored food log and report entries with a missing id, an empty name, an unknown category or a duplicate id.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		handlers.ValidateStorage(deps)
	},
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore the food log from a backup",
	Long: `Restore the food log from a backup.

The file backend keeps the last 3 versions of the log, taken before every
delete and restore. By default the most recent backup is restored.

Examples:
  nutri restore       Restore from most recent backup
  nutri restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		handlers.RestoreBackup(deps, args)
	},
}

var (
	dataDirFlag string
	backendFlag string

	// openedServices is set when openDeps created the services, so that
	// Execute knows to close them.
	openedServices *service.Services
)

func init() {
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(restoreCmd)

	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory holding the food log (overrides data_dir in config.toml)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", fmt.Sprintf("Storage backend %v (overrides storage_backend in config.toml)", storage.Backends()))
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"nutri version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// openDeps returns the global deps, creating the services from config.toml
// and the persistent flags on first use. On failure the error has already
// been reported and ok is false.
func openDeps() (*cli.Deps, bool) {
	deps := cli.GetDeps()
	if deps.Services != nil {
		return deps, true
	}

	services, err := service.NewServices(service.Options{
		DataDir: dataDirFlag,
		Backend: backendFlag,
		LogOut:  deps.Stderr,
	})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize nutri")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check config.toml with 'nutri config' and the --data-dir and --backend flags")
		deps.Exit(1)
		return nil, false
	}

	deps.Services = services
	openedServices = services
	return deps, true
}

func closeServices() {
	if openedServices == nil {
		return
	}
	_ = openedServices.Close()
	if deps := cli.GetDeps(); deps.Services == openedServices {
		deps.Services = nil
	}
	openedServices = nil
}
