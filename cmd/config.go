package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xolan/nutritrack/internal/cli/handlers"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or initialize configuration settings",
	Long: `Display the effective configuration of nutri.

nutri works without a configuration file. The defaults are:
  theme           = "dracula"   TUI color theme
  storage_backend = "file"      file or sqlite
  timezone        = "Local"     IANA name used for timestamps and days
  data_dir        = ""          defaults to the config directory

Configuration file location:
  ~/.config/nutritrack/config.toml          Linux
  ~/Library/Application Support/nutritrack  macOS
  %APPDATA%\nutritrack\config.toml          Windows

Examples:
  nutri config            Show all current settings
  nutri config --init     Create a commented sample config file`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps, ok := openDeps()
		if !ok {
			return
		}
		if initFlag, _ := cmd.Flags().GetBool("init"); initFlag {
			handlers.InitConfig(deps)
			return
		}
		handlers.ShowConfig(deps)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().Bool("init", false, "Create a sample config file")
}
