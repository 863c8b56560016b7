package main

import (
	"fmt"
	"os"

	"github.com/xolan/nutritrack/cmd"
	"github.com/xolan/nutritrack/internal/config"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is os.Exit, replaced in tests
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run checks the config file before any command runs, then executes the CLI.
// It returns the process exit code.
func run() int {
	configPath, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		return 1
	}
	if _, err := config.LoadOrDefault(configPath); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintf(os.Stderr, "Hint: Fix or remove %s, or run 'nutri config --init' after removing it\n", configPath)
		return 1
	}

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
