package handlers

import (
	"fmt"

	"github.com/xolan/nutritrack/internal/cli"
)

// ShowConfig displays the effective configuration
func ShowConfig(deps *cli.Deps) {
	cs := deps.Services.Config
	cfg := cs.Get()

	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", cs.GetPath())
	if cs.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Found")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Not found (using defaults)")
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Settings:")
	_, _ = fmt.Fprintf(deps.Stdout, "  theme = %q\n", cfg.Theme)
	_, _ = fmt.Fprintf(deps.Stdout, "  storage_backend = %q\n", cfg.StorageBackend)
	_, _ = fmt.Fprintf(deps.Stdout, "  timezone = %q\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "  data_dir = %q\n", cfg.DataDir)
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintf(deps.Stdout, "Food log: %s\n", deps.Services.StorageLocation())

	if !cs.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'nutri config --init' to create a sample config file")
	}
}

// InitConfig writes a commented sample config file
func InitConfig(deps *cli.Deps) {
	cs := deps.Services.Config
	if err := cs.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created sample config file at %s\n", cs.GetPath())
	_, _ = fmt.Fprintln(deps.Stdout, "Edit it and uncomment the settings you want to change")
}
