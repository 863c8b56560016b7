package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/storage"
)

// ValidateStorage reports on the health of the persisted food log
func ValidateStorage(deps *cli.Deps) {
	health, err := deps.Services.Log.Validate()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the food log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Storage: %s\n", deps.Services.StorageLocation())

	if !health.Exists {
		_, _ = fmt.Fprintln(deps.Stdout, "No food log yet. Add an entry with 'nutri add'")
		return
	}

	if !health.Readable {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: CORRUPT (not a JSON array of entries)")
		_, _ = fmt.Fprintf(deps.Stdout, "Details: %s\n", health.ParseError)
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Run 'nutri restore' to roll back to a backup")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Entries: %d total, %d valid\n", health.TotalEntries, health.ValidEntries)

	if health.IsHealthy() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: OK")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Status: %d %s with problems\n", len(health.Issues), cli.Pluralize("entry", len(health.Issues)))
	for _, issue := range health.Issues {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatHealthIssue(issue))
	}
	deps.Exit(1)
}

// RestoreBackup lists the available backups and restores one of them.
// With no argument the most recent backup is restored.
func RestoreBackup(deps *cli.Deps, args []string) {
	backups, err := deps.Services.Log.Backups()
	if err != nil {
		if errors.Is(err, service.ErrBackupsUnsupported) {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: This storage backend does not keep backups")
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Backups are written by the file backend (storage_backend = \"file\")")
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, b := range backups {
		label := time.Unix(b.ModTime, 0).In(deps.Services.Log.Location()).Format("2006-01-02 15:04")
		if b.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (%s, most recent)\n", b.Number, b.Path, label)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (%s)\n", b.Number, b.Path, label)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	if err := deps.Services.Log.Restore(backupNum); err != nil {
		if errors.Is(err, storage.ErrNoBackup) {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		} else {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		}
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}
