package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/osutil"
)

func TestRootCommand_NoArgs(t *testing.T) {
	_, stdout, _, exitCode := setupTestDeps(t)

	mustExecute(t)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "No entries found") {
		t.Errorf("expected empty listing, got %q", stdout.String())
	}
}

func TestRootCommand_RejectsArgs(t *testing.T) {
	setupTestDeps(t)

	if err := executeCommand(t, "pizza"); err == nil {
		t.Error("expected an error for an unknown command")
	}
}

func TestValidateCommand(t *testing.T) {
	_, stdout, _, exitCode := setupTestDeps(t)

	mustExecute(t, "add", "Apple", "--calories", "95")
	stdout.Reset()
	mustExecute(t, "validate")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Status: OK") {
		t.Errorf("expected healthy log, got %q", stdout.String())
	}
}

func TestRestoreCommand(t *testing.T) {
	_, stdout, _, exitCode := setupTestDeps(t)

	mustExecute(t, "add", "Apple", "-k", "95")
	mustExecute(t, "delete", "id-0001", "--yes")
	stdout.Reset()
	mustExecute(t, "restore")

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Successfully restored from backup 1") {
		t.Errorf("expected restore message, got %q", stdout.String())
	}
}

func TestRestoreCommand_TooManyArgs(t *testing.T) {
	setupTestDeps(t)

	if err := executeCommand(t, "restore", "1", "2"); err == nil {
		t.Error("expected an error for two backup numbers")
	}
}

func TestOpenDeps_UsesExistingServices(t *testing.T) {
	deps, _, _, _ := setupTestDeps(t)

	got, ok := openDeps()
	if !ok {
		t.Fatal("expected openDeps to succeed")
	}
	if got.Services != deps.Services {
		t.Error("expected the installed services to be reused")
	}
	if openedServices != nil {
		t.Error("expected no services to be opened")
	}
}

func TestOpenDeps_CreatesServices(t *testing.T) {
	deps, _, stderr, exitCode := newTestDeps()
	cli.SetDeps(deps)
	defer cli.ResetDeps()

	osutil.SetProvider(&tempPathProvider{dir: t.TempDir()})
	defer osutil.ResetProvider()

	dataDir := t.TempDir()
	mustExecute(t, "--data-dir", dataDir, "--backend", "sqlite", "list")
	defer closeServices()

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %q)", *exitCode, stderr.String())
	}
	if deps.Services == nil {
		t.Fatal("expected services to be created")
	}
	if deps.Services.DataDir() != dataDir {
		t.Errorf("expected data dir %q, got %q", dataDir, deps.Services.DataDir())
	}
	if !strings.HasSuffix(deps.Services.StorageLocation(), "nutritrack.db") {
		t.Errorf("expected sqlite storage, got %q", deps.Services.StorageLocation())
	}
}

func TestOpenDeps_ConfigDirError(t *testing.T) {
	deps, _, stderr, exitCode := newTestDeps()
	cli.SetDeps(deps)
	defer cli.ResetDeps()

	osutil.SetProvider(&tempPathProvider{err: errors.New("permission denied")})
	defer osutil.ResetProvider()

	mustExecute(t, "list")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Failed to initialize nutri") {
		t.Errorf("expected init error, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "permission denied") {
		t.Errorf("expected details, got %q", stderr.String())
	}
}

func TestOpenDeps_UnknownBackend(t *testing.T) {
	deps, _, stderr, exitCode := newTestDeps()
	cli.SetDeps(deps)
	defer cli.ResetDeps()

	osutil.SetProvider(&tempPathProvider{dir: t.TempDir()})
	defer osutil.ResetProvider()

	mustExecute(t, "--backend", "redis", "list")

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "unknown storage backend") {
		t.Errorf("expected backend error, got %q", stderr.String())
	}
}

func TestCloseServices(t *testing.T) {
	deps, _, _, _ := newTestDeps()
	cli.SetDeps(deps)
	defer cli.ResetDeps()

	osutil.SetProvider(&tempPathProvider{dir: t.TempDir()})
	defer osutil.ResetProvider()

	if _, ok := openDeps(); !ok {
		t.Fatal("expected openDeps to succeed")
	}
	closeServices()

	if deps.Services != nil {
		t.Error("expected services to be cleared")
	}
	if openedServices != nil {
		t.Error("expected openedServices to be cleared")
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-05-01")
	defer SetVersionInfo("", "", "")

	if rootCmd.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", rootCmd.Version)
	}
}
