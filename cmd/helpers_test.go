package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/config"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/storage"
)

var testNow = time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC)

// tempPathProvider points the config dir at a temp directory
type tempPathProvider struct {
	dir string
	err error
}

func (p *tempPathProvider) UserConfigDir() (string, error) {
	return p.dir, p.err
}

func (p *tempPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// setupTestDeps installs deps backed by a file store in a temp directory
func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	dir := t.TempDir()
	kv, err := storage.NewFileKV(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	services, err := service.NewServicesWithKV(kv, dir, filepath.Join(dir, config.ConfigFile), cfg)
	if err != nil {
		t.Fatal(err)
	}
	seq := 0
	services.Log.Now = func() time.Time { return testNow }
	services.Log.NewID = func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}

	deps, stdout, stderr, exitCode := newTestDeps()
	deps.Services = services
	cli.SetDeps(deps)
	t.Cleanup(cli.ResetDeps)
	return deps, stdout, stderr, exitCode
}

func newTestDeps() (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0
	return &cli.Deps{
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  strings.NewReader(""),
		Exit:   func(code int) { exitCode = code },
	}, stdout, stderr, &exitCode
}

// executeCommand runs the root command with args after resetting every
// flag, since cobra keeps flag values between executions.
func executeCommand(t *testing.T, args ...string) error {
	t.Helper()
	resetFlags(rootCmd)
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return rootCmd.Execute()
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func mustExecute(t *testing.T, args ...string) {
	t.Helper()
	if err := executeCommand(t, args...); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
}
