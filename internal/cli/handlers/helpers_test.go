package handlers

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/nutritrack/internal/cli"
	"github.com/xolan/nutritrack/internal/config"
	"github.com/xolan/nutritrack/internal/form"
	"github.com/xolan/nutritrack/internal/service"
	"github.com/xolan/nutritrack/internal/storage"
	"github.com/xolan/nutritrack/internal/store"
)

var testNow = time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC)

// setupTestDeps creates deps backed by a file store in a temp directory
func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	kv, err := storage.NewFileKV(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	return newDeps(t, kv, tmpDir)
}

// setupMemoryDeps creates deps backed by the in-memory store, which keeps no backups
func setupMemoryDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	return newDeps(t, storage.NewMemoryKV(), t.TempDir())
}

// setupCorruptDeps creates deps whose food log is not valid JSON
func setupCorruptDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	kv, err := storage.NewFileKV(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(kv.Path(store.Key), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	return newDeps(t, kv, tmpDir)
}

func newDeps(t *testing.T, kv storage.KV, dir string) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
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

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
	}

	return deps, stdout, stderr, &exitCode
}

// seed adds the two sample entries: Apple (Fruit) then Chicken (Protein).
func seed(t *testing.T, deps *cli.Deps) {
	t.Helper()
	for _, f := range []form.Fields{
		{Name: "Apple", Category: "Fruit", Calories: "200", Protein: "4", Carbs: "40", Fat: "0"},
		{Name: "Chicken", Category: "Protein", Calories: "150", Protein: "16", Carbs: "0", Fat: "10"},
	} {
		if _, err := deps.Services.Log.Add(f); err != nil {
			t.Fatalf("Add(%+v) returned error: %v", f, err)
		}
	}
}
