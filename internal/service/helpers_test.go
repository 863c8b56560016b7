package service

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/nutritrack/internal/config"
	"github.com/xolan/nutritrack/internal/form"
	"github.com/xolan/nutritrack/internal/storage"
)

var testNow = time.Date(2024, time.May, 2, 12, 0, 0, 0, time.UTC)

// newTestServices wires services around a file backend in a temp dir,
// with a fixed clock and sequential ids.
func newTestServices(t *testing.T) *Services {
	t.Helper()

	dir := t.TempDir()
	kv, err := storage.NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV() returned error: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	services, err := NewServicesWithKV(kv, dir, filepath.Join(dir, config.ConfigFile), cfg)
	if err != nil {
		t.Fatalf("NewServicesWithKV() returned error: %v", err)
	}

	seq := 0
	services.Log.Now = func() time.Time { return testNow }
	services.Log.NewID = func() string {
		seq++
		return fmt.Sprintf("id-%04d", seq)
	}
	return services
}

func mustAdd(t *testing.T, s *Services, fields form.Fields) {
	t.Helper()
	if _, err := s.Log.Add(fields); err != nil {
		t.Fatalf("Add(%+v) returned error: %v", fields, err)
	}
}

// addAt adds an entry with a specific timestamp.
func addAt(t *testing.T, s *Services, at time.Time, fields form.Fields) {
	t.Helper()
	prev := s.Log.Now
	s.Log.Now = func() time.Time { return at }
	defer func() { s.Log.Now = prev }()
	mustAdd(t, s, fields)
}
