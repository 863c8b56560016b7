package handlers

import (
	"os"
	"strings"
	"testing"
)

func TestValidateStorage_NoLog(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	ValidateStorage(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "No food log yet") {
		t.Errorf("expected no log message, got %q", stdout.String())
	}
}

func TestValidateStorage_Healthy(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)

	ValidateStorage(deps)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	out := stdout.String()
	if !strings.Contains(out, "Entries: 2 total, 2 valid") {
		t.Errorf("expected entry counts, got %q", out)
	}
	if !strings.Contains(out, "Status: OK") {
		t.Errorf("expected OK status, got %q", out)
	}
	if !strings.Contains(out, "food-entries.json") {
		t.Errorf("expected storage path, got %q", out)
	}
}

func TestValidateStorage_Issues(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	path := deps.Services.StorageLocation()
	data := `[{"id":"a","name":"Egg","category":"Protein","calories":78,"protein":6,"carbs":0,"fat":5,"timestamp":"2024-05-01T08:00:00Z"},` +
		`{"id":"a","name":"","category":"Meat","calories":1,"protein":0,"carbs":0,"fat":0,"timestamp":"2024-05-01T09:00:00Z"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	ValidateStorage(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	out := stdout.String()
	if !strings.Contains(out, "Entries: 2 total, 1 valid") {
		t.Errorf("expected entry counts, got %q", out)
	}
	if !strings.Contains(out, "Status: 1 entry with problems") {
		t.Errorf("expected problem summary, got %q", out)
	}
	if !strings.Contains(out, "Entry 2 (a):") {
		t.Errorf("expected issue line, got %q", out)
	}
}

func TestValidateStorage_Corrupt(t *testing.T) {
	deps, stdout, _, exitCode := setupCorruptDeps(t)

	ValidateStorage(deps)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "Status: CORRUPT") {
		t.Errorf("expected corrupt status, got %q", stdout.String())
	}
}

func TestRestoreBackup_NoBackups(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)

	RestoreBackup(deps, nil)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stdout.String(), "No backups available") {
		t.Errorf("expected no backups message, got %q", stdout.String())
	}
}

func TestRestoreBackup_AfterDelete(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)
	DeleteEntry(deps, "id-0001", true)
	stdout.Reset()

	RestoreBackup(deps, nil)

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	out := stdout.String()
	if !strings.Contains(out, "Available backups:") {
		t.Errorf("expected backup list, got %q", out)
	}
	if !strings.Contains(out, "most recent") {
		t.Errorf("expected most recent marker, got %q", out)
	}
	if !strings.Contains(out, "Successfully restored from backup 1") {
		t.Errorf("expected success message, got %q", out)
	}

	entries, err := deps.Services.Log.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected deleted entry back, got %d entries", len(entries))
	}
}

func TestRestoreBackup_InvalidNumber(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"abc", "Invalid backup number 'abc'"},
		{"0", "must be between 1 and 3"},
		{"9", "must be between 1 and 3"},
		{"2", "Backup 2 does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			deps, _, stderr, exitCode := setupTestDeps(t)
			seed(t, deps)
			DeleteEntry(deps, "id-0001", true)

			RestoreBackup(deps, []string{tt.arg})

			if *exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", *exitCode)
			}
			if !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("expected %q in stderr, got %q", tt.want, stderr.String())
			}
		})
	}
}

func TestRestoreBackup_Unsupported(t *testing.T) {
	deps, _, stderr, exitCode := setupMemoryDeps(t)

	RestoreBackup(deps, nil)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "does not keep backups") {
		t.Errorf("expected unsupported message, got %q", stderr.String())
	}
}

func TestRestoreBackup_RecoversCorruptLog(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)
	DeleteEntry(deps, "id-0002", true)

	if err := os.WriteFile(deps.Services.StorageLocation(), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	stdout.Reset()

	RestoreBackup(deps, []string{"1"})

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	entries, err := deps.Services.Log.Entries()
	if err != nil {
		t.Fatalf("expected readable log after restore, got %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}
