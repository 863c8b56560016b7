package handlers

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xolan/nutritrack/internal/food"
)

func TestExportEntries_JSON(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)
	seed(t, deps)

	ExportEntries(deps, "JSON", allTime())

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %q)", *exitCode, stderr.String())
	}
	var entries []food.Entry
	if err := json.Unmarshal(stdout.Bytes(), &entries); err != nil {
		t.Fatalf("expected valid JSON, got error %v for %q", err, stdout.String())
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "Chicken" {
		t.Errorf("expected newest entry first, got %q", entries[0].Name)
	}
	if !strings.Contains(stderr.String(), "Exported 2 entries (all time)") {
		t.Errorf("expected count on stderr, got %q", stderr.String())
	}
}

func TestExportEntries_CSV(t *testing.T) {
	deps, stdout, _, exitCode := setupTestDeps(t)
	seed(t, deps)

	ExportEntries(deps, "csv", allTime())

	if *exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", *exitCode)
	}
	records, err := csv.NewReader(strings.NewReader(stdout.String())).ReadAll()
	if err != nil {
		t.Fatalf("expected valid CSV, got error %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d records", len(records))
	}
	if records[0][0] != "id" || records[0][7] != "fat" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][2] != "Chicken" || records[1][4] != "150" {
		t.Errorf("unexpected first row %v", records[1])
	}
}

func TestExportEntries_UnknownFormat(t *testing.T) {
	deps, stdout, stderr, exitCode := setupTestDeps(t)

	ExportEntries(deps, "xml", allTime())

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if !strings.Contains(stderr.String(), "Unknown export format 'xml'") {
		t.Errorf("expected format error, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("expected no stdout, got %q", stdout.String())
	}
}
