package service

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var csvHeader = []string{"id", "timestamp", "name", "category", "calories", "protein", "carbs", "fat"}

// ExportService writes the log in machine-readable formats
type ExportService struct {
	log *LogService
}

// NewExportService creates a new ExportService
func NewExportService(log *LogService) *ExportService {
	return &ExportService{log: log}
}

// Write exports the entries in r to w and returns how many were written.
// JSON output uses the same shape as the stored log.
func (s *ExportService) Write(w io.Writer, format string, r timeutil.Range) (int, error) {
	entries, err := s.log.Entries()
	if err != nil {
		return 0, err
	}

	selected := make([]food.Entry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Timestamp) {
			selected = append(selected, e)
		}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(selected); err != nil {
			return 0, fmt.Errorf("failed to write json: %w", err)
		}
	case FormatCSV:
		if err := writeCSV(w, selected, s.log.Location()); err != nil {
			return 0, fmt.Errorf("failed to write csv: %w", err)
		}
	default:
		return 0, fmt.Errorf("unknown export format %q (valid: json, csv)", format)
	}

	return len(selected), nil
}

func writeCSV(w io.Writer, entries []food.Entry, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		record := []string{
			e.ID,
			e.Timestamp.In(loc).Format(time.RFC3339),
			e.Name,
			string(e.Category),
			exact(e.Calories),
			exact(e.Protein),
			exact(e.Carbs),
			exact(e.Fat),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exact prints the shortest decimal that round-trips v.
func exact(v float64) string {
	return decimal.NewFromFloat(v).String()
}
