package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xolan/nutritrack/internal/food"
)

// Issue describes one problem found in a persisted entry.
type Issue struct {
	Index   int // 0-based position in the stored array
	ID      string
	Problem string
}

// Health summarises the state of a persisted food log.
type Health struct {
	Exists       bool
	Readable     bool // the value is a JSON array
	TotalEntries int
	ValidEntries int
	Issues       []Issue
	ParseError   string
}

// IsHealthy reports whether every stored entry is usable.
func (h Health) IsHealthy() bool {
	return h.Readable && len(h.Issues) == 0
}

// Validate inspects a persisted value without failing on bad entries.
// A nil value means nothing has been stored yet, which is healthy.
func Validate(data []byte) Health {
	health := Health{Issues: []Issue{}}

	if data == nil {
		health.Readable = true
		return health
	}
	health.Exists = true

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		health.ParseError = err.Error()
		return health
	}
	health.Readable = true
	health.TotalEntries = len(raw)

	seen := make(map[string]int)
	for i, item := range raw {
		var e food.Entry
		if err := json.Unmarshal(item, &e); err != nil {
			health.Issues = append(health.Issues, Issue{Index: i, Problem: fmt.Sprintf("undecodable entry: %v", err)})
			continue
		}

		problems := entryProblems(e)
		if e.ID != "" {
			if first, dup := seen[e.ID]; dup {
				problems = append(problems, fmt.Sprintf("duplicate id (first at %d)", first))
			} else {
				seen[e.ID] = i
			}
		}

		if len(problems) == 0 {
			health.ValidEntries++
			continue
		}
		health.Issues = append(health.Issues, Issue{
			Index:   i,
			ID:      e.ID,
			Problem: strings.Join(problems, "; "),
		})
	}

	return health
}

func entryProblems(e food.Entry) []string {
	var problems []string
	if e.ID == "" {
		problems = append(problems, "missing id")
	}
	if strings.TrimSpace(e.Name) == "" {
		problems = append(problems, "empty name")
	}
	if !e.Category.IsValid() {
		problems = append(problems, fmt.Sprintf("unknown category %q", e.Category))
	}
	if e.Timestamp.IsZero() {
		problems = append(problems, "missing timestamp")
	}
	return problems
}
