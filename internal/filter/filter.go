package filter

import (
	"strings"

	"github.com/xolan/nutritrack/internal/food"
)

// Query represents the history search and filter criteria.
// All fields are optional - empty values match all entries.
type Query struct {
	Search   string        // Case-insensitive substring search in entry names
	Category food.Category // Exact category match; empty or CategoryAll matches all
}

// NewQuery creates a new Query with the given criteria.
func NewQuery(search string, category food.Category) Query {
	return Query{
		Search:   search,
		Category: category,
	}
}

// IsEmpty returns true if the query matches every entry
func (q Query) IsEmpty() bool {
	return q.Search == "" && q.allCategories()
}

// Apply returns the entries that match the query, preserving their order.
// The input slice is never modified.
func Apply(entries []food.Entry, q Query) []food.Entry {
	filtered := make([]food.Entry, 0, len(entries))
	for _, e := range entries {
		if q.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// MatchesSearch returns true if the search term is found in the entry's name (case-insensitive).
// An empty search term matches all entries.
func (q Query) MatchesSearch(e food.Entry) bool {
	if q.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), strings.ToLower(q.Search))
}

// MatchesCategory returns true if the entry's category equals the query category.
// CategoryAll and the empty category match all entries.
func (q Query) MatchesCategory(e food.Entry) bool {
	if q.allCategories() {
		return true
	}
	return e.Category == q.Category
}

// Matches returns true if the entry satisfies both the search term and the category.
func (q Query) Matches(e food.Entry) bool {
	return q.MatchesSearch(e) && q.MatchesCategory(e)
}

// Describe renders the active criteria for headings, e.g. `"egg" in Protein`.
// Returns an empty string for an empty query.
func (q Query) Describe() string {
	var parts []string
	if q.Search != "" {
		parts = append(parts, `"`+q.Search+`"`)
	}
	if !q.allCategories() {
		if len(parts) > 0 {
			parts = append(parts, "in")
		}
		parts = append(parts, string(q.Category))
	}
	return strings.Join(parts, " ")
}

func (q Query) allCategories() bool {
	return q.Category == "" || q.Category == food.CategoryAll
}
