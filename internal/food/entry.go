// Package food defines the food log data model shared by every layer.
package food

import "time"

// Entry represents a single logged food item.
// Entries are never edited after creation; they are only deleted.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Timestamp time.Time `json:"timestamp"`
}

// Macros holds the four macro fields. It is used both for a single entry
// and for aggregated totals.
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Macros returns the macro fields of the entry.
func (e Entry) Macros() Macros {
	return Macros{
		Calories: e.Calories,
		Protein:  e.Protein,
		Carbs:    e.Carbs,
		Fat:      e.Fat,
	}
}

// ShortID returns the first 8 characters of the entry ID, enough to
// address an entry from the command line.
func (e Entry) ShortID() string {
	if len(e.ID) <= ShortIDLength {
		return e.ID
	}
	return e.ID[:ShortIDLength]
}

// ShortIDLength is the number of ID characters shown in listings.
const ShortIDLength = 8
