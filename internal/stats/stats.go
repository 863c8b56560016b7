// Package stats computes macro totals and breakdowns over food entries.
package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// CategoryBreakdown contains the totals for a single category
type CategoryBreakdown struct {
	Category   food.Category
	EntryCount int
	Totals     food.Macros
}

// DayBreakdown contains the totals for a single calendar day
type DayBreakdown struct {
	Day        string
	EntryCount int
	Totals     food.Macros
}

// accumulator sums macros in decimal so 0.1 + 0.2 stays 0.3.
type accumulator struct {
	calories, protein, carbs, fat decimal.Decimal
	count                         int
}

func (a *accumulator) add(e food.Entry) {
	a.calories = a.calories.Add(decimal.NewFromFloat(e.Calories))
	a.protein = a.protein.Add(decimal.NewFromFloat(e.Protein))
	a.carbs = a.carbs.Add(decimal.NewFromFloat(e.Carbs))
	a.fat = a.fat.Add(decimal.NewFromFloat(e.Fat))
	a.count++
}

func (a *accumulator) macros() food.Macros {
	return food.Macros{
		Calories: a.calories.InexactFloat64(),
		Protein:  a.protein.InexactFloat64(),
		Carbs:    a.carbs.InexactFloat64(),
		Fat:      a.fat.InexactFloat64(),
	}
}

// Aggregate returns the elementwise sum of the macros of entries.
// The running total shown to the user is always computed over the full
// store, never over a filtered list.
func Aggregate(entries []food.Entry) food.Macros {
	var acc accumulator
	for _, e := range entries {
		acc.add(e)
	}
	return acc.macros()
}

// ByCategory groups entries by category, sorted by calories descending.
// Ties keep the display order of the categories.
func ByCategory(entries []food.Entry) []CategoryBreakdown {
	if len(entries) == 0 {
		return []CategoryBreakdown{}
	}

	groups := make(map[food.Category]*accumulator)
	for _, e := range entries {
		acc, ok := groups[e.Category]
		if !ok {
			acc = &accumulator{}
			groups[e.Category] = acc
		}
		acc.add(e)
	}

	breakdowns := make([]CategoryBreakdown, 0, len(groups))
	for c, acc := range groups {
		breakdowns = append(breakdowns, CategoryBreakdown{
			Category:   c,
			EntryCount: acc.count,
			Totals:     acc.macros(),
		})
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		a, b := breakdowns[i], breakdowns[j]
		if a.Totals.Calories != b.Totals.Calories {
			return a.Totals.Calories > b.Totals.Calories
		}
		ai, bi := categoryRank(a.Category), categoryRank(b.Category)
		if ai != bi {
			return ai < bi
		}
		return a.Category < b.Category
	})

	return breakdowns
}

// unknown categories (from hand-edited data) sort after the known ones
func categoryRank(c food.Category) int {
	if i := c.Index(); i >= 0 {
		return i
	}
	return len(food.Categories())
}

// ByDay groups entries by the calendar day of their timestamp in loc,
// newest day first.
func ByDay(entries []food.Entry, loc *time.Location) []DayBreakdown {
	if len(entries) == 0 {
		return []DayBreakdown{}
	}
	if loc == nil {
		loc = time.Local
	}

	groups := make(map[string]*accumulator)
	for _, e := range entries {
		day := timeutil.DayKey(e.Timestamp, loc)
		acc, ok := groups[day]
		if !ok {
			acc = &accumulator{}
			groups[day] = acc
		}
		acc.add(e)
	}

	breakdowns := make([]DayBreakdown, 0, len(groups))
	for day, acc := range groups {
		breakdowns = append(breakdowns, DayBreakdown{
			Day:        day,
			EntryCount: acc.count,
			Totals:     acc.macros(),
		})
	}

	// DayLayout sorts lexically in date order
	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Day > breakdowns[j].Day
	})

	return breakdowns
}

// Format renders an amount with at most one decimal place and no
// trailing zeros: 350, 3.6, -12.5. Totals that overflow float64 come
// out as +Inf.
func Format(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(1).String()
}
