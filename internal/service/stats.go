package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/xolan/nutritrack/internal/food"
	"github.com/xolan/nutritrack/internal/stats"
	"github.com/xolan/nutritrack/internal/timeutil"
)

// StatsService provides totals and breakdowns over a time range
type StatsService struct {
	log *LogService
}

// NewStatsService creates a new StatsService
func NewStatsService(log *LogService) *StatsService {
	return &StatsService{log: log}
}

// AllTime summarises the whole log.
func (s *StatsService) AllTime() (*Summary, error) {
	return s.ForRange(timeutil.Range{End: timeutil.EndOfDay(s.log.Now().In(s.log.Location()))})
}

// ForRange summarises the entries whose timestamp falls in r.
func (s *StatsService) ForRange(r timeutil.Range) (*Summary, error) {
	entries, err := s.log.Entries()
	if err != nil {
		return nil, err
	}

	inRange := make([]food.Entry, 0, len(entries))
	for _, e := range entries {
		if r.Contains(e.Timestamp) {
			inRange = append(inRange, e)
		}
	}

	days := stats.ByDay(inRange, s.log.Location())
	totals := stats.Aggregate(inRange)

	return &Summary{
		Range:      r,
		EntryCount: len(inRange),
		Totals:     totals,
		DailyAvg:   divide(totals, len(days)),
		Categories: stats.ByCategory(inRange),
		Days:       days,
	}, nil
}

// divide returns m / n rounded to one decimal place. n == 0 yields zero
// and an overflowed total stays infinite.
func divide(m food.Macros, n int) food.Macros {
	if n == 0 {
		return food.Macros{}
	}
	d := decimal.NewFromInt(int64(n))
	q := func(v float64) float64 {
		if math.IsInf(v, 0) {
			return v
		}
		return decimal.NewFromFloat(v).Div(d).Round(1).InexactFloat64()
	}
	return food.Macros{
		Calories: q(m.Calories),
		Protein:  q(m.Protein),
		Carbs:    q(m.Carbs),
		Fat:      q(m.Fat),
	}
}
