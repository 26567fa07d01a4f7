// Package report reduces work sessions into day-level and month-level hour
// totals. It performs no I/O: callers fetch the sessions of a month (sorted by
// calendar date, then start time) and hand them to Summarize.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/timeclock/timeclock-api/internal/core/domain"
)

const (
	minYear = 1970
	maxYear = 9999
)

// Entry is a closed session as it appears in a report.
type Entry struct {
	Start time.Time
	End   time.Time
	Hours float64 // rounded to 2 decimals
}

// Day groups the sessions attributed to one calendar date.
type Day struct {
	Date    string  // YYYY-MM-DD
	Hours   float64 // rounded to 2 decimals
	Entries []Entry // closed sessions only, in input order
}

// Month is the aggregated report for a calendar month.
type Month struct {
	Year  int
	Month time.Month
	Days  []Day
	Total float64 // round(sum of raw hours), not the sum of rounded days
}

// Summarize groups sessions by calendar date in first-encounter order and sums
// the hours of closed sessions. Open sessions add nothing but still make their
// day appear in the output.
func Summarize(sessions []domain.WorkSession) Month {
	days := make([]Day, 0)
	raw := make([]float64, 0)
	index := make(map[string]int)

	for _, s := range sessions {
		key := s.DayKey()
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, Day{Date: key, Entries: []Entry{}})
			raw = append(raw, 0)
		}
		if s.IsOpen() {
			continue
		}
		h := s.Hours()
		raw[i] += h
		days[i].Entries = append(days[i].Entries, Entry{
			Start: s.StartTime,
			End:   *s.EndTime,
			Hours: Round2(h),
		})
	}

	var total float64
	for i := range days {
		days[i].Hours = Round2(raw[i])
		total += raw[i]
	}

	return Month{Days: days, Total: Round2(total)}
}

// Build validates the period and summarizes the sessions for it.
func Build(year, month int, sessions []domain.WorkSession) (Month, error) {
	if err := ValidatePeriod(year, month); err != nil {
		return Month{}, err
	}
	m := Summarize(sessions)
	m.Year = year
	m.Month = time.Month(month)
	return m, nil
}

// ValidatePeriod checks that year and month describe a real calendar month.
func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", domain.ErrInvalidPeriod)
	}
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year must be between %d and %d", domain.ErrInvalidPeriod, minYear, maxYear)
	}
	return nil
}

// MonthRange returns the calendar date range [from, to) covering the month.
func MonthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
