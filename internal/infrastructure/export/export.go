// Package export renders monthly hour reports as downloadable documents.
package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/timeclock/timeclock-api/internal/core/report"
)

const (
	displayDate = "02/01/2006"
	displayTime = "15:04"

	labelDate       = "Date"
	labelPeriod     = "Period"
	labelHours      = "Hours"
	labelDayTotal   = "DAY TOTAL"
	labelMonthTotal = "MONTH TOTAL"
)

type lineKind int

const (
	lineSession lineKind = iota
	lineDayTotal
)

// line is one table row of an exported report.
type line struct {
	kind   lineKind
	date   string
	period string
	hours  float64
}

// lines flattens the month into session rows followed by a total row per day.
// Times are shown in loc.
func lines(m report.Month, loc *time.Location) []line {
	out := make([]line, 0, len(m.Days)*3)
	for _, d := range m.Days {
		date := d.Date
		if t, err := time.Parse("2006-01-02", d.Date); err == nil {
			date = t.Format(displayDate)
		}
		for _, e := range d.Entries {
			out = append(out, line{
				kind:   lineSession,
				date:   date,
				period: e.Start.In(loc).Format(displayTime) + " - " + e.End.In(loc).Format(displayTime),
				hours:  e.Hours,
			})
		}
		out = append(out, line{kind: lineDayTotal, period: labelDayTotal, hours: d.Hours})
	}
	return out
}

func title(m report.Month) string {
	return fmt.Sprintf("Hours Report - %s / %d", m.Month, m.Year)
}

func filename(m report.Month, ext string) string {
	return fmt.Sprintf("hours-report-%04d-%02d.%s", m.Year, int(m.Month), ext)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
