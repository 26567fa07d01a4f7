package domain

import (
	"errors"
	"time"
)

// DateLayout is the ISO layout used for calendar date keys.
const DateLayout = "2006-01-02"

var ErrAlreadyClockedIn = errors.New("already clocked in")
var ErrNoOpenSession = errors.New("no open session to close")
var ErrInvalidPeriod = errors.New("invalid report period")
var ErrUnsupportedFormat = errors.New("unsupported export format")

// WorkSession is a single clock-in/clock-out period of a user.
//
// CalendarDate is fixed at creation from the local day the session was opened
// in. It is stored as midnight UTC of that Y-M-D so that it behaves as a plain
// date regardless of the timezone it is read back in.
type WorkSession struct {
	ID           string     `json:"id" bson:"_id"`
	UserID       string     `json:"user_id" bson:"user_id"`
	CalendarDate time.Time  `json:"date" bson:"calendar_date"`
	StartTime    time.Time  `json:"start_time" bson:"start_time"`
	EndTime      *time.Time `json:"end_time" bson:"end_time"`
	Open         bool       `json:"-" bson:"open"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

// IsOpen reports whether the session has not been clocked out yet.
func (s WorkSession) IsOpen() bool {
	return s.EndTime == nil
}

// DayKey returns the calendar date formatted as YYYY-MM-DD.
func (s WorkSession) DayKey() string {
	return s.CalendarDate.UTC().Format(DateLayout)
}

// Hours returns the duration of a closed session in fractional hours.
// Open sessions and sessions whose end precedes their start yield zero.
func (s WorkSession) Hours() float64 {
	if s.EndTime == nil {
		return 0
	}
	d := s.EndTime.Sub(s.StartTime)
	if d < 0 {
		return 0
	}
	return d.Hours()
}

// CalendarDateOf returns the calendar date of instant t as observed in loc.
func CalendarDateOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the first and last instant of the local day containing t.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}
