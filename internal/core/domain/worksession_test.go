package domain

import (
	"testing"
	"time"
)

func TestWorkSession_Hours(t *testing.T) {
	start := time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
	end := start.Add(150 * time.Minute)
	before := start.Add(-time.Hour)

	cases := []struct {
		name string
		s    WorkSession
		want float64
	}{
		{"open", WorkSession{StartTime: start}, 0},
		{"closed", WorkSession{StartTime: start, EndTime: &end}, 2.5},
		{"end before start", WorkSession{StartTime: start, EndTime: &before}, 0},
	}
	for _, tc := range cases {
		if got := tc.s.Hours(); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestCalendarDateOf_UsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 4th is still 22:30 on the 3rd at UTC-3.
	instant := time.Date(2025, 3, 4, 1, 30, 0, 0, time.UTC)

	got := CalendarDateOf(instant, loc)
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	s := WorkSession{CalendarDate: got, StartTime: instant}
	if s.DayKey() != "2025-03-03" {
		t.Fatalf("unexpected day key %q", s.DayKey())
	}
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	instant := time.Date(2025, 3, 4, 1, 30, 0, 0, time.UTC)

	start, end := DayBounds(instant, loc)
	if !start.Equal(time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", start)
	}
	if !end.Equal(time.Date(2025, 3, 4, 2, 59, 59, 999999999, time.UTC)) {
		t.Fatalf("unexpected end %v", end)
	}
}
