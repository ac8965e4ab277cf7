package analytics

import (
	"testing"
	"time"
)

func TestBuildSeriesGapFills(t *testing.T) {
	w := Window{Start: date(2025, time.June, 1), End: date(2025, time.June, 5)}
	events := []Event{
		{Date: date(2025, time.June, 2), Hour: -1, Value: 100},
		{Date: date(2025, time.June, 4), Hour: -1, Value: 250},
	}

	s := BuildSeries(events, w)

	if len(s) != 5 {
		t.Fatalf("length: got %d want 5", len(s))
	}
	want := []float64{0, 100, 0, 250, 0}
	for i, v := range s.Values() {
		if v != want[i] {
			t.Fatalf("day %d: got %v want %v", i, v, want[i])
		}
	}
	if s[0].Date != "2025-06-01" || s[4].Date != "2025-06-05" {
		t.Fatalf("labels wrong: %v", s.Labels())
	}
}

func TestBuildSeriesSumsDuplicateDates(t *testing.T) {
	w := Window{Start: date(2025, time.June, 1), End: date(2025, time.June, 1)}
	events := []Event{
		{Date: time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC), Value: 30},
		{Date: time.Date(2025, time.June, 1, 17, 0, 0, 0, time.UTC), Value: 70},
	}

	s := BuildSeries(events, w)

	if len(s) != 1 {
		t.Fatalf("length: got %d want 1", len(s))
	}
	if s[0].Value != 100 {
		t.Fatalf("sum: got %v want 100", s[0].Value)
	}
}

func TestBuildSeriesEmptyInput(t *testing.T) {
	w := Window{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}
	s := BuildSeries(nil, w)

	if len(s) != 7 {
		t.Fatalf("length: got %d want 7", len(s))
	}
	if s.Total() != 0 {
		t.Fatalf("total: got %v want 0", s.Total())
	}
	if s.ActiveDays() != 0 {
		t.Fatalf("active days: got %d want 0", s.ActiveDays())
	}
}

func TestSeriesActiveDays(t *testing.T) {
	s := Series{
		{Date: "2025-06-01", Value: 0},
		{Date: "2025-06-02", Value: 5},
		{Date: "2025-06-03", Value: 0},
		{Date: "2025-06-04", Value: 3},
	}
	if got := s.ActiveDays(); got != 2 {
		t.Fatalf("active days: got %d want 2", got)
	}
	if got := s.Total(); got != 8 {
		t.Fatalf("total: got %v want 8", got)
	}
}
