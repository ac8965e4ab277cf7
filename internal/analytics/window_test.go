package analytics

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 14, 30, 0, 0, time.UTC) }
}

func TestResolveWallClock(t *testing.T) {
	r := Resolver{Now: fixedNow(2025, time.June, 15)}
	p := r.Resolve(WallClock, time.Time{}, 7)

	if got, want := p.Current.Start, date(2025, time.June, 9); !got.Equal(want) {
		t.Fatalf("current start: got %v want %v", got, want)
	}
	if got, want := p.Current.End, date(2025, time.June, 15); !got.Equal(want) {
		t.Fatalf("current end: got %v want %v", got, want)
	}
	if got := p.Current.Days(); got != 7 {
		t.Fatalf("days: got %d want 7", got)
	}
	if got, want := p.Previous.Start, date(2024, time.June, 9); !got.Equal(want) {
		t.Fatalf("previous start: got %v want %v", got, want)
	}
	if got, want := p.Previous.End, date(2024, time.June, 15); !got.Equal(want) {
		t.Fatalf("previous end: got %v want %v", got, want)
	}
}

func TestResolveLatestInData(t *testing.T) {
	r := Resolver{Now: fixedNow(2025, time.June, 15)}
	latest := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	p := r.Resolve(LatestInData, latest, 30)

	if got, want := p.Current.End, date(2025, time.March, 10); !got.Equal(want) {
		t.Fatalf("current end: got %v want %v", got, want)
	}
	if got, want := p.Current.Start, date(2025, time.February, 9); !got.Equal(want) {
		t.Fatalf("current start: got %v want %v", got, want)
	}
	if got := p.Current.Days(); got != 30 {
		t.Fatalf("days: got %d want 30", got)
	}
}

func TestResolveLatestInDataZeroFallsBackToWallClock(t *testing.T) {
	r := Resolver{Now: fixedNow(2025, time.June, 15)}
	p := r.Resolve(LatestInData, time.Time{}, 7)

	if got, want := p.Current.End, date(2025, time.June, 15); !got.Equal(want) {
		t.Fatalf("current end: got %v want %v", got, want)
	}
}

func TestResolveClampedPullsFutureEndBack(t *testing.T) {
	r := Resolver{Now: fixedNow(2025, time.June, 15)}
	latest := date(2025, time.June, 25) // bookings placed ahead of time
	p := r.ResolveClamped(LatestInData, latest, 7)

	if got, want := p.Current.End, date(2025, time.June, 15); !got.Equal(want) {
		t.Fatalf("current end: got %v want %v", got, want)
	}
	if got, want := p.Current.Start, date(2025, time.June, 9); !got.Equal(want) {
		t.Fatalf("current start: got %v want %v", got, want)
	}
	if got, want := p.Previous.End, date(2024, time.June, 15); !got.Equal(want) {
		t.Fatalf("previous end: got %v want %v", got, want)
	}
}

func TestResolveClampedLeavesPastWindowAlone(t *testing.T) {
	r := Resolver{Now: fixedNow(2025, time.June, 15)}
	latest := date(2025, time.June, 1)
	p := r.ResolveClamped(LatestInData, latest, 7)

	if got, want := p.Current.End, date(2025, time.June, 1); !got.Equal(want) {
		t.Fatalf("current end: got %v want %v", got, want)
	}
}

func TestPreviousYearLeapDay(t *testing.T) {
	// A window ending on Feb 29 has no same-date twin in the prior year;
	// both bounds step back one extra day.
	w := Window{Start: date(2024, time.February, 23), End: date(2024, time.February, 29)}
	prev := previousYear(w)

	if got, want := prev.Start, date(2023, time.February, 22); !got.Equal(want) {
		t.Fatalf("previous start: got %v want %v", got, want)
	}
	if got, want := prev.End, date(2023, time.February, 28); !got.Equal(want) {
		t.Fatalf("previous end: got %v want %v", got, want)
	}
	if got, want := prev.Days(), w.Days(); got != want {
		t.Fatalf("window length changed: got %d want %d", got, want)
	}
}

func TestPreviousYearCrossingLeapDay(t *testing.T) {
	// Leap day inside the window but not on a bound shifts cleanly.
	w := Window{Start: date(2024, time.February, 26), End: date(2024, time.March, 3)}
	prev := previousYear(w)

	if got, want := prev.Start, date(2023, time.February, 26); !got.Equal(want) {
		t.Fatalf("previous start: got %v want %v", got, want)
	}
	if got, want := prev.End, date(2023, time.March, 3); !got.Equal(want) {
		t.Fatalf("previous end: got %v want %v", got, want)
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: date(2025, time.June, 1), End: date(2025, time.June, 7)}

	if !w.Contains(time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC)) {
		t.Fatal("start day should be inside")
	}
	if !w.Contains(date(2025, time.June, 7)) {
		t.Fatal("end day should be inside")
	}
	if w.Contains(date(2025, time.June, 8)) {
		t.Fatal("day after end should be outside")
	}
	if w.Contains(date(2025, time.May, 31)) {
		t.Fatal("day before start should be outside")
	}
}
