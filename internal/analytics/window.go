package analytics

import "time"

// ReferenceMode selects the date that anchors a trend window.
type ReferenceMode int

const (
	// WallClock anchors the window at the real current date.
	WallClock ReferenceMode = iota
	// LatestInData anchors the window at the most recent date present in the
	// source table. Callers supply that date; a zero value falls back to the
	// wall clock.
	LatestInData
)

// Window is a closed calendar date range, Start <= End.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days the window covers, inclusive.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Contains reports whether the date of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Period pairs a current window with the same window shifted one year back,
// day for day.
type Period struct {
	Current  Window
	Previous Window
}

// Resolver derives comparative periods. Now is swappable for tests and
// defaults to time.Now.
type Resolver struct {
	Now func() time.Time
}

func (r Resolver) today() time.Time {
	if r.Now != nil {
		return DateOf(r.Now())
	}
	return DateOf(time.Now())
}

// Resolve builds the comparative period for a window of the given length in
// days, anchored per mode. latest is the most recent date found in the data
// source and is only consulted in LatestInData mode.
func (r Resolver) Resolve(mode ReferenceMode, latest time.Time, days int) Period {
	ref := r.today()
	if mode == LatestInData && !latest.IsZero() {
		ref = DateOf(latest)
	}
	cur := Window{Start: ref.AddDate(0, 0, -(days - 1)), End: ref}
	return Period{Current: cur, Previous: previousYear(cur)}
}

// ResolveClamped is Resolve with the additional guarantee that the current
// window never extends past today: a future end date is pulled back to today
// and the start recomputed, keeping the window length.
func (r Resolver) ResolveClamped(mode ReferenceMode, latest time.Time, days int) Period {
	p := r.Resolve(mode, latest, days)
	today := r.today()
	if p.Current.End.After(today) {
		cur := Window{Start: today.AddDate(0, 0, -(days - 1)), End: today}
		p = Period{Current: cur, Previous: previousYear(cur)}
	}
	return p
}

// previousYear shifts a window back exactly one year, same month and day for
// both bounds. When either shifted bound would not exist (Feb 29 landing on a
// non-leap year) both bounds step back one extra day, so the pair stays
// ordered and no invalid date is ever produced.
func previousYear(w Window) Window {
	start, okStart := sameDateLastYear(w.Start)
	end, okEnd := sameDateLastYear(w.End)
	if !okStart || !okEnd {
		start = time.Date(w.Start.Year()-1, w.Start.Month(), w.Start.Day()-1, 0, 0, 0, 0, time.UTC)
		end = time.Date(w.End.Year()-1, w.End.Month(), w.End.Day()-1, 0, 0, 0, 0, time.UTC)
	}
	return Window{Start: start, End: end}
}

func sameDateLastYear(d time.Time) (time.Time, bool) {
	shifted := time.Date(d.Year()-1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	// time.Date normalizes Feb 29 to Mar 1 on non-leap years.
	if shifted.Month() != d.Month() || shifted.Day() != d.Day() {
		return time.Time{}, false
	}
	return shifted, true
}
