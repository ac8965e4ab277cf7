package analytics

// Point is one day of a daily series.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is a gap-filled daily sequence covering a window: one point per
// calendar day, chronological, zero-valued where the source had no rows.
type Series []Point

// BuildSeries groups events by calendar date, summing values for duplicate
// dates, then walks every day of the window emitting the grouped sum or zero.
// The result always has exactly window.Days() points.
func BuildSeries(events []Event, w Window) Series {
	sums := make(map[string]float64, len(events))
	for _, e := range events {
		sums[DateOf(e.Date).Format(ISODate)] += e.Value
	}
	out := make(Series, 0, w.Days())
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		key := d.Format(ISODate)
		out = append(out, Point{Date: key, Value: sums[key]})
	}
	return out
}

// Total sums every point of the series.
func (s Series) Total() float64 {
	var t float64
	for _, p := range s {
		t += p.Value
	}
	return t
}

// Values returns just the daily values, chronological.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Labels returns the ISO date of every point, chronological.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Date
	}
	return out
}

// ActiveDays counts the days that carry a nonzero value.
func (s Series) ActiveDays() int {
	n := 0
	for _, p := range s {
		if p.Value != 0 {
			n++
		}
	}
	return n
}
