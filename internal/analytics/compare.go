package analytics

import "math"

// Comparison summarizes a current daily series against its previous-year twin.
type Comparison struct {
	CurrentTotal     float64 `json:"current_total"`
	PrevYearTotal    float64 `json:"prev_year_total"`
	GrowthPercentage float64 `json:"growth_percentage"`
	Average          float64 `json:"average"`
}

// Summarize derives totals, the bounded growth percentage, and the
// per-active-day average. Totals are rounded to whole units; days with a zero
// value do not count toward the average denominator.
func Summarize(current, previous Series) Comparison {
	c := Comparison{
		CurrentTotal:  math.Round(current.Total()),
		PrevYearTotal: math.Round(previous.Total()),
	}
	c.GrowthPercentage = Growth(c.CurrentTotal, c.PrevYearTotal)
	if days := current.ActiveDays(); days > 0 {
		c.Average = math.Round(current.Total() / float64(days))
	}
	return c
}

// Growth returns the period-over-period change in percent, rounded to one
// decimal and clamped to [-100, 100]. A zero previous total always yields 0;
// the chart renders "new data" rather than an unbounded spike.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	g := round1((current - previous) / previous * 100)
	if g > 100 {
		return 100
	}
	if g < -100 {
		return -100
	}
	return g
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
