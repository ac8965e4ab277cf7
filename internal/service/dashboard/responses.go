package dashboard

import (
	"github.com/srihari7072/golfzon-dashboard/internal/analytics"
	"github.com/srihari7072/golfzon-dashboard/internal/store/reservations"
)

// The field names in these structs are load-bearing: the dashboard front end
// reads them verbatim. Every value is a plain JSON primitive; dates are ISO
// strings, never native date objects.

// DateRange echoes the resolved current window.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Totals is the comparative summary block shared by all trend charts.
type Totals struct {
	CurrentTotal     float64 `json:"current_total"`
	PrevYearTotal    float64 `json:"prev_year_total"`
	GrowthPercentage float64 `json:"growth_percentage"`
}

// SalesTrend is the payment chart payload.
type SalesTrend struct {
	CurrentData      []float64 `json:"current_data"`
	PrevYearData     []float64 `json:"prev_year_data"`
	Labels           []string  `json:"labels"`
	Totals           Totals    `json:"totals"`
	AverageUnitPrice float64   `json:"average_unit_price"`
	DaysWithSales    int       `json:"days_with_sales"`
	TotalDays        int       `json:"total_days"`
	Period           string    `json:"period"`
	DateRange        DateRange `json:"date_range"`
}

// SectionTotals is the part1/part2/part3 visitor split by booked tee hour.
type SectionTotals struct {
	Part1 float64 `json:"part1"`
	Part2 float64 `json:"part2"`
	Part3 float64 `json:"part3"`
}

// GenderRatio covers the whole visitor table, not just the window.
type GenderRatio struct {
	MalePercentage   float64 `json:"male_percentage"`
	FemalePercentage float64 `json:"female_percentage"`
	MaleCount        float64 `json:"male_count"`
	FemaleCount      float64 `json:"female_count"`
	TotalCount       float64 `json:"total_count"`
}

// VisitorTrend is the visitor chart payload.
type VisitorTrend struct {
	CurrentData   []float64     `json:"current_data"`
	PrevYearData  []float64     `json:"prev_year_data"`
	Labels        []string      `json:"labels"`
	Totals        Totals        `json:"totals"`
	SectionTotals SectionTotals `json:"section_totals"`
	GenderRatio   GenderRatio   `json:"gender_ratio"`
	Period        string        `json:"period"`
	DateRange     DateRange     `json:"date_range"`
}

// OperationBreakdown gives each part's percentage share of in-slot bookings.
type OperationBreakdown struct {
	Part1 float64 `json:"part1"`
	Part2 float64 `json:"part2"`
	Part3 float64 `json:"part3"`
	Total float64 `json:"total"`
}

// ReservationTrend is the reservation chart payload.
type ReservationTrend struct {
	CurrentData        []float64          `json:"current_data"`
	PrevYearData       []float64          `json:"prev_year_data"`
	Labels             []string           `json:"labels"`
	Totals             Totals             `json:"totals"`
	OperationBreakdown OperationBreakdown `json:"operation_breakdown"`
	Period             string             `json:"period"`
	DateRange          DateRange          `json:"date_range"`
}

// Heatmap is the weekly grid payload; CellDetails always holds all 28 keys.
type Heatmap struct {
	Heatmap     analytics.Grid                  `json:"heatmap"`
	CellDetails map[string]analytics.CellDetail `json:"cell_details"`
	DateRange   DateRange                       `json:"date_range"`
}

// CategoryShare is one slice of a composition pie.
type CategoryShare struct {
	Label      string  `json:"label,omitempty"`
	Count      float64 `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Composition carries the three reservation pies. Each group maps canonical
// keys to shares plus a "total" entry.
type Composition struct {
	ByType    map[string]any `json:"by_type"`
	ByTime    map[string]any `json:"by_time"`
	ByChannel map[string]any `json:"by_channel"`
}

// AgeGroups is the member age distribution.
type AgeGroups struct {
	Groups     map[string]CategoryShare `json:"age_groups"`
	TotalCount float64                  `json:"total_count"`
}

// PerformanceCard is one KPI card: cumulative and month-to-date values with
// signed year-over-year trends.
type PerformanceCard struct {
	Current      float64 `json:"current"`
	Monthly      float64 `json:"monthly"`
	CurrentTrend float64 `json:"current_trend"`
	MonthlyTrend float64 `json:"monthly_trend"`
}

// Performance is the indicator card payload.
type Performance struct {
	SalesPerformance PerformanceCard `json:"sales_performance"`
	AvgOrderValue    PerformanceCard `json:"avg_order_value"`
	UtilizationRate  PerformanceCard `json:"utilization_rate"`
}

// Gauge is a current-vs-capacity pair.
type Gauge struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// TodayOverview is the today's-reservations panel.
type TodayOverview struct {
	Reservations       Gauge                 `json:"reservations"`
	TeeTime            map[string]Gauge      `json:"teeTime"`
	ReservationDetails []reservations.Detail `json:"reservationDetails"`
}

func rangeOf(w analytics.Window) DateRange {
	return DateRange{
		Start: w.Start.Format(analytics.ISODate),
		End:   w.End.Format(analytics.ISODate),
	}
}
