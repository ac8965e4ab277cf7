package analytics

import "fmt"

// The four fixed time slots, half-open hour ranges on the 24h clock. Rows
// whose hour falls outside [5,20) never reach the grid.
var slots = [...]struct {
	Key   string
	Label string
	From  int
	To    int
}{
	{"early_morning", "Early Morning(5 AM -7 AM)", 5, 8},
	{"morning", "Morning(8 AM -12 PM)", 8, 13},
	{"afternoon", "Afternoon(13 PM -16 PM)", 13, 17},
	{"night", "Night(17 PM -19 PM)", 17, 20},
}

var (
	dayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	dayLong  = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
)

// Grid is the 4 time-slot x 7 day-of-week heatmap, Sunday first.
type Grid struct {
	Headers []string  `json:"headers"`
	Rows    []GridRow `json:"rows"`
}

// GridRow is one time slot across the week.
type GridRow struct {
	Label   string    `json:"label"`
	SlotKey string    `json:"slot_key"`
	Data    []float64 `json:"data"`
}

// HourValue is one hour of a cell's breakdown.
type HourValue struct {
	HourLabel string  `json:"hour_label"`
	Value     float64 `json:"value"`
}

// CellDetail describes a single grid cell, with every hour of its slot listed
// in ascending order even when zero.
type CellDetail struct {
	DayName         string      `json:"day_name"`
	DateOrLabel     string      `json:"date_or_label"`
	TimeSlot        string      `json:"time_slot"`
	Total           float64     `json:"total"`
	HourlyBreakdown []HourValue `json:"hourly_breakdown"`
}

// BuildHeatmap buckets timed events into the fixed grid. The day of week
// comes from each event's own date, so the grid aggregates by weekday across
// the whole window rather than per specific date. All 28 cells are always
// present in both the grid and the detail map, keyed "<dow>_<slot>" with
// 0=Sunday.
func BuildHeatmap(events []Event, w Window) (Grid, map[string]CellDetail) {
	var byHour [7][24]float64
	for _, e := range events {
		if e.Hour < 5 || e.Hour >= 20 {
			continue
		}
		if !w.Contains(e.Date) {
			continue
		}
		dow := int(DateOf(e.Date).Weekday())
		byHour[dow][e.Hour] += e.Value
	}

	grid := Grid{Headers: dayShort[:], Rows: make([]GridRow, len(slots))}
	details := make(map[string]CellDetail, len(slots)*7)

	for si, slot := range slots {
		row := GridRow{Label: slot.Label, SlotKey: slot.Key, Data: make([]float64, 7)}
		for dow := 0; dow < 7; dow++ {
			breakdown := make([]HourValue, 0, slot.To-slot.From)
			var total float64
			for h := slot.From; h < slot.To; h++ {
				v := byHour[dow][h]
				total += v
				breakdown = append(breakdown, HourValue{HourLabel: hourLabel(h), Value: v})
			}
			row.Data[dow] = total
			details[fmt.Sprintf("%d_%s", dow, slot.Key)] = CellDetail{
				DayName:         dayLong[dow],
				DateOrLabel:     dayShort[dow],
				TimeSlot:        slot.Key,
				Total:           total,
				HourlyBreakdown: breakdown,
			}
		}
		grid.Rows[si] = row
	}
	return grid, details
}

// hourLabel formats an hour of day in 12-hour clock form, e.g. "8 AM".
func hourLabel(h int) string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return fmt.Sprintf("%d AM", h)
	case h == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", h-12)
	}
}
