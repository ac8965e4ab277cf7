// Package analytics holds the pure aggregation engine behind the dashboard:
// comparative date windows, gap-filled daily series, the day-of-week heatmap,
// and the category classifier. Nothing in here performs I/O; every function is
// a pure transformation of already-fetched rows and is safe to call
// concurrently.
package analytics

import "time"

// ISODate is the wire format for calendar dates.
const ISODate = "2006-01-02"

// Event is one raw transactional row handed to the engine.
type Event struct {
	Date  time.Time
	Hour  int // hour of day, -1 when the row has no time component
	Value float64
	Code  string
}

// DateOf truncates a timestamp to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
