package reservations

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/srihari7072/golfzon-dashboard/internal/analytics"
	"github.com/srihari7072/golfzon-dashboard/internal/store"
)

// CodeCount is one raw category code with its row count.
type CodeCount struct {
	Code  string
	Count int
}

// ChannelRow is one raw booking channel with its row count. Classification
// needs both the numeric channel code and the free-text detail.
type ChannelRow struct {
	CodeID int
	Detail string
	Count  int
}

// LeadCount is a number of bookings placed DaysAhead days before play.
type LeadCount struct {
	DaysAhead int
	Count     int
}

// Detail is one reservation line for the today view.
type Detail struct {
	ID      string `json:"id"`
	Person  string `json:"person"`
	Date    string `json:"date"`
	TeeTime string `json:"teeTime"`
	Rounds  int    `json:"rounds"`
}

// ReservationsRepository reads time_table and booking_info. bookg_time is
// stored as a "HH:MM:SS" char column, so hours are extracted via ::time.
type ReservationsRepository struct {
	db  *store.DB
	log *zap.Logger
}

func NewReservationsRepository(db *store.DB, log *zap.Logger) *ReservationsRepository {
	return &ReservationsRepository{db: db, log: log}
}

// DailyCounts returns one event per day that had bookings, value = booking
// count. Future dates are excluded at the source.
func (r *ReservationsRepository) DailyCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error) {
	query := `
		SELECT bookg_date, COUNT(*) AS reservation_count
		FROM time_table
		WHERE bookg_date >= $1 AND bookg_date <= $2
		  AND bookg_date <= CURRENT_DATE
		  AND account_id IS NOT NULL
		GROUP BY bookg_date
		ORDER BY bookg_date ASC`

	rows, err := r.db.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Event
	for rows.Next() {
		var e analytics.Event
		e.Hour = -1
		var n int
		if err := rows.Scan(&e.Date, &n); err != nil {
			return nil, err
		}
		e.Value = float64(n)
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestDate returns the most recent non-future booking date. ok is false
// when there are no historical bookings at all.
func (r *ReservationsRepository) LatestDate(ctx context.Context) (time.Time, bool, error) {
	query := `
		SELECT bookg_date
		FROM time_table
		WHERE account_id IS NOT NULL
		  AND bookg_date <= CURRENT_DATE
		ORDER BY bookg_date DESC
		LIMIT 1`

	var d time.Time
	err := r.db.Pool.QueryRow(ctx, query).Scan(&d)
	if err != nil {
		if err == pgx.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return d, true, nil
}

// TimedTeamCounts returns one event per booked tee time with its play team
// count as the value; feeds the heatmap.
func (r *ReservationsRepository) TimedTeamCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error) {
	query := `
		SELECT tt.bookg_date,
		       EXTRACT(HOUR FROM tt.bookg_time::time)::int AS hour_of_day,
		       COALESCE(bi.play_team_cnt, 0) AS team_count
		FROM time_table tt
		INNER JOIN time_table_has_bookg_infos ttbi
		    ON tt.time_table_id = ttbi.time_table_id
		INNER JOIN booking_info bi
		    ON ttbi.bookg_info_id::integer = bi.bookg_info_id
		WHERE tt.bookg_date >= $1 AND tt.bookg_date <= $2
		  AND tt.bookg_date IS NOT NULL
		  AND tt.bookg_time IS NOT NULL
		  AND bi.play_team_cnt > 0`

	rows, err := r.db.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Event
	for rows.Next() {
		var e analytics.Event
		var teams int
		if err := rows.Scan(&e.Date, &e.Hour, &teams); err != nil {
			return nil, err
		}
		e.Value = float64(teams)
		out = append(out, e)
	}
	return out, rows.Err()
}

// HourCounts returns booking counts grouped by hour of day for a range;
// feeds the operation-rate breakdown.
func (r *ReservationsRepository) HourCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error) {
	query := `
		SELECT EXTRACT(HOUR FROM bookg_time::time)::int AS hour_of_day,
		       COUNT(*) AS reservation_count
		FROM time_table
		WHERE bookg_date >= $1 AND bookg_date <= $2
		  AND bookg_date <= CURRENT_DATE
		  AND account_id IS NOT NULL
		  AND bookg_time IS NOT NULL
		GROUP BY hour_of_day`

	return r.scanHourCounts(ctx, query, start, end)
}

// TeeTimesOn returns confirmed booking counts per hour for a single day;
// feeds the tee-time part gauges.
func (r *ReservationsRepository) TeeTimesOn(ctx context.Context, day time.Time) ([]analytics.Event, error) {
	query := `
		SELECT EXTRACT(HOUR FROM tt.bookg_time::time)::int AS hour_of_day,
		       COUNT(*) AS reservation_count
		FROM time_table tt
		INNER JOIN time_table_has_bookg_infos ttbi
		    ON tt.time_table_id = ttbi.time_table_id
		INNER JOIN booking_info bi
		    ON ttbi.bookg_info_id::integer = bi.bookg_info_id
		WHERE tt.bookg_date = $1
		  AND tt.bookg_time IS NOT NULL
		  AND bi.bookg_info_id IS NOT NULL
		GROUP BY hour_of_day`

	return r.scanHourCounts(ctx, query, day)
}

func (r *ReservationsRepository) scanHourCounts(ctx context.Context, query string, args ...any) ([]analytics.Event, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Event
	for rows.Next() {
		var e analytics.Event
		var n int
		if err := rows.Scan(&e.Hour, &n); err != nil {
			return nil, err
		}
		e.Value = float64(n)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountBetween counts bookings in a closed date range; feeds the
// utilization card.
func (r *ReservationsRepository) CountBetween(ctx context.Context, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM time_table
		WHERE bookg_date >= $1 AND bookg_date <= $2
		  AND account_id IS NOT NULL`

	var n int
	err := r.db.Pool.QueryRow(ctx, query, start, end).Scan(&n)
	return n, err
}

// CountOn counts confirmed reservations for a single day.
func (r *ReservationsRepository) CountOn(ctx context.Context, day time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM time_table tt
		INNER JOIN time_table_has_bookg_infos ttbi
		    ON tt.time_table_id = ttbi.time_table_id
		INNER JOIN booking_info bi
		    ON ttbi.bookg_info_id::integer = bi.bookg_info_id
		WHERE tt.bookg_date = $1
		  AND tt.bookg_time IS NOT NULL
		  AND bi.bookg_info_id IS NOT NULL`

	var n int
	err := r.db.Pool.QueryRow(ctx, query, day).Scan(&n)
	return n, err
}

// DetailsOn lists the reservation holders for a single day, ordered by tee
// time. Capped at the course's daily capacity.
func (r *ReservationsRepository) DetailsOn(ctx context.Context, day time.Time, limit int) ([]Detail, error) {
	query := `
		SELECT bi.bookg_name,
		       bi.bookg_info_id,
		       tt.bookg_date,
		       tt.bookg_time,
		       COALESCE(tt.round_scd, 18) AS num_rounds
		FROM time_table tt
		INNER JOIN time_table_has_bookg_infos ttbi
		    ON tt.time_table_id = ttbi.time_table_id
		INNER JOIN booking_info bi
		    ON ttbi.bookg_info_id::integer = bi.bookg_info_id
		WHERE tt.bookg_date = $1
		  AND tt.bookg_time IS NOT NULL
		  AND bi.bookg_name IS NOT NULL
		ORDER BY tt.bookg_time ASC, bi.bookg_info_id ASC
		LIMIT $2`

	rows, err := r.db.Pool.Query(ctx, query, day, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detail
	for rows.Next() {
		var d Detail
		var date time.Time
		if err := rows.Scan(&d.Person, &d.ID, &date, &d.TeeTime, &d.Rounds); err != nil {
			return nil, err
		}
		d.Date = date.Format(analytics.ISODate)
		if len(d.TeeTime) >= 5 {
			d.TeeTime = d.TeeTime[:5] // trim seconds from HH:MM:SS
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LeadDays returns booking counts grouped by how many days ahead of today
// the booked date lies. Past bookings are excluded.
func (r *ReservationsRepository) LeadDays(ctx context.Context) ([]LeadCount, error) {
	query := `
		SELECT (bookg_date::date - CURRENT_DATE) AS days_ahead,
		       COUNT(*) AS booking_count
		FROM time_table
		WHERE bookg_date IS NOT NULL
		  AND deleted_at IS NULL
		  AND bookg_date >= CURRENT_DATE
		GROUP BY days_ahead`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LeadCount
	for rows.Next() {
		var lc LeadCount
		if err := rows.Scan(&lc.DaysAhead, &lc.Count); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// TypeCodes returns raw booking-type codes with counts, cancelled bookings
// excluded.
func (r *ReservationsRepository) TypeCodes(ctx context.Context) ([]CodeCount, error) {
	query := `
		SELECT COALESCE(bookg_type_scd, ''), COUNT(*)
		FROM booking_info
		WHERE bookg_info_id IS NOT NULL
		  AND deleted_at IS NULL
		  AND bookg_state_scd NOT IN ('canceled', 'C', 'X')
		GROUP BY bookg_type_scd`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CodeCount
	for rows.Next() {
		var cc CodeCount
		if err := rows.Scan(&cc.Code, &cc.Count); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

// Channels returns raw booking-channel rows with counts, cancelled bookings
// excluded.
func (r *ReservationsRepository) Channels(ctx context.Context) ([]ChannelRow, error) {
	query := `
		SELECT COALESCE(chnl_cd_id, 0), COALESCE(chnl_detail, ''), COUNT(*)
		FROM booking_info
		WHERE bookg_info_id IS NOT NULL
		  AND deleted_at IS NULL
		  AND bookg_state_scd NOT IN ('canceled', 'C', 'X')
		GROUP BY chnl_cd_id, chnl_detail`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChannelRow
	for rows.Next() {
		var ch ChannelRow
		if err := rows.Scan(&ch.CodeID, &ch.Detail, &ch.Count); err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, rows.Err()
}
