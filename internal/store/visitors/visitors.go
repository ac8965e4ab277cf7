package visitors

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/srihari7072/golfzon-dashboard/internal/analytics"
	"github.com/srihari7072/golfzon-dashboard/internal/store"
)

// CodeCount is one raw gender code with its row count.
type CodeCount struct {
	Code  string
	Count int
}

// AgeCount is one computed age with the number of persons at that age.
type AgeCount struct {
	Age   int
	Count int
}

// VisitorsRepository reads visit_customers and golfzon_person.
type VisitorsRepository struct {
	db  *store.DB
	log *zap.Logger
}

func NewVisitorsRepository(db *store.DB, log *zap.Logger) *VisitorsRepository {
	return &VisitorsRepository{db: db, log: log}
}

// DailyCounts returns one event per day that had check-ins, value = visitor
// count.
func (r *VisitorsRepository) DailyCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error) {
	query := `
		SELECT visit_date, COUNT(*) AS visitor_count
		FROM visit_customers
		WHERE visit_date >= $1 AND visit_date <= $2
		  AND account_id IS NOT NULL
		GROUP BY visit_date
		ORDER BY visit_date ASC`

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

// BookingHours returns distinct-visitor counts grouped by the booked tee
// hour for visits in the range; feeds the part1/2/3 section totals.
func (r *VisitorsRepository) BookingHours(ctx context.Context, start, end time.Time) ([]analytics.Event, error) {
	query := `
		SELECT EXTRACT(HOUR FROM tt.bookg_time::time)::int AS hour_of_day,
		       COUNT(DISTINCT vc.customer_id) AS visitor_count
		FROM visit_customers vc
		LEFT JOIN time_table_has_bookg_infos ttbi
		    ON vc.bookg_info_id::integer = ttbi.bookg_info_id::integer
		LEFT JOIN time_table tt
		    ON ttbi.time_table_id = tt.time_table_id
		WHERE vc.visit_date >= $1 AND vc.visit_date <= $2
		  AND tt.bookg_time IS NOT NULL
		GROUP BY hour_of_day`

	rows, err := r.db.Pool.Query(ctx, query, start, end)
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

// GenderCounts returns raw gender codes with counts across the whole table.
func (r *VisitorsRepository) GenderCounts(ctx context.Context) ([]CodeCount, error) {
	query := `
		SELECT gender_scd, COUNT(*)
		FROM visit_customers
		WHERE gender_scd IS NOT NULL AND gender_scd != ''
		GROUP BY gender_scd`

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

// AgeCounts returns person counts per computed age. Implausible ages are
// filtered at the source so the classifier only sees valid values.
func (r *VisitorsRepository) AgeCounts(ctx context.Context) ([]AgeCount, error) {
	query := `
		SELECT DATE_PART('year', AGE(CURRENT_DATE, birth_date))::int AS age,
		       COUNT(*) AS person_count
		FROM golfzon_person
		WHERE deleted_at IS NULL
		  AND birth_date IS NOT NULL
		  AND DATE_PART('year', AGE(CURRENT_DATE, birth_date)) BETWEEN 0 AND 150
		GROUP BY age`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AgeCount
	for rows.Next() {
		var ac AgeCount
		if err := rows.Scan(&ac.Age, &ac.Count); err != nil {
			return nil, err
		}
		out = append(out, ac)
	}
	return out, rows.Err()
}
