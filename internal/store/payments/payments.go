package payments

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/srihari7072/golfzon-dashboard/internal/analytics"
	"github.com/srihari7072/golfzon-dashboard/internal/store"
)

// PaymentsRepository reads the payment_infos table. Cancelled payments
// (cancel_yn = 'Y') never count toward sales.
type PaymentsRepository struct {
	db  *store.DB
	log *zap.Logger
}

func NewPaymentsRepository(db *store.DB, log *zap.Logger) *PaymentsRepository {
	return &PaymentsRepository{db: db, log: log}
}

// DailyTotals returns one event per day that had payments, value = summed
// amount. Days without rows are absent; the engine gap-fills them.
func (r *PaymentsRepository) DailyTotals(ctx context.Context, start, end time.Time) ([]analytics.Event, error) {
	query := `
		SELECT pay_date, COALESCE(SUM(pay_amt), 0) AS total_amount
		FROM payment_infos
		WHERE pay_date >= $1 AND pay_date <= $2
		  AND cancel_yn = 'N'
		GROUP BY pay_date
		ORDER BY pay_date ASC`

	rows, err := r.db.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.Event
	for rows.Next() {
		var e analytics.Event
		e.Hour = -1
		if err := rows.Scan(&e.Date, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// LatestPayDate returns the most recent date carrying a positive,
// non-cancelled payment. ok is false when the table is empty.
func (r *PaymentsRepository) LatestPayDate(ctx context.Context) (time.Time, bool, error) {
	query := `
		SELECT pay_date
		FROM payment_infos
		WHERE cancel_yn = 'N' AND pay_amt > 0
		ORDER BY pay_date DESC
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

// SumBetween returns the total payment amount for a closed date range.
func (r *PaymentsRepository) SumBetween(ctx context.Context, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(pay_amt), 0)
		FROM payment_infos
		WHERE pay_date >= $1 AND pay_date <= $2
		  AND cancel_yn = 'N'`

	var total float64
	err := r.db.Pool.QueryRow(ctx, query, start, end).Scan(&total)
	return total, err
}

// AvgBetween returns the average payment amount for a closed date range,
// zero when the range holds no payments.
func (r *PaymentsRepository) AvgBetween(ctx context.Context, start, end time.Time) (float64, error) {
	query := `
		SELECT COALESCE(AVG(pay_amt), 0)
		FROM payment_infos
		WHERE pay_date >= $1 AND pay_date <= $2
		  AND cancel_yn = 'N'`

	var avg float64
	err := r.db.Pool.QueryRow(ctx, query, start, end).Scan(&avg)
	return avg, err
}
