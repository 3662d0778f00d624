package repository

import (
	"context"
	"time"

	"coach-booking-api/internal/domain/schedule"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) ActiveRules(ctx context.Context) ([]schedule.Rule, error) {
	query := `
		SELECT weekday, start_minute, end_minute
		FROM coach_availability
		WHERE active
		ORDER BY weekday, start_minute`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, wrapPgErr("failed to query availability rules", err)
	}
	defer rows.Close()

	var rules []schedule.Rule
	for rows.Next() {
		var weekday, start, end int
		if err := rows.Scan(&weekday, &start, &end); err != nil {
			return nil, wrapPgErr("failed to scan availability rule", err)
		}
		rules = append(rules, schedule.Rule{
			Weekday: time.Weekday(weekday),
			Start:   schedule.DayMinute(start),
			End:     schedule.DayMinute(end),
			Active:  true,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read availability rules", err)
	}
	return rules, nil
}

func (r *ScheduleRepository) BlockedDates(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT blocked_date FROM blocked_dates
		WHERE blocked_date BETWEEN $1::date AND $2::date
		ORDER BY blocked_date`
	rows, err := r.pool.Query(ctx, query,
		pgtype.Date{Time: from, Valid: true},
		pgtype.Date{Time: to, Valid: true},
	)
	if err != nil {
		return nil, wrapPgErr("failed to query blocked dates", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d pgtype.Date
		if err := rows.Scan(&d); err != nil {
			return nil, wrapPgErr("failed to scan blocked date", err)
		}
		dates = append(dates, d.Time)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read blocked dates", err)
	}
	return dates, nil
}
