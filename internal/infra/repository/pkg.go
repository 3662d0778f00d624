package repository

import (
	"context"

	"coach-booking-api/internal/infra"
	"coach-booking-api/internal/pkg/pgconv"
	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PackageRepository struct {
	pool *pgxpool.Pool
}

func NewPackageRepository(pool *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{pool: pool}
}

func (r *PackageRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*commands.PackageSnapshot, error) {
	query := `
		SELECT id, user_id, package_type, sessions_total, sessions_used, status
		FROM session_packages
		WHERE id = $1 AND user_id = $2`
	var snap commands.PackageSnapshot
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&snap.ID, &snap.UserID, &snap.PackageType,
		&snap.SessionsTotal, &snap.SessionsUsed, &snap.Status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session package not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to find session package", err)
	}
	return &snap, nil
}

// ConsumeSession reserves one session. Like the promo consume, the guard in
// the WHERE clause is what arbitrates concurrent use of the last session.
func (r *PackageRepository) ConsumeSession(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE session_packages
		SET sessions_used = sessions_used + 1, updated_at = now()
		WHERE id = $1 AND status = 'active' AND sessions_used < sessions_total`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, wrapPgErr("failed to consume package session", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PackageRepository) ReleaseSession(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE session_packages
		SET sessions_used = GREATEST(sessions_used - 1, 0), updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return wrapPgErr("failed to release package session", err)
	}
	return nil
}

func (r *PackageRepository) PackagesByUser(ctx context.Context, userID uuid.UUID) ([]queries.PackageView, error) {
	query := `
		SELECT id, package_type, sessions_total, sessions_used,
		       purchased_at, amount_paid_cents, currency, status
		FROM session_packages
		WHERE user_id = $1
		ORDER BY purchased_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, wrapPgErr("failed to query session packages", err)
	}
	defer rows.Close()

	views := []queries.PackageView{}
	for rows.Next() {
		var v queries.PackageView
		err := rows.Scan(
			&v.ID, &v.PackageType, &v.SessionsTotal, &v.SessionsUsed,
			&v.PurchasedAt, &v.AmountPaidCents, &v.Currency, &v.Status,
		)
		if err != nil {
			return nil, wrapPgErr("failed to scan session package", err)
		}
		v.SessionsRemaining = v.SessionsTotal - v.SessionsUsed
		if v.SessionsRemaining < 0 {
			v.SessionsRemaining = 0
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read session packages", err)
	}
	return views, nil
}
