package repository

import (
	"context"
	"time"

	"coach-booking-api/internal/infra"
	"coach-booking-api/internal/pkg/pgconv"
	"coach-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdempotencyRepository struct {
	pool *pgxpool.Pool
}

func NewIdempotencyRepository(pool *pgxpool.Pool) *IdempotencyRepository {
	return &IdempotencyRepository{pool: pool}
}

// TryInsert claims an idempotency key. Losing the insert race surfaces as a
// duplicate-key kind so the caller re-reads the winner's record.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error {
	query := `
		INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
		VALUES ($1, $2, $3, $4, 'in_progress', $5)`
	_, err := r.pool.Exec(ctx, query, key, userID, endpoint, requestHash, pgconv.TimeToPgtype(expiresAt))
	if err != nil {
		return wrapPgErr("failed to claim idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) Get(ctx context.Context, key, userID uuid.UUID) (*commands.IdempotencyRecord, error) {
	query := `
		SELECT status, request_hash, result_appointment_id
		FROM idempotency_keys
		WHERE key = $1 AND user_id = $2 AND expires_at > now()`
	var (
		record        commands.IdempotencyRecord
		appointmentID pgtype.UUID
	)
	err := r.pool.QueryRow(ctx, query, key, userID).Scan(&record.Status, &record.RequestHash, &appointmentID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to read idempotency key", err)
	}
	record.ResultAppointmentID = pgconv.UUIDPtrFromPgtype(appointmentID)
	return &record, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, userID, appointmentID uuid.UUID) error {
	query := `
		UPDATE idempotency_keys
		SET status = 'completed', result_appointment_id = $3
		WHERE key = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, key, userID, appointmentID)
	if err != nil {
		return wrapPgErr("failed to complete idempotency key", err)
	}
	return nil
}
