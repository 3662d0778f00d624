package repository

import (
	"context"

	"coach-booking-api/internal/domain/promo"
	"coach-booking-api/internal/infra"
	"coach-booking-api/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PromoRepository struct {
	pool *pgxpool.Pool
}

func NewPromoRepository(pool *pgxpool.Pool) *PromoRepository {
	return &PromoRepository{pool: pool}
}

func (r *PromoRepository) FindByCode(ctx context.Context, code string) (*promo.PromoCode, error) {
	query := `
		SELECT code, max_uses, current_uses, active
		FROM promo_codes
		WHERE code = $1`
	var (
		foundCode            string
		maxUses, currentUses int
		active               bool
	)
	err := r.pool.QueryRow(ctx, query, code).Scan(&foundCode, &maxUses, &currentUses, &active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promo code not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to find promo code", err)
	}
	return promo.NewPromoCode(foundCode, maxUses, currentUses, active)
}

// Consume increments the usage counter only while uses remain. The WHERE
// clause is the whole concurrency story: two racing consumers both reach
// this statement, exactly one matching row update wins the last use.
func (r *PromoRepository) Consume(ctx context.Context, code string) (bool, error) {
	query := `
		UPDATE promo_codes
		SET current_uses = current_uses + 1, updated_at = now()
		WHERE code = $1 AND active AND current_uses < max_uses`
	tag, err := r.pool.Exec(ctx, query, code)
	if err != nil {
		return false, wrapPgErr("failed to consume promo code", err)
	}
	return tag.RowsAffected() > 0, nil
}
