// Package repository implements the persistence ports on pgx. Writes that
// serialize contended resources (slot claims, promo uses, package sessions)
// are single conditional statements so the database, not the application,
// decides races.
package repository

import (
	"errors"

	"coach-booking-api/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
)

const slotClaimConstraint = "uq_appointments_slot_bucket_active"

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// wrapPgErr maps low-level pgx errors onto repository error kinds. A unique
// violation on the slot-claim index is a booking conflict, distinct from
// other duplicate keys.
func wrapPgErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == slotClaimConstraint {
				return infra.WrapRepoErr(msg, err, infra.KindConflict)
			}
			return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
		case pgForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err, infra.KindDBFailure)
}
