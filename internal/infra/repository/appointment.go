package repository

import (
	"context"
	"time"

	"coach-booking-api/internal/domain/appointment"
	"coach-booking-api/internal/infra"
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/pkg/pgconv"
	"coach-booking-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func NewAppointmentRepository(pool *pgxpool.Pool, clock clock.Clock) *AppointmentRepository {
	return &AppointmentRepository{pool: pool, clock: clock}
}

const appointmentColumns = `
	id, user_id, session_type, scheduled_at, backup_at, user_phone, user_email,
	status, payment_status, payment_amount_cents, payment_currency,
	calendar_event_ref, payment_order_ref, payment_capture_ref,
	stored_method_ref, package_id, promo_code, created_at, updated_at`

// Insert persists a new appointment and claims its slot bucket. The partial
// unique index on slot_bucket for active rows makes this the serialization
// point: the second booking of the same slot fails here with a conflict kind.
func (r *AppointmentRepository) Insert(ctx context.Context, a *appointment.Appointment, slotBucket time.Time) error {
	now := r.clock.Now()

	var paymentStatus *string
	if ps := a.PaymentStatus(); ps != nil {
		s := ps.String()
		paymentStatus = &s
	}
	var amountCents *int64
	var currency *string
	if m := a.Payment(); m != nil {
		c := m.Cents()
		cur := m.Currency()
		amountCents = &c
		currency = &cur
	}

	query := `
		INSERT INTO appointments (
			id, user_id, session_type, scheduled_at, slot_bucket, backup_at,
			user_phone, user_email, status, payment_status,
			payment_amount_cents, payment_currency, calendar_event_ref,
			payment_order_ref, payment_capture_ref, stored_method_ref,
			package_id, promo_code, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $19
		)`
	_, err := r.pool.Exec(ctx, query,
		a.ID(),
		a.UserID(),
		a.SessionType().String(),
		pgconv.TimeToPgtype(a.ScheduledAt()),
		pgconv.TimeToPgtype(slotBucket),
		pgconv.TimePtrToPgtype(a.BackupAt()),
		a.Contact().Phone(),
		a.Contact().Email(),
		a.Status().String(),
		pgconv.StringPtrToPgtype(paymentStatus),
		pgconv.Int64PtrToPgtype(amountCents),
		pgconv.StringPtrToPgtype(currency),
		a.CalendarEventRef(),
		pgconv.StringPtrToPgtype(a.PaymentOrderRef()),
		pgconv.StringPtrToPgtype(a.PaymentCaptureRef()),
		pgconv.StringPtrToPgtype(a.StoredMethodRef()),
		pgconv.UUIDPtrToPgtype(a.PackageID()),
		pgconv.StringPtrToPgtype(a.PromoCode()),
		pgconv.TimeToPgtype(now),
	)
	if err != nil {
		return wrapPgErr("failed to insert appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	appt, err := scanAppointment(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, wrapPgErr("failed to find appointment", err)
	}
	return appt, nil
}

// Reschedule moves an active appointment to its new start and slot bucket in
// one statement, subject to the same slot-claim index as Insert.
func (r *AppointmentRepository) Reschedule(ctx context.Context, a *appointment.Appointment, slotBucket time.Time) error {
	query := `
		UPDATE appointments
		SET scheduled_at = $2, slot_bucket = $3, status = $4, updated_at = $5
		WHERE id = $1 AND status IN ('scheduled', 'rescheduled')`
	tag, err := r.pool.Exec(ctx, query,
		a.ID(),
		pgconv.TimeToPgtype(a.ScheduledAt()),
		pgconv.TimeToPgtype(slotBucket),
		a.Status().String(),
		pgconv.TimeToPgtype(r.clock.Now()),
	)
	if err != nil {
		return wrapPgErr("failed to reschedule appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment is no longer active", nil, infra.KindNotFound)
	}
	return nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id uuid.UUID, reason *string) error {
	query := `
		UPDATE appointments
		SET status = 'cancelled', cancelled_reason = $2, updated_at = $3
		WHERE id = $1 AND status NOT IN ('completed', 'no_show')`
	tag, err := r.pool.Exec(ctx, query,
		id,
		pgconv.StringPtrToPgtype(reason),
		pgconv.TimeToPgtype(r.clock.Now()),
	)
	if err != nil {
		return wrapPgErr("failed to cancel appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found or already finished", nil, infra.KindNotFound)
	}
	return nil
}

// ActiveStartsBetween returns scheduled starts of active appointments with
// from < start < to. Bounds are exclusive so a start exactly one buffer away
// does not conflict.
func (r *AppointmentRepository) ActiveStartsBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT scheduled_at FROM appointments
		WHERE status IN ('scheduled', 'rescheduled')
		  AND scheduled_at > $1 AND scheduled_at < $2
		ORDER BY scheduled_at`
	rows, err := r.pool.Query(ctx, query, pgconv.TimeToPgtype(from), pgconv.TimeToPgtype(to))
	if err != nil {
		return nil, wrapPgErr("failed to query active appointment starts", err)
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var at pgtype.Timestamptz
		if err := rows.Scan(&at); err != nil {
			return nil, wrapPgErr("failed to scan appointment start", err)
		}
		starts = append(starts, at.Time)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read appointment starts", err)
	}
	return starts, nil
}

func (r *AppointmentRepository) UpcomingByUser(ctx context.Context, userID uuid.UUID, from time.Time) ([]queries.AppointmentView, error) {
	query := `
		SELECT ` + appointmentViewColumns + `
		FROM appointments
		WHERE user_id = $1 AND scheduled_at >= $2
		  AND status IN ('scheduled', 'rescheduled')
		ORDER BY scheduled_at`
	return r.queryViews(ctx, query, userID, pgconv.TimeToPgtype(from))
}

func (r *AppointmentRepository) PastByUser(ctx context.Context, userID uuid.UUID, until time.Time, limit int32) ([]queries.AppointmentView, error) {
	query := `
		SELECT ` + appointmentViewColumns + `
		FROM appointments
		WHERE user_id = $1
		  AND (scheduled_at < $2 OR status IN ('completed', 'cancelled', 'no_show'))
		ORDER BY scheduled_at DESC
		LIMIT $3`
	return r.queryViews(ctx, query, userID, pgconv.TimeToPgtype(until), limit)
}

const appointmentViewColumns = `
	id, session_type, scheduled_at, backup_at, user_phone, status,
	payment_status, payment_amount_cents, payment_currency, created_at`

func (r *AppointmentRepository) queryViews(ctx context.Context, query string, args ...any) ([]queries.AppointmentView, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgErr("failed to query appointments", err)
	}
	defer rows.Close()

	views := []queries.AppointmentView{}
	for rows.Next() {
		var (
			v             queries.AppointmentView
			backupAt      pgtype.Timestamptz
			paymentStatus pgtype.Text
			amountCents   pgtype.Int8
			currency      pgtype.Text
		)
		err := rows.Scan(
			&v.ID, &v.SessionType, &v.ScheduledAt, &backupAt, &v.Phone,
			&v.Status, &paymentStatus, &amountCents, &currency, &v.CreatedAt,
		)
		if err != nil {
			return nil, wrapPgErr("failed to scan appointment view", err)
		}
		v.BackupAt = pgconv.TimePtrFromPgtype(backupAt)
		v.PaymentStatus = pgconv.StringPtrFromPgtype(paymentStatus)
		v.AmountCents = pgconv.Int64PtrFromPgtype(amountCents)
		v.Currency = pgconv.StringPtrFromPgtype(currency)
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgErr("failed to read appointments", err)
	}
	return views, nil
}

func scanAppointment(row pgx.Row) (*appointment.Appointment, error) {
	var (
		id, userID        uuid.UUID
		sessionType       string
		scheduledAt       pgtype.Timestamptz
		backupAt          pgtype.Timestamptz
		phone, email      string
		status            string
		paymentStatus     pgtype.Text
		amountCents       pgtype.Int8
		currency          pgtype.Text
		calendarEventRef  string
		paymentOrderRef   pgtype.Text
		paymentCaptureRef pgtype.Text
		storedMethodRef   pgtype.Text
		packageID         pgtype.UUID
		promoCode         pgtype.Text
		createdAt         pgtype.Timestamptz
		updatedAt         pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &userID, &sessionType, &scheduledAt, &backupAt, &phone, &email,
		&status, &paymentStatus, &amountCents, &currency,
		&calendarEventRef, &paymentOrderRef, &paymentCaptureRef,
		&storedMethodRef, &packageID, &promoCode, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	contact, err := appointment.NewContact(phone, email)
	if err != nil {
		return nil, err
	}

	var ps *appointment.PaymentStatus
	if s := pgconv.StringPtrFromPgtype(paymentStatus); s != nil {
		v := appointment.PaymentStatus(*s)
		ps = &v
	}
	var money *appointment.Money
	if cents := pgconv.Int64PtrFromPgtype(amountCents); cents != nil {
		cur := pgconv.StringPtrFromPgtype(currency)
		if cur != nil {
			m, err := appointment.NewMoney(*cents, *cur)
			if err != nil {
				return nil, err
			}
			money = &m
		}
	}

	return appointment.Reconstruct(
		id, userID,
		appointment.SessionType(sessionType),
		scheduledAt.Time,
		pgconv.TimePtrFromPgtype(backupAt),
		contact,
		appointment.Status(status),
		ps,
		money,
		calendarEventRef,
		pgconv.StringPtrFromPgtype(paymentOrderRef),
		pgconv.StringPtrFromPgtype(paymentCaptureRef),
		pgconv.StringPtrFromPgtype(storedMethodRef),
		pgconv.UUIDPtrFromPgtype(packageID),
		pgconv.StringPtrFromPgtype(promoCode),
		createdAt.Time,
		updatedAt.Time,
	), nil
}
