package commands

import (
	"context"
	"log/slog"
	"time"

	"coach-booking-api/internal/domain/appointment"
	"coach-booking-api/internal/infra"
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	idempotencyTTL       = 24 * time.Hour
	endpointPaidBooking  = "bookings.paid"
	idempotencyCompleted = "completed"
)

type CreateFreeBookingInput struct {
	UserID      uuid.UUID
	UserName    string
	UserEmail   string
	Phone       string
	ScheduledAt time.Time
	BackupAt    *time.Time
	PromoCode   string
	Notes       string
}

type CreatePaidBookingInput struct {
	UserID         uuid.UUID
	UserName       string
	UserEmail      string
	Phone          string
	ScheduledAt    time.Time
	BackupAt       *time.Time
	OrderRef       string
	Notes          string
	IdempotencyKey *uuid.UUID
	RequestHash    string
}

type CreatePackageBookingInput struct {
	UserID      uuid.UUID
	UserName    string
	UserEmail   string
	Phone       string
	ScheduledAt time.Time
	BackupAt    *time.Time
	PackageID   uuid.UUID
	Notes       string
}

// BookingResult is what a successful booking saga hands back to the caller.
type BookingResult struct {
	AppointmentID uuid.UUID
	ScheduledAt   time.Time
	AmountCents   *int64
	Currency      *string
}

// AvailabilityPort re-checks the slot inside the saga, after any payment has
// been captured. The listing a client saw earlier is never trusted here.
type AvailabilityPort interface {
	IsAvailable(ctx context.Context, at time.Time) (bool, error)
}

type BookingCommands interface {
	CreateFreeBooking(ctx context.Context, input CreateFreeBookingInput) (*BookingResult, error)
	CreatePaidBooking(ctx context.Context, input CreatePaidBookingInput) (*BookingResult, error)
	CreatePackageBooking(ctx context.Context, input CreatePackageBookingInput) (*BookingResult, error)
}

type bookingCommandsImpl struct {
	appointments AppointmentRepository
	promos       PromoRepository
	packages     PackageRepository
	idempotency  IdempotencyRepository
	availability AvailabilityPort
	calendar     CalendarGateway
	payment      PaymentGateway
	cfg          config.BookingConfig
	clock        clock.Clock
}

func NewBookingCommands(
	appointments AppointmentRepository,
	promos PromoRepository,
	packages PackageRepository,
	idempotency IdempotencyRepository,
	availability AvailabilityPort,
	calendar CalendarGateway,
	payment PaymentGateway,
	cfg config.BookingConfig,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		appointments: appointments,
		promos:       promos,
		packages:     packages,
		idempotency:  idempotency,
		availability: availability,
		calendar:     calendar,
		payment:      payment,
		cfg:          cfg,
		clock:        clock,
	}
}

// CreateFreeBooking books a promo-gated free session.
//
// Order matters: the promo code is consumed last, after the appointment row
// exists. Losing the consume race therefore never strands a user without the
// session they were just confirmed for; it is logged and absorbed.
func (c *bookingCommandsImpl) CreateFreeBooking(ctx context.Context, input CreateFreeBookingInput) (*BookingResult, error) {
	contact, scheduledAt, err := c.validateSlotInput(input.Phone, input.UserEmail, input.ScheduledAt)
	if err != nil {
		return nil, err
	}

	code, err := c.promos.FindByCode(ctx, input.PromoCode)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrPromoInvalid)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if err := code.ValidateUsage(); err != nil {
		return nil, errs.Mark(err, ErrPromoInvalid)
	}

	if err := c.requireAvailable(ctx, scheduledAt); err != nil {
		return nil, err
	}

	eventRef, err := c.createEvent(ctx, input.UserName, contact, scheduledAt, appointment.SessionFree, input.Notes)
	if err != nil {
		return nil, err
	}

	appt, err := appointment.NewFree(input.UserID, scheduledAt, input.BackupAt, contact, eventRef, code.Code())
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	if err := c.insertWithSlotClaim(ctx, appt); err != nil {
		return nil, c.compensateEvent(ctx, err, eventRef)
	}

	consumed, err := c.promos.Consume(ctx, code.Code())
	if err != nil || !consumed {
		// The appointment stands; the counter race is absorbed, not unwound.
		slog.WarnContext(ctx, "promo code consume lost after booking",
			"promo_code", code.Code(),
			"appointment_id", appt.ID(),
			"error", err,
		)
	}

	return &BookingResult{AppointmentID: appt.ID(), ScheduledAt: appt.ScheduledAt()}, nil
}

// CreatePaidBooking finalizes a pre-approved payment order and books the
// session it paid for. The capture is the point of no return: every failure
// after it compensates with a full refund before surfacing.
func (c *bookingCommandsImpl) CreatePaidBooking(ctx context.Context, input CreatePaidBookingInput) (*BookingResult, error) {
	contact, scheduledAt, err := c.validateSlotInput(input.Phone, input.UserEmail, input.ScheduledAt)
	if err != nil {
		return nil, err
	}
	if input.OrderRef == "" {
		return nil, errs.Mark(errs.New("payment order reference is required"), ErrValidation)
	}

	if input.IdempotencyKey != nil {
		if result, err := c.claimIdempotencyKey(ctx, input); result != nil || err != nil {
			return result, err
		}
	}

	capture, err := c.captureOrder(ctx, input.OrderRef)
	if err != nil {
		return nil, err
	}

	if err := c.requireAvailable(ctx, scheduledAt); err != nil {
		return nil, c.refundAndWrap(ctx, err, capture.CaptureRef)
	}

	amount := c.capturedAmount(ctx, input.OrderRef)

	eventRef, err := c.createEvent(ctx, input.UserName, contact, scheduledAt, appointment.SessionPaidSingle, input.Notes)
	if err != nil {
		return nil, c.refundAndWrap(ctx, err, capture.CaptureRef)
	}

	appt, err := appointment.NewPaidSingle(input.UserID, scheduledAt, input.BackupAt, contact, eventRef, amount, appointment.PaymentRefs{
		OrderRef:        capture.OrderRef,
		CaptureRef:      capture.CaptureRef,
		StoredMethodRef: capture.StoredMethodRef,
	})
	if err != nil {
		return nil, c.refundAndWrap(ctx, errs.Mark(err, ErrValidation), capture.CaptureRef)
	}

	if err := c.insertWithSlotClaim(ctx, appt); err != nil {
		err = c.compensateEvent(ctx, err, eventRef)
		return nil, c.refundAndWrap(ctx, err, capture.CaptureRef)
	}

	if input.IdempotencyKey != nil {
		if err := c.idempotency.MarkCompleted(ctx, *input.IdempotencyKey, input.UserID, appt.ID()); err != nil {
			slog.WarnContext(ctx, "failed to mark idempotency key completed",
				"key", *input.IdempotencyKey, "appointment_id", appt.ID(), "error", err)
		}
	}

	cents := amount.Cents()
	currency := amount.Currency()
	return &BookingResult{
		AppointmentID: appt.ID(),
		ScheduledAt:   appt.ScheduledAt(),
		AmountCents:   &cents,
		Currency:      &currency,
	}, nil
}

// CreatePackageBooking books a session against a purchased package. The
// session is consumed first so the counter decrement is the serialization
// point; every later failure releases it.
func (c *bookingCommandsImpl) CreatePackageBooking(ctx context.Context, input CreatePackageBookingInput) (*BookingResult, error) {
	contact, scheduledAt, err := c.validateSlotInput(input.Phone, input.UserEmail, input.ScheduledAt)
	if err != nil {
		return nil, err
	}

	pkg, err := c.packages.FindByID(ctx, input.PackageID, input.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrValidation)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if !pkg.Usable() {
		return nil, ErrPackageExhausted
	}

	consumed, err := c.packages.ConsumeSession(ctx, pkg.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if !consumed {
		return nil, ErrPackageExhausted
	}

	if err := c.requireAvailable(ctx, scheduledAt); err != nil {
		return nil, c.releaseAndWrap(ctx, err, pkg.ID)
	}

	eventRef, err := c.createEvent(ctx, input.UserName, contact, scheduledAt, appointment.SessionPaidPackage, input.Notes)
	if err != nil {
		return nil, c.releaseAndWrap(ctx, err, pkg.ID)
	}

	appt, err := appointment.NewPackageSession(input.UserID, scheduledAt, input.BackupAt, contact, eventRef, pkg.ID)
	if err != nil {
		return nil, c.releaseAndWrap(ctx, errs.Mark(err, ErrValidation), pkg.ID)
	}

	if err := c.insertWithSlotClaim(ctx, appt); err != nil {
		err = c.compensateEvent(ctx, err, eventRef)
		return nil, c.releaseAndWrap(ctx, err, pkg.ID)
	}

	return &BookingResult{AppointmentID: appt.ID(), ScheduledAt: appt.ScheduledAt()}, nil
}

func (c *bookingCommandsImpl) validateSlotInput(phone, email string, scheduledAt time.Time) (appointment.Contact, time.Time, error) {
	contact, err := appointment.NewContact(phone, email)
	if err != nil {
		return appointment.Contact{}, time.Time{}, errs.Mark(err, ErrValidation)
	}
	if scheduledAt.IsZero() {
		return appointment.Contact{}, time.Time{}, errs.Mark(errs.New("scheduled time is required"), ErrValidation)
	}
	if !scheduledAt.After(c.clock.Now()) {
		return appointment.Contact{}, time.Time{}, errs.Mark(errs.New("scheduled time must be in the future"), ErrValidation)
	}
	if !scheduledAt.Truncate(c.cfg.SlotGranularity).Equal(scheduledAt) {
		return appointment.Contact{}, time.Time{}, errs.Mark(errs.New("scheduled time is not aligned to the slot grid"), ErrValidation)
	}
	return contact, scheduledAt, nil
}

func (c *bookingCommandsImpl) requireAvailable(ctx context.Context, at time.Time) error {
	available, err := c.availability.IsAvailable(ctx, at)
	if err != nil {
		return markExternal(err, ErrAvailabilityUnknown)
	}
	if !available {
		return ErrSlotUnavailable
	}
	return nil
}

func (c *bookingCommandsImpl) captureOrder(ctx context.Context, orderRef string) (*CaptureResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.ExternalCallTimeout)
	defer cancel()

	capture, err := c.payment.CaptureOrder(callCtx, orderRef)
	if err != nil {
		return nil, markExternal(err, ErrPaymentCaptureFailed)
	}
	if !capture.Completed() {
		return nil, errs.Mark(errs.New("payment capture status "+capture.Status), ErrPaymentCaptureFailed)
	}
	return capture, nil
}

// capturedAmount reads the charged amount back from the order. A failed
// read-back falls back to the configured price rather than unwinding a
// capture that already succeeded.
func (c *bookingCommandsImpl) capturedAmount(ctx context.Context, orderRef string) appointment.Money {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.ExternalCallTimeout)
	defer cancel()

	fallback := func() appointment.Money {
		currency := "USD"
		if len(c.cfg.Currencies) > 0 {
			currency = c.cfg.Currencies[0]
		}
		m, _ := appointment.NewMoney(c.cfg.SingleSessionPriceCents, currency)
		return m
	}

	order, err := c.payment.GetOrder(callCtx, orderRef)
	if err != nil {
		slog.WarnContext(ctx, "could not read back captured order amount",
			"order_ref", orderRef, "error", err)
		return fallback()
	}
	if !c.cfg.SupportsCurrency(order.Currency) {
		slog.WarnContext(ctx, "captured order carries an unsupported currency",
			"order_ref", orderRef, "currency", order.Currency)
		return fallback()
	}
	amount, err := appointment.NewMoney(order.AmountCents, order.Currency)
	if err != nil {
		return fallback()
	}
	return amount
}

func (c *bookingCommandsImpl) createEvent(ctx context.Context, userName string, contact appointment.Contact, scheduledAt time.Time, sessionType appointment.SessionType, notes string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.ExternalCallTimeout)
	defer cancel()

	eventRef, err := c.calendar.CreateEvent(callCtx, EventDetails{
		UserName:    userName,
		UserEmail:   contact.Email(),
		UserPhone:   contact.Phone(),
		Start:       scheduledAt,
		Duration:    c.cfg.SessionDuration(),
		SessionType: sessionType,
		Notes:       notes,
	})
	if err != nil {
		return "", markExternal(err, ErrCalendarCreateFailed)
	}
	return eventRef, nil
}

func (c *bookingCommandsImpl) insertWithSlotClaim(ctx context.Context, appt *appointment.Appointment) error {
	bucket := appointment.SlotBucket(appt.ScheduledAt(), c.cfg.SlotGranularity)
	if err := c.appointments.Insert(ctx, appt, bucket); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return errs.Mark(err, ErrConcurrentBookingConflict)
		}
		return errs.Mark(err, ErrDatabaseOperation)
	}
	return nil
}

// compensateEvent removes an already-created calendar event after a later
// step failed. The original step error always wins; a failed removal rides
// along as an inconsistent-state marker.
func (c *bookingCommandsImpl) compensateEvent(ctx context.Context, stepErr error, eventRef string) error {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.ExternalCallTimeout)
	defer cancel()

	if err := c.calendar.CancelEvent(callCtx, eventRef, "booking failed"); err != nil {
		slog.ErrorContext(ctx, "failed to remove calendar event during compensation",
			"event_ref", eventRef, "error", err)
		return errs.Mark(errs.Join(stepErr, err), ErrInconsistentState)
	}
	return stepErr
}

func (c *bookingCommandsImpl) refundAndWrap(ctx context.Context, stepErr error, captureRef string) error {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.ExternalCallTimeout)
	defer cancel()

	refundRef, err := c.payment.RefundCapture(callCtx, captureRef, nil)
	if err != nil {
		slog.ErrorContext(ctx, "refund failed after booking step failure",
			"capture_ref", captureRef, "error", err)
		return errs.Mark(errs.Join(stepErr, errs.Mark(err, ErrPaymentRefundFailed)), ErrInconsistentState)
	}
	slog.InfoContext(ctx, "captured payment refunded after booking failure",
		"capture_ref", captureRef, "refund_ref", refundRef)
	return stepErr
}

func (c *bookingCommandsImpl) releaseAndWrap(ctx context.Context, stepErr error, packageID uuid.UUID) error {
	if err := c.packages.ReleaseSession(context.WithoutCancel(ctx), packageID); err != nil {
		slog.ErrorContext(ctx, "failed to release package session during compensation",
			"package_id", packageID, "error", err)
		return errs.Mark(errs.Join(stepErr, err), ErrInconsistentState)
	}
	return stepErr
}

// claimIdempotencyKey resolves a retried request. It returns a non-nil result
// for a completed earlier attempt, a non-nil error when the retry conflicts,
// and (nil, nil) when the caller owns the key and should proceed.
func (c *bookingCommandsImpl) claimIdempotencyKey(ctx context.Context, input CreatePaidBookingInput) (*BookingResult, error) {
	key := *input.IdempotencyKey

	resolve := func(record *IdempotencyRecord) (*BookingResult, error) {
		if record.RequestHash != input.RequestHash {
			return nil, ErrDuplicateRequest
		}
		if record.Status == idempotencyCompleted && record.ResultAppointmentID != nil {
			return &BookingResult{AppointmentID: *record.ResultAppointmentID, ScheduledAt: input.ScheduledAt}, nil
		}
		return nil, ErrRequestInProgress
	}

	record, err := c.idempotency.Get(ctx, key, input.UserID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if record != nil {
		return resolve(record)
	}

	expiresAt := c.clock.Now().Add(idempotencyTTL)
	if err := c.idempotency.TryInsert(ctx, key, input.UserID, endpointPaidBooking, input.RequestHash, expiresAt); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			record, err := c.idempotency.Get(ctx, key, input.UserID)
			if err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperation)
			}
			return resolve(record)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return nil, nil
}
