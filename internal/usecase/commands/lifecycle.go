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

type CancelInput struct {
	UserID        uuid.UUID
	AppointmentID uuid.UUID
	Reason        *string
}

type CancelResult struct {
	AppointmentID uuid.UUID
	Status        string
	FeeCents      *int64
	FeeCurrency   *string
	AlreadyDone   bool
	FeeChargeRef  *string
}

type RescheduleInput struct {
	UserID        uuid.UUID
	AppointmentID uuid.UUID
	NewStart      time.Time
}

type RescheduleResult struct {
	AppointmentID uuid.UUID
	ScheduledAt   time.Time
	Status        string
}

type LifecycleCommands interface {
	Cancel(ctx context.Context, input CancelInput) (*CancelResult, error)
	Reschedule(ctx context.Context, input RescheduleInput) (*RescheduleResult, error)
}

type lifecycleCommandsImpl struct {
	appointments AppointmentRepository
	availability AvailabilityPort
	calendar     CalendarGateway
	payment      PaymentGateway
	cfg          config.BookingConfig
	clock        clock.Clock
}

func NewLifecycleCommands(
	appointments AppointmentRepository,
	availability AvailabilityPort,
	calendar CalendarGateway,
	payment PaymentGateway,
	cfg config.BookingConfig,
	clock clock.Clock,
) LifecycleCommands {
	return &lifecycleCommandsImpl{
		appointments: appointments,
		availability: availability,
		calendar:     calendar,
		payment:      payment,
		cfg:          cfg,
		clock:        clock,
	}
}

// Cancel cancels an appointment on behalf of its owner. Cancelling an
// already-cancelled appointment is a no-op, not an error. When a late
// cancellation owes a fee, the fee charge must succeed before any state
// changes; a failed charge aborts the whole cancellation.
func (c *lifecycleCommandsImpl) Cancel(ctx context.Context, input CancelInput) (*CancelResult, error) {
	appt, err := c.loadOwned(ctx, input.AppointmentID, input.UserID)
	if err != nil {
		return nil, err
	}

	if appt.Status() == appointment.StatusCancelled {
		return &CancelResult{
			AppointmentID: appt.ID(),
			Status:        string(appt.Status()),
			AlreadyDone:   true,
		}, nil
	}
	if appt.Status().IsTerminal() {
		return nil, errs.Mark(errs.New("appointment can no longer be cancelled"), ErrValidation)
	}

	result := &CancelResult{AppointmentID: appt.ID(), Status: string(appointment.StatusCancelled)}

	policy := appointment.CancellationPolicy{
		NoticeHours: c.cfg.CancellationNoticeHours,
		FeeFraction: c.cfg.CancellationFeeFraction,
	}
	if fee := policy.FeeFor(appt, c.clock.Now()); fee != nil {
		chargeRef, err := c.chargeFee(ctx, appt, *fee)
		if err != nil {
			return nil, err
		}
		if chargeRef != nil {
			cents := fee.Cents()
			currency := fee.Currency()
			result.FeeCents = &cents
			result.FeeCurrency = &currency
			result.FeeChargeRef = chargeRef
		}
	}

	if err := appt.Cancel(); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	if err := c.appointments.Cancel(ctx, appt.ID(), input.Reason); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	// Calendar cleanup is best-effort: the cancellation already holds.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.ExternalCallTimeout)
	defer cancel()
	reason := "cancelled by client"
	if input.Reason != nil && *input.Reason != "" {
		reason = *input.Reason
	}
	if err := c.calendar.CancelEvent(callCtx, appt.CalendarEventRef(), reason); err != nil {
		slog.WarnContext(ctx, "failed to remove calendar event for cancelled appointment",
			"appointment_id", appt.ID(), "event_ref", appt.CalendarEventRef(), "error", err)
	}

	return result, nil
}

// Reschedule moves an active appointment to a new slot. The calendar event is
// moved before the store commits; a lost slot claim moves the event back so
// neither side is left half-updated.
func (c *lifecycleCommandsImpl) Reschedule(ctx context.Context, input RescheduleInput) (*RescheduleResult, error) {
	if input.NewStart.IsZero() || !input.NewStart.After(c.clock.Now()) {
		return nil, errs.Mark(errs.New("new start must be in the future"), ErrValidation)
	}
	if !input.NewStart.Truncate(c.cfg.SlotGranularity).Equal(input.NewStart) {
		return nil, errs.Mark(errs.New("new start is not aligned to the slot grid"), ErrValidation)
	}

	appt, err := c.loadOwned(ctx, input.AppointmentID, input.UserID)
	if err != nil {
		return nil, err
	}
	if !appt.Status().IsActive() {
		return nil, errs.Mark(errs.New("only active appointments can be rescheduled"), ErrValidation)
	}

	available, err := c.availability.IsAvailable(ctx, input.NewStart)
	if err != nil {
		return nil, markExternal(err, ErrAvailabilityUnknown)
	}
	if !available {
		return nil, ErrSlotUnavailable
	}

	oldStart := appt.ScheduledAt()
	if err := c.moveEvent(ctx, appt.CalendarEventRef(), input.NewStart); err != nil {
		return nil, markExternal(err, ErrCalendarUpdateFailed)
	}

	if err := appt.Reschedule(input.NewStart); err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}
	bucket := appointment.SlotBucket(input.NewStart, c.cfg.SlotGranularity)
	if err := c.appointments.Reschedule(ctx, appt, bucket); err != nil {
		if moveBackErr := c.moveEvent(ctx, appt.CalendarEventRef(), oldStart); moveBackErr != nil {
			slog.ErrorContext(ctx, "failed to move calendar event back after reschedule failure",
				"appointment_id", appt.ID(), "error", moveBackErr)
			err = errs.Mark(errs.Join(err, moveBackErr), ErrInconsistentState)
		}
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrConcurrentBookingConflict)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	return &RescheduleResult{
		AppointmentID: appt.ID(),
		ScheduledAt:   appt.ScheduledAt(),
		Status:        string(appt.Status()),
	}, nil
}

func (c *lifecycleCommandsImpl) loadOwned(ctx context.Context, id, userID uuid.UUID) (*appointment.Appointment, error) {
	appt, err := c.appointments.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrAppointmentNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	if appt.UserID() != userID {
		return nil, ErrPermissionDenied
	}
	return appt, nil
}

// chargeFee collects the late-cancellation fee against the stored payment
// method. No stored method means the fee is waived, not the cancellation
// blocked.
func (c *lifecycleCommandsImpl) chargeFee(ctx context.Context, appt *appointment.Appointment, fee appointment.Money) (*string, error) {
	methodRef := appt.StoredMethodRef()
	if methodRef == nil || *methodRef == "" {
		slog.WarnContext(ctx, "late cancellation fee waived, no stored payment method",
			"appointment_id", appt.ID())
		return nil, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.ExternalCallTimeout)
	defer cancel()

	chargeRef, err := c.payment.ChargeStoredMethod(callCtx, *methodRef, fee, "Late cancellation fee")
	if err != nil {
		return nil, markExternal(err, ErrPaymentCaptureFailed)
	}
	return &chargeRef, nil
}

func (c *lifecycleCommandsImpl) moveEvent(ctx context.Context, eventRef string, newStart time.Time) error {
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.ExternalCallTimeout)
	defer cancel()
	return c.calendar.UpdateEvent(callCtx, eventRef, newStart, c.cfg.SessionDuration())
}
