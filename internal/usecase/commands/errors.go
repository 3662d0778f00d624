package commands

import (
	"context"
	"errors"

	"coach-booking-api/internal/pkg/errs"
	"coach-booking-api/internal/usecase/queries"
)

// Failure taxonomy for the booking sagas. Each saga step maps to exactly one
// of these; handlers translate them to HTTP statuses.
var (
	ErrSlotUnavailable           = errs.New("slot unavailable")
	ErrPromoInvalid              = errs.New("invalid or exhausted promo code")
	ErrPaymentCaptureFailed      = errs.New("payment capture failed")
	ErrPaymentRefundFailed       = errs.New("payment refund failed")
	ErrCalendarCreateFailed      = errs.New("calendar event creation failed")
	ErrCalendarUpdateFailed      = errs.New("calendar event update failed")
	ErrConcurrentBookingConflict = errs.New("slot claimed by a concurrent booking")
	ErrExternalServiceTimeout    = errs.New("external service timeout")
	// ErrInconsistentState marks a failed compensation: an earlier step took
	// effect and its undo also failed. Never downgraded to plain failure.
	ErrInconsistentState = errs.New("inconsistent state after failed compensation")

	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrPackageExhausted    = errs.New("package has no sessions remaining")
	ErrPermissionDenied    = errs.New("appointment belongs to another user")
	ErrValidation          = errs.New("validation failed")
	ErrDuplicateRequest    = errs.New("duplicate request with different parameters")
	ErrRequestInProgress   = errs.New("request is already being processed")
	ErrDatabaseOperation   = errs.New("database operation failed")
)

// ErrAvailabilityUnknown re-exports the availability sentinel: a failed
// check is retryable and must never read as a definitive "slot taken".
var ErrAvailabilityUnknown = queries.ErrAvailabilityUnknown

// markExternal classifies a gateway error: timeouts become the retryable
// timeout error, everything else gets the step's own taxonomy value.
func markExternal(err error, step error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errs.Mark(err, ErrExternalServiceTimeout)
	}
	return errs.Mark(err, step)
}
