package response

import (
	"time"

	"coach-booking-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ScheduledAt   time.Time `json:"scheduled_datetime"`
	AmountCents   *int64    `json:"payment_amount_cents,omitempty"`
	Currency      *string   `json:"payment_currency,omitempty"`
}

func FromBookingResult(result *commands.BookingResult) *BookingResponse {
	return &BookingResponse{
		AppointmentID: result.AppointmentID,
		ScheduledAt:   result.ScheduledAt,
		AmountCents:   result.AmountCents,
		Currency:      result.Currency,
	}
}

type CancelResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Status        string    `json:"status"`
	FeeCents      *int64    `json:"fee_amount_cents,omitempty"`
	FeeCurrency   *string   `json:"fee_currency,omitempty"`
	AlreadyDone   bool      `json:"already_cancelled,omitempty"`
}

func FromCancelResult(result *commands.CancelResult) *CancelResponse {
	return &CancelResponse{
		AppointmentID: result.AppointmentID,
		Status:        result.Status,
		FeeCents:      result.FeeCents,
		FeeCurrency:   result.FeeCurrency,
		AlreadyDone:   result.AlreadyDone,
	}
}

type RescheduleResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ScheduledAt   time.Time `json:"scheduled_datetime"`
	Status        string    `json:"status"`
}

func FromRescheduleResult(result *commands.RescheduleResult) *RescheduleResponse {
	return &RescheduleResponse{
		AppointmentID: result.AppointmentID,
		ScheduledAt:   result.ScheduledAt,
		Status:        result.Status,
	}
}
