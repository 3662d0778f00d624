package commands

import (
	"context"
	"time"

	"coach-booking-api/internal/domain/appointment"
	"coach-booking-api/internal/domain/promo"

	"github.com/google/uuid"
)

// EventDetails is everything the calendar gateway needs to create a coaching
// session event.
type EventDetails struct {
	UserName    string
	UserEmail   string
	UserPhone   string
	Start       time.Time
	Duration    time.Duration
	SessionType appointment.SessionType
	Notes       string
}

// CaptureResult is the outcome of finalizing a pre-approved payment order.
type CaptureResult struct {
	OrderRef        string
	CaptureRef      string
	Status          string
	PayerEmail      string
	StoredMethodRef *string
}

func (r *CaptureResult) Completed() bool {
	return r != nil && r.Status == "COMPLETED"
}

type OrderDetails struct {
	OrderRef    string
	Status      string
	AmountCents int64
	Currency    string
}

type PackageSnapshot struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	PackageType   string
	SessionsTotal int
	SessionsUsed  int
	Status        string
}

func (p *PackageSnapshot) SessionsRemaining() int {
	remaining := p.SessionsTotal - p.SessionsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (p *PackageSnapshot) Usable() bool {
	return p.Status == "active" && p.SessionsRemaining() > 0
}

type IdempotencyRecord struct {
	Status              string
	RequestHash         string
	ResultAppointmentID *uuid.UUID
}

type CalendarGateway interface {
	CreateEvent(ctx context.Context, details EventDetails) (string, error)
	UpdateEvent(ctx context.Context, eventRef string, newStart time.Time, duration time.Duration) error
	CancelEvent(ctx context.Context, eventRef, reason string) error
}

type PaymentGateway interface {
	// CaptureOrder finalizes a charge the buyer already approved upstream.
	CaptureOrder(ctx context.Context, orderRef string) (*CaptureResult, error)
	// RefundCapture issues a full refund when amount is nil, partial otherwise.
	RefundCapture(ctx context.Context, captureRef string, amount *appointment.Money) (string, error)
	ChargeStoredMethod(ctx context.Context, methodRef string, amount appointment.Money, description string) (string, error)
	GetOrder(ctx context.Context, orderRef string) (*OrderDetails, error)
}

type AppointmentRepository interface {
	// Insert claims the slot bucket; a lost claim surfaces as a conflict-kind
	// repository error.
	Insert(ctx context.Context, a *appointment.Appointment, slotBucket time.Time) error
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	// Reschedule moves the appointment to its new start and bucket in one
	// conditional update, subject to the same slot-claim constraint as Insert.
	Reschedule(ctx context.Context, a *appointment.Appointment, slotBucket time.Time) error
	Cancel(ctx context.Context, id uuid.UUID, reason *string) error
}

type PromoRepository interface {
	FindByCode(ctx context.Context, code string) (*promo.PromoCode, error)
	// Consume increments the usage counter only while the precondition still
	// holds; it reports false when the race was lost.
	Consume(ctx context.Context, code string) (bool, error)
}

type PackageRepository interface {
	FindByID(ctx context.Context, id, userID uuid.UUID) (*PackageSnapshot, error)
	// ConsumeSession reserves one session if any remain; reports false when
	// the package is exhausted.
	ConsumeSession(ctx context.Context, id uuid.UUID) (bool, error)
	// ReleaseSession undoes a ConsumeSession when a later saga step fails.
	ReleaseSession(ctx context.Context, id uuid.UUID) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	Get(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	MarkCompleted(ctx context.Context, key, userID, appointmentID uuid.UUID) error
}
