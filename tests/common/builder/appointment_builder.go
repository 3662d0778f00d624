//go:build unit || e2e

package builder

import (
	"time"

	"coach-booking-api/internal/domain/appointment"

	"github.com/google/uuid"
)

// AppointmentBuilder reconstructs appointment entities in arbitrary states
// for tests, bypassing the saga-only constructors.
type AppointmentBuilder struct {
	id              uuid.UUID
	userID          uuid.UUID
	sessionType     appointment.SessionType
	scheduledAt     time.Time
	status          appointment.Status
	paymentStatus   *appointment.PaymentStatus
	payment         *appointment.Money
	eventRef        string
	captureRef      *string
	storedMethodRef *string
	promoCode       *string
	packageID       *uuid.UUID
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		id:          uuid.New(),
		userID:      uuid.New(),
		sessionType: appointment.SessionFree,
		scheduledAt: time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
		status:      appointment.StatusScheduled,
		eventRef:    "evt-test",
	}
}

func (b *AppointmentBuilder) WithID(id uuid.UUID) *AppointmentBuilder {
	b.id = id
	return b
}

func (b *AppointmentBuilder) WithUser(userID uuid.UUID) *AppointmentBuilder {
	b.userID = userID
	return b
}

func (b *AppointmentBuilder) WithScheduledAt(at time.Time) *AppointmentBuilder {
	b.scheduledAt = at
	return b
}

func (b *AppointmentBuilder) WithStatus(status appointment.Status) *AppointmentBuilder {
	b.status = status
	return b
}

func (b *AppointmentBuilder) Paid(cents int64, currency string) *AppointmentBuilder {
	b.sessionType = appointment.SessionPaidSingle
	paid := appointment.PaymentPaid
	b.paymentStatus = &paid
	m, _ := appointment.NewMoney(cents, currency)
	b.payment = &m
	capture := "cap-test"
	b.captureRef = &capture
	return b
}

func (b *AppointmentBuilder) WithStoredMethod(ref string) *AppointmentBuilder {
	b.storedMethodRef = &ref
	return b
}

func (b *AppointmentBuilder) Build() *appointment.Appointment {
	contact, _ := appointment.NewContact("+1-416-555-0100", "client@example.com")
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	var orderRef *string
	if b.captureRef != nil {
		order := "order-test"
		orderRef = &order
	}
	return appointment.Reconstruct(
		b.id, b.userID,
		b.sessionType,
		b.scheduledAt,
		nil,
		contact,
		b.status,
		b.paymentStatus,
		b.payment,
		b.eventRef,
		orderRef, b.captureRef, b.storedMethodRef,
		b.packageID,
		b.promoCode,
		now, now,
	)
}
