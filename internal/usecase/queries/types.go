package queries

import (
	"time"

	"github.com/google/uuid"
)

// BusyInterval is an externally reported occupied range from the calendar
// feed. Ephemeral: used only for the availability decision at read time.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the interval intersects the open window
// (from, to).
func (b BusyInterval) Overlaps(from, to time.Time) bool {
	return b.Start.Before(to) && b.End.After(from)
}

type SlotView struct {
	StartsAt        time.Time `json:"datetime"`
	DurationMinutes int       `json:"duration_minutes"`
}

type AvailabilityView struct {
	Slots        []SlotView `json:"available_slots"`
	BlockedDates []string   `json:"blocked_dates"`
}

type AppointmentView struct {
	ID            uuid.UUID  `json:"id"`
	SessionType   string     `json:"session_type"`
	ScheduledAt   time.Time  `json:"scheduled_datetime"`
	BackupAt      *time.Time `json:"backup_datetime,omitempty"`
	Phone         string     `json:"user_phone"`
	Status        string     `json:"status"`
	PaymentStatus *string    `json:"payment_status,omitempty"`
	AmountCents   *int64     `json:"payment_amount_cents,omitempty"`
	Currency      *string    `json:"payment_currency,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type PackageView struct {
	ID                uuid.UUID `json:"id"`
	PackageType       string    `json:"package_type"`
	SessionsTotal     int       `json:"sessions_total"`
	SessionsUsed      int       `json:"sessions_used"`
	SessionsRemaining int       `json:"sessions_remaining"`
	PurchasedAt       time.Time `json:"purchase_date"`
	AmountPaidCents   int64     `json:"amount_paid_cents"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
}

type UserAppointmentsView struct {
	Upcoming []AppointmentView `json:"upcoming"`
	Past     []AppointmentView `json:"past"`
	Packages []PackageView     `json:"packages"`
}
