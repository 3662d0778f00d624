package request

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CreateFreeBookingRequest struct {
	ScheduledAt time.Time  `json:"scheduled_datetime" binding:"required"`
	BackupAt    *time.Time `json:"backup_datetime,omitempty"`
	Phone       string     `json:"user_phone" binding:"required"`
	PromoCode   string     `json:"promo_code" binding:"required"`
	Notes       string     `json:"preparation_notes,omitempty"`
}

func (r CreateFreeBookingRequest) TrimmedPromoCode() string {
	return strings.TrimSpace(r.PromoCode)
}

type CreatePaidBookingRequest struct {
	ScheduledAt time.Time  `json:"scheduled_datetime" binding:"required"`
	BackupAt    *time.Time `json:"backup_datetime,omitempty"`
	Phone       string     `json:"user_phone" binding:"required"`
	OrderRef    string     `json:"payment_order_id" binding:"required"`
	Notes       string     `json:"preparation_notes,omitempty"`
}

type CreatePackageBookingRequest struct {
	ScheduledAt time.Time  `json:"scheduled_datetime" binding:"required"`
	BackupAt    *time.Time `json:"backup_datetime,omitempty"`
	Phone       string     `json:"user_phone" binding:"required"`
	PackageID   uuid.UUID  `json:"package_id" binding:"required"`
	Notes       string     `json:"preparation_notes,omitempty"`
}

type CancelAppointmentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type RescheduleAppointmentRequest struct {
	NewStart time.Time `json:"new_datetime" binding:"required"`
}
