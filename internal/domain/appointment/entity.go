package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingSchedule   = errors.New("scheduled time is required")
	ErrMissingEventRef   = errors.New("calendar event reference is required")
	ErrMissingCaptureRef = errors.New("payment capture reference is required")
	ErrNotActive         = errors.New("appointment is not active")
	ErrNotPaid           = errors.New("appointment carries no payment")
)

// Appointment is created only by a successfully completed booking saga and is
// never deleted: lifecycle changes are status transitions.
type Appointment struct {
	id                uuid.UUID
	userID            uuid.UUID
	sessionType       SessionType
	scheduledAt       time.Time
	backupAt          *time.Time
	contact           Contact
	status            Status
	paymentStatus     *PaymentStatus
	payment           *Money
	calendarEventRef  string
	paymentOrderRef   *string
	paymentCaptureRef *string
	storedMethodRef   *string
	packageID         *uuid.UUID
	promoCode         *string
	createdAt         time.Time
	updatedAt         time.Time
}

func newAppointment(userID uuid.UUID, sessionType SessionType, scheduledAt time.Time, backupAt *time.Time, contact Contact, eventRef string) (*Appointment, error) {
	if scheduledAt.IsZero() {
		return nil, ErrMissingSchedule
	}
	if eventRef == "" {
		return nil, ErrMissingEventRef
	}
	return &Appointment{
		id:               uuid.New(),
		userID:           userID,
		sessionType:      sessionType,
		scheduledAt:      scheduledAt,
		backupAt:         backupAt,
		contact:          contact,
		status:           StatusScheduled,
		calendarEventRef: eventRef,
	}, nil
}

// NewFree builds a promo-gated free session appointment.
func NewFree(userID uuid.UUID, scheduledAt time.Time, backupAt *time.Time, contact Contact, eventRef, promoCode string) (*Appointment, error) {
	a, err := newAppointment(userID, SessionFree, scheduledAt, backupAt, contact, eventRef)
	if err != nil {
		return nil, err
	}
	if promoCode == "" {
		return nil, errors.New("promo code is required for a free session")
	}
	a.promoCode = &promoCode
	return a, nil
}

// PaymentRefs carries the external payment identifiers produced by a capture.
type PaymentRefs struct {
	OrderRef        string
	CaptureRef      string
	StoredMethodRef *string
}

// NewPaidSingle builds a single paid session appointment from a completed
// capture.
func NewPaidSingle(userID uuid.UUID, scheduledAt time.Time, backupAt *time.Time, contact Contact, eventRef string, amount Money, refs PaymentRefs) (*Appointment, error) {
	a, err := newAppointment(userID, SessionPaidSingle, scheduledAt, backupAt, contact, eventRef)
	if err != nil {
		return nil, err
	}
	if refs.CaptureRef == "" {
		return nil, ErrMissingCaptureRef
	}
	paid := PaymentPaid
	a.paymentStatus = &paid
	a.payment = &amount
	a.paymentOrderRef = &refs.OrderRef
	a.paymentCaptureRef = &refs.CaptureRef
	a.storedMethodRef = refs.StoredMethodRef
	return a, nil
}

// NewPackageSession builds an appointment that consumes one session of a
// previously purchased package.
func NewPackageSession(userID uuid.UUID, scheduledAt time.Time, backupAt *time.Time, contact Contact, eventRef string, packageID uuid.UUID) (*Appointment, error) {
	a, err := newAppointment(userID, SessionPaidPackage, scheduledAt, backupAt, contact, eventRef)
	if err != nil {
		return nil, err
	}
	a.packageID = &packageID
	return a, nil
}

func Reconstruct(
	id, userID uuid.UUID,
	sessionType SessionType,
	scheduledAt time.Time,
	backupAt *time.Time,
	contact Contact,
	status Status,
	paymentStatus *PaymentStatus,
	payment *Money,
	calendarEventRef string,
	paymentOrderRef, paymentCaptureRef, storedMethodRef *string,
	packageID *uuid.UUID,
	promoCode *string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:                id,
		userID:            userID,
		sessionType:       sessionType,
		scheduledAt:       scheduledAt,
		backupAt:          backupAt,
		contact:           contact,
		status:            status,
		paymentStatus:     paymentStatus,
		payment:           payment,
		calendarEventRef:  calendarEventRef,
		paymentOrderRef:   paymentOrderRef,
		paymentCaptureRef: paymentCaptureRef,
		storedMethodRef:   storedMethodRef,
		packageID:         packageID,
		promoCode:         promoCode,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// SlotBucket truncates the scheduled start to the slot granularity. The store
// keeps a unique index on this value for active appointments, which makes the
// insert the serialization point for slot claims.
func SlotBucket(scheduledAt time.Time, granularity time.Duration) time.Time {
	return scheduledAt.UTC().Truncate(granularity)
}

func (a *Appointment) Reschedule(newStart time.Time) error {
	if !a.status.IsActive() {
		return ErrNotActive
	}
	if newStart.IsZero() {
		return ErrMissingSchedule
	}
	a.scheduledAt = newStart
	a.status = StatusRescheduled
	return nil
}

func (a *Appointment) Cancel() error {
	if a.status.IsTerminal() {
		return ErrNotActive
	}
	a.status = StatusCancelled
	return nil
}

func (a *Appointment) MarkRefunded() error {
	if a.paymentStatus == nil || *a.paymentStatus != PaymentPaid {
		return ErrNotPaid
	}
	refunded := PaymentRefunded
	a.paymentStatus = &refunded
	return nil
}

// IsPaid reports whether a captured, un-refunded payment backs this
// appointment.
func (a *Appointment) IsPaid() bool {
	return a.paymentStatus != nil && *a.paymentStatus == PaymentPaid && a.payment != nil && !a.payment.IsZero()
}

func (a *Appointment) HasBeenRescheduled() bool {
	return a.status == StatusRescheduled
}

func (a *Appointment) ID() uuid.UUID                 { return a.id }
func (a *Appointment) UserID() uuid.UUID             { return a.userID }
func (a *Appointment) SessionType() SessionType      { return a.sessionType }
func (a *Appointment) ScheduledAt() time.Time        { return a.scheduledAt }
func (a *Appointment) BackupAt() *time.Time          { return a.backupAt }
func (a *Appointment) Contact() Contact              { return a.contact }
func (a *Appointment) Status() Status                { return a.status }
func (a *Appointment) PaymentStatus() *PaymentStatus { return a.paymentStatus }
func (a *Appointment) Payment() *Money               { return a.payment }
func (a *Appointment) CalendarEventRef() string      { return a.calendarEventRef }
func (a *Appointment) PaymentOrderRef() *string      { return a.paymentOrderRef }
func (a *Appointment) PaymentCaptureRef() *string    { return a.paymentCaptureRef }
func (a *Appointment) StoredMethodRef() *string      { return a.storedMethodRef }
func (a *Appointment) PackageID() *uuid.UUID         { return a.packageID }
func (a *Appointment) PromoCode() *string            { return a.promoCode }
func (a *Appointment) CreatedAt() time.Time          { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time          { return a.updatedAt }
