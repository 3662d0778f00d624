package appointment

type SessionType string

const (
	SessionFree        SessionType = "free"
	SessionPaidSingle  SessionType = "paid_single"
	SessionPaidPackage SessionType = "paid_package"
)

func (s SessionType) IsValid() bool {
	switch s {
	case SessionFree, SessionPaidSingle, SessionPaidPackage:
		return true
	default:
		return false
	}
}

func (s SessionType) String() string {
	return string(s)
}

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusRescheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive reports whether the appointment still occupies its slot.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusRescheduled
}

// IsTerminal reports whether no further lifecycle transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) String() string {
	return string(s)
}
