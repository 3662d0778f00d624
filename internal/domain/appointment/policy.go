package appointment

import (
	"time"
)

// CancellationPolicy decides whether a late-cancellation fee is owed.
//
// A fee applies only when all of the following hold: the appointment carries a
// captured payment, the notice before the scheduled start is under the policy
// threshold, and the appointment has already used its free reschedule (the
// first reschedule is penalty-free; a late cancellation after it is not).
type CancellationPolicy struct {
	NoticeHours int
	FeeFraction float64
}

func (p CancellationPolicy) Notice() time.Duration {
	return time.Duration(p.NoticeHours) * time.Hour
}

// FeeFor returns the fee owed for cancelling a at now, or nil when cancelling
// is free.
func (p CancellationPolicy) FeeFor(a *Appointment, now time.Time) *Money {
	if !a.IsPaid() {
		return nil
	}
	if !a.HasBeenRescheduled() {
		return nil
	}
	if a.ScheduledAt().Sub(now) >= p.Notice() {
		return nil
	}
	fee := a.Payment().Fraction(p.FeeFraction)
	return &fee
}
