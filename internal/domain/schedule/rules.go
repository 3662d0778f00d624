// Package schedule holds the pure slot computation: the weekly availability
// template and blocked-date set produce candidate slot starts without any I/O,
// so the generation logic is testable independently of the stores and the
// external calendar feed.
package schedule

import (
	"errors"
	"time"
)

var ErrInvalidRule = errors.New("rule end must be after rule start")

// DayMinute is a minute offset from midnight, e.g. 09:30 == 570.
type DayMinute int

func (m DayMinute) Hour() int   { return int(m) / 60 }
func (m DayMinute) Minute() int { return int(m) % 60 }

func DayMinuteOf(t time.Time) DayMinute {
	return DayMinute(t.Hour()*60 + t.Minute())
}

// Rule is one row of the coach's weekly availability template. End is
// exclusive: a slot may start at any covered minute strictly before End.
type Rule struct {
	Weekday time.Weekday
	Start   DayMinute
	End     DayMinute
	Active  bool
}

func (r Rule) Validate() error {
	if r.End <= r.Start {
		return ErrInvalidRule
	}
	return nil
}

// Covers reports whether an instant falls inside the rule's window.
func (r Rule) Covers(t time.Time) bool {
	if !r.Active || t.Weekday() != r.Weekday {
		return false
	}
	m := DayMinuteOf(t)
	return m >= r.Start && m < r.End
}

// BlockedDates is a set of calendar dates (in the coach's timezone) that are
// fully unavailable regardless of the weekly template.
type BlockedDates map[string]struct{}

const dateKeyFormat = "2006-01-02"

func NewBlockedDates(dates []time.Time) BlockedDates {
	set := make(BlockedDates, len(dates))
	for _, d := range dates {
		set[d.Format(dateKeyFormat)] = struct{}{}
	}
	return set
}

func (b BlockedDates) Contains(t time.Time) bool {
	_, ok := b[t.Format(dateKeyFormat)]
	return ok
}

// Candidates generates the ordered slot starts between from and to
// (dates inclusive, interpreted in loc) that fall within an active rule on a
// non-blocked date. Slots are aligned to the rule start at the given
// granularity and never cross a day boundary.
func Candidates(from, to time.Time, rules []Rule, blocked BlockedDates, granularity time.Duration, loc *time.Location) []time.Time {
	if granularity <= 0 || to.Before(from) {
		return nil
	}

	var out []time.Time
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	last := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc)

	for !day.After(last) {
		if !blocked.Contains(day) {
			for _, rule := range rules {
				if !rule.Active || rule.Weekday != day.Weekday() {
					continue
				}
				slot := time.Date(day.Year(), day.Month(), day.Day(), rule.Start.Hour(), rule.Start.Minute(), 0, 0, loc)
				end := time.Date(day.Year(), day.Month(), day.Day(), rule.End.Hour(), rule.End.Minute(), 0, 0, loc)
				for slot.Before(end) {
					out = append(out, slot)
					slot = slot.Add(granularity)
				}
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// CoveredByAny reports whether any active rule covers the instant. Used by the
// availability resolver for the point-in-time check at booking time.
func CoveredByAny(rules []Rule, t time.Time) bool {
	for _, rule := range rules {
		if rule.Covers(t) {
			return true
		}
	}
	return false
}
