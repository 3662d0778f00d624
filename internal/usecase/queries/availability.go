package queries

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coach-booking-api/internal/domain/schedule"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/pkg/errs"
)

var (
	ErrAvailabilityUnknown = errs.New("availability could not be determined")
	ErrInvalidDateRange    = errs.New("invalid date range")
)

type ScheduleReadStore interface {
	ActiveRules(ctx context.Context) ([]schedule.Rule, error)
	BlockedDates(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

type AppointmentConflictReads interface {
	// ActiveStartsBetween returns the starts of non-cancelled appointments
	// with from < start < to (both bounds exclusive).
	ActiveStartsBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// BusyFeed is the external calendar's busy-time query. Read-only, so it is
// the one external call allowed a bounded retry.
type BusyFeed interface {
	BusyIntervals(ctx context.Context, from, to time.Time) ([]BusyInterval, error)
}

type AvailabilityQueries interface {
	ListAvailable(ctx context.Context, from, to time.Time) (*AvailabilityView, error)
	// IsAvailable is the authoritative check run immediately before a booking
	// is committed. A busy-feed failure propagates as a retryable error, never
	// as "available".
	IsAvailable(ctx context.Context, at time.Time) (bool, error)
}

type availabilityQueriesImpl struct {
	scheduleReads ScheduleReadStore
	conflictReads AppointmentConflictReads
	busyFeed      BusyFeed
	cfg           config.BookingConfig
	loc           *time.Location
}

func NewAvailabilityQueries(
	scheduleReads ScheduleReadStore,
	conflictReads AppointmentConflictReads,
	busyFeed BusyFeed,
	cfg config.BookingConfig,
) (AvailabilityQueries, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, errs.Wrap(err, "invalid booking timezone")
	}
	return &availabilityQueriesImpl{
		scheduleReads: scheduleReads,
		conflictReads: conflictReads,
		busyFeed:      busyFeed,
		cfg:           cfg,
		loc:           loc,
	}, nil
}

func (q *availabilityQueriesImpl) ListAvailable(ctx context.Context, from, to time.Time) (*AvailabilityView, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	rules, err := q.scheduleReads.ActiveRules(ctx)
	if err != nil {
		return nil, err
	}
	blockedDates, err := q.scheduleReads.BlockedDates(ctx, from, to)
	if err != nil {
		return nil, err
	}
	blocked := schedule.NewBlockedDates(blockedDates)

	candidates := schedule.Candidates(from.In(q.loc), to.In(q.loc), rules, blocked, q.cfg.SlotGranularity, q.loc)

	view := &AvailabilityView{
		Slots:        []SlotView{},
		BlockedDates: formatDates(blockedDates),
	}
	if len(candidates) == 0 {
		return view, nil
	}

	buffer := q.cfg.Buffer()
	windowStart := candidates[0].Add(-buffer)
	windowEnd := candidates[len(candidates)-1].Add(buffer)

	booked, err := q.conflictReads.ActiveStartsBetween(ctx, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	busy, err := q.busyIntervalsWithRetry(ctx, windowStart, windowEnd)
	if err != nil {
		// Fail closed: an unknown calendar state must not report free slots.
		return nil, errs.Mark(err, ErrAvailabilityUnknown)
	}

	for _, slot := range candidates {
		if conflictsWithBooked(slot, booked, buffer) {
			continue
		}
		if conflictsWithBusy(slot, busy, buffer) {
			continue
		}
		view.Slots = append(view.Slots, SlotView{
			StartsAt:        slot,
			DurationMinutes: q.cfg.SessionDurationMinutes,
		})
	}
	return view, nil
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, at time.Time) (bool, error) {
	at = at.In(q.loc)

	blockedDates, err := q.scheduleReads.BlockedDates(ctx, at, at)
	if err != nil {
		return false, err
	}
	if schedule.NewBlockedDates(blockedDates).Contains(at) {
		return false, nil
	}

	rules, err := q.scheduleReads.ActiveRules(ctx)
	if err != nil {
		return false, err
	}
	if !schedule.CoveredByAny(rules, at) {
		return false, nil
	}

	buffer := q.cfg.Buffer()
	booked, err := q.conflictReads.ActiveStartsBetween(ctx, at.Add(-buffer), at.Add(buffer))
	if err != nil {
		return false, err
	}
	if len(booked) > 0 {
		return false, nil
	}

	busy, err := q.busyIntervalsWithRetry(ctx, at.Add(-buffer), at.Add(buffer))
	if err != nil {
		return false, errs.Mark(err, ErrAvailabilityUnknown)
	}
	return !conflictsWithBusy(at, busy, buffer), nil
}

// busyIntervalsWithRetry retries the read-only busy query a bounded number of
// times. Mutating calendar calls are never retried.
func (q *availabilityQueriesImpl) busyIntervalsWithRetry(ctx context.Context, from, to time.Time) ([]BusyInterval, error) {
	attempts := q.cfg.ReadRetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(q.cfg.ReadRetryBackoff):
			}
			slog.Debug("retrying busy-interval query", "attempt", attempt+1)
		}
		attemptCtx, cancel := context.WithTimeout(ctx, q.cfg.ExternalCallTimeout)
		busy, err := q.busyFeed.BusyIntervals(attemptCtx, from, to)
		cancel()
		if err == nil {
			return busy, nil
		}
		lastErr = err
		if errors.Is(err, context.Canceled) {
			break
		}
	}
	return nil, lastErr
}

func conflictsWithBooked(slot time.Time, booked []time.Time, buffer time.Duration) bool {
	for _, b := range booked {
		d := slot.Sub(b)
		if d < 0 {
			d = -d
		}
		if d < buffer {
			return true
		}
	}
	return false
}

func conflictsWithBusy(slot time.Time, busy []BusyInterval, buffer time.Duration) bool {
	for _, b := range busy {
		if b.Overlaps(slot.Add(-buffer), slot.Add(buffer)) {
			return true
		}
	}
	return false
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format("2006-01-02")
	}
	return out
}
