package queries

import (
	"context"
	"time"

	"coach-booking-api/internal/pkg/clock"

	"github.com/google/uuid"
)

const pastAppointmentsLimit = 10

type AppointmentReadStore interface {
	UpcomingByUser(ctx context.Context, userID uuid.UUID, from time.Time) ([]AppointmentView, error)
	PastByUser(ctx context.Context, userID uuid.UUID, until time.Time, limit int32) ([]AppointmentView, error)
}

type PackageReadStore interface {
	PackagesByUser(ctx context.Context, userID uuid.UUID) ([]PackageView, error)
}

type AppointmentQueries interface {
	UserAppointments(ctx context.Context, userID uuid.UUID) (*UserAppointmentsView, error)
}

type appointmentQueriesImpl struct {
	appointmentReads AppointmentReadStore
	packageReads     PackageReadStore
	clock            clock.Clock
}

func NewAppointmentQueries(
	appointmentReads AppointmentReadStore,
	packageReads PackageReadStore,
	clock clock.Clock,
) AppointmentQueries {
	return &appointmentQueriesImpl{
		appointmentReads: appointmentReads,
		packageReads:     packageReads,
		clock:            clock,
	}
}

func (q *appointmentQueriesImpl) UserAppointments(ctx context.Context, userID uuid.UUID) (*UserAppointmentsView, error) {
	now := q.clock.Now()

	upcoming, err := q.appointmentReads.UpcomingByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	past, err := q.appointmentReads.PastByUser(ctx, userID, now, pastAppointmentsLimit)
	if err != nil {
		return nil, err
	}
	packages, err := q.packageReads.PackagesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserAppointmentsView{
		Upcoming: upcoming,
		Past:     past,
		Packages: packages,
	}, nil
}
