//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"coach-booking-api/internal/domain/appointment"
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/pkg/errs"
	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/tests/common/builder"
	commandsmock "coach-booking-api/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LifecycleCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	appointments *commandsmock.MockAppointmentRepository
	availability *commandsmock.MockAvailabilityPort
	calendar     *commandsmock.MockCalendarGateway
	payment      *commandsmock.MockPaymentGateway
	commands     commands.LifecycleCommands
}

func (s *LifecycleCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.appointments = commandsmock.NewMockAppointmentRepository(s.mockCtrl)
	s.availability = commandsmock.NewMockAvailabilityPort(s.mockCtrl)
	s.calendar = commandsmock.NewMockCalendarGateway(s.mockCtrl)
	s.payment = commandsmock.NewMockPaymentGateway(s.mockCtrl)

	s.commands = commands.NewLifecycleCommands(
		s.appointments,
		s.availability,
		s.calendar,
		s.payment,
		config.NewTestConfig().Booking,
		clock.NewMockClock(testNow),
	)
}

func (s *LifecycleCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLifecycleCommandsSuite(t *testing.T) {
	suite.Run(t, new(LifecycleCommandsTestSuite))
}

// ================================================================================
// Cancel
// ================================================================================

func (s *LifecycleCommandsTestSuite) TestCancel() {
	userID := uuid.New()
	apptID := uuid.New()

	cancelInput := commands.CancelInput{UserID: userID, AppointmentID: apptID}

	s.Run("success: free appointment cancels without a fee", func() {
		appt := builder.NewAppointmentBuilder().WithID(apptID).WithUser(userID).Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)
		s.appointments.EXPECT().Cancel(gomock.Any(), apptID, nil).Return(nil)
		s.calendar.EXPECT().CancelEvent(gomock.Any(), "evt-test", gomock.Any()).Return(nil)

		result, err := s.commands.Cancel(context.Background(), cancelInput)

		s.Require().NoError(err)
		s.Equal("cancelled", result.Status)
		s.Nil(result.FeeCents)
		s.False(result.AlreadyDone)
	})

	s.Run("late cancellation after a reschedule charges half against the stored method", func() {
		appt := builder.NewAppointmentBuilder().
			WithID(apptID).WithUser(userID).
			WithScheduledAt(testNow.Add(24 * time.Hour)).
			Paid(15000, "USD").
			WithStatus(appointment.StatusRescheduled).
			WithStoredMethod("vault-1").
			Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)
		s.payment.EXPECT().ChargeStoredMethod(gomock.Any(), "vault-1", gomock.Any(), gomock.Any()).
			Return("charge-1", nil)
		s.appointments.EXPECT().Cancel(gomock.Any(), apptID, nil).Return(nil)
		s.calendar.EXPECT().CancelEvent(gomock.Any(), "evt-test", gomock.Any()).Return(nil)

		result, err := s.commands.Cancel(context.Background(), cancelInput)

		s.Require().NoError(err)
		s.Require().NotNil(result.FeeCents)
		s.Equal(int64(7500), *result.FeeCents)
		s.Equal("USD", *result.FeeCurrency)
		s.Require().NotNil(result.FeeChargeRef)
		s.Equal("charge-1", *result.FeeChargeRef)
	})

	s.Run("fee is waived when no payment method is on file", func() {
		appt := builder.NewAppointmentBuilder().
			WithID(apptID).WithUser(userID).
			WithScheduledAt(testNow.Add(24 * time.Hour)).
			Paid(15000, "USD").
			WithStatus(appointment.StatusRescheduled).
			Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)
		s.appointments.EXPECT().Cancel(gomock.Any(), apptID, nil).Return(nil)
		s.calendar.EXPECT().CancelEvent(gomock.Any(), "evt-test", gomock.Any()).Return(nil)

		result, err := s.commands.Cancel(context.Background(), cancelInput)

		s.Require().NoError(err)
		s.Nil(result.FeeCents)
		s.Nil(result.FeeChargeRef)
	})

	s.Run("failed fee charge aborts the cancellation", func() {
		appt := builder.NewAppointmentBuilder().
			WithID(apptID).WithUser(userID).
			WithScheduledAt(testNow.Add(24 * time.Hour)).
			Paid(15000, "USD").
			WithStatus(appointment.StatusRescheduled).
			WithStoredMethod("vault-1").
			Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)
		s.payment.EXPECT().ChargeStoredMethod(gomock.Any(), "vault-1", gomock.Any(), gomock.Any()).
			Return("", errs.New("card declined"))

		_, err := s.commands.Cancel(context.Background(), cancelInput)

		s.ErrorIs(err, commands.ErrPaymentCaptureFailed)
	})

	s.Run("cancelling an already-cancelled appointment is a no-op", func() {
		appt := builder.NewAppointmentBuilder().
			WithID(apptID).WithUser(userID).
			WithStatus(appointment.StatusCancelled).
			Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)

		result, err := s.commands.Cancel(context.Background(), cancelInput)

		s.Require().NoError(err)
		s.True(result.AlreadyDone)
	})

	s.Run("completed appointment can no longer be cancelled", func() {
		appt := builder.NewAppointmentBuilder().
			WithID(apptID).WithUser(userID).
			WithStatus(appointment.StatusCompleted).
			Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)

		_, err := s.commands.Cancel(context.Background(), cancelInput)

		s.ErrorIs(err, commands.ErrValidation)
	})

	s.Run("unknown appointment", func() {
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(nil, notFoundErr())

		_, err := s.commands.Cancel(context.Background(), cancelInput)

		s.ErrorIs(err, commands.ErrAppointmentNotFound)
	})

	s.Run("someone else's appointment", func() {
		appt := builder.NewAppointmentBuilder().WithID(apptID).WithUser(uuid.New()).Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)

		_, err := s.commands.Cancel(context.Background(), cancelInput)

		s.ErrorIs(err, commands.ErrPermissionDenied)
	})

	s.Run("calendar cleanup failure does not undo the cancellation", func() {
		appt := builder.NewAppointmentBuilder().WithID(apptID).WithUser(userID).Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)
		s.appointments.EXPECT().Cancel(gomock.Any(), apptID, nil).Return(nil)
		s.calendar.EXPECT().CancelEvent(gomock.Any(), "evt-test", gomock.Any()).
			Return(errs.New("calendar unreachable"))

		result, err := s.commands.Cancel(context.Background(), cancelInput)

		s.Require().NoError(err)
		s.Equal("cancelled", result.Status)
	})
}

// ================================================================================
// Reschedule
// ================================================================================

func (s *LifecycleCommandsTestSuite) TestReschedule() {
	userID := uuid.New()
	apptID := uuid.New()
	oldStart := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	newStart := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)

	input := commands.RescheduleInput{UserID: userID, AppointmentID: apptID, NewStart: newStart}

	activeAppt := func() *appointment.Appointment {
		return builder.NewAppointmentBuilder().
			WithID(apptID).WithUser(userID).WithScheduledAt(oldStart).Build()
	}

	s.Run("success: event moves before the store commits", func() {
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(activeAppt(), nil)
		s.availability.EXPECT().IsAvailable(gomock.Any(), newStart).Return(true, nil)
		gomock.InOrder(
			s.calendar.EXPECT().UpdateEvent(gomock.Any(), "evt-test", newStart, 30*time.Minute).Return(nil),
			s.appointments.EXPECT().Reschedule(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)

		result, err := s.commands.Reschedule(context.Background(), input)

		s.Require().NoError(err)
		s.Equal(newStart, result.ScheduledAt)
		s.Equal("rescheduled", result.Status)
	})

	s.Run("unavailable new slot stops before the calendar", func() {
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(activeAppt(), nil)
		s.availability.EXPECT().IsAvailable(gomock.Any(), newStart).Return(false, nil)

		_, err := s.commands.Reschedule(context.Background(), input)

		s.ErrorIs(err, commands.ErrSlotUnavailable)
	})

	s.Run("failed availability check stays retryable", func() {
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(activeAppt(), nil)
		s.availability.EXPECT().IsAvailable(gomock.Any(), newStart).
			Return(false, errs.New("busy feed unreachable"))

		_, err := s.commands.Reschedule(context.Background(), input)

		s.ErrorIs(err, commands.ErrAvailabilityUnknown)
		s.NotErrorIs(err, commands.ErrSlotUnavailable)
	})

	s.Run("lost slot claim moves the event back", func() {
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(activeAppt(), nil)
		s.availability.EXPECT().IsAvailable(gomock.Any(), newStart).Return(true, nil)
		gomock.InOrder(
			s.calendar.EXPECT().UpdateEvent(gomock.Any(), "evt-test", newStart, 30*time.Minute).Return(nil),
			s.appointments.EXPECT().Reschedule(gomock.Any(), gomock.Any(), gomock.Any()).Return(conflictErr()),
			s.calendar.EXPECT().UpdateEvent(gomock.Any(), "evt-test", oldStart, 30*time.Minute).Return(nil),
		)

		_, err := s.commands.Reschedule(context.Background(), input)

		s.ErrorIs(err, commands.ErrConcurrentBookingConflict)
	})

	s.Run("failed move-back escalates to inconsistent state", func() {
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(activeAppt(), nil)
		s.availability.EXPECT().IsAvailable(gomock.Any(), newStart).Return(true, nil)
		s.calendar.EXPECT().UpdateEvent(gomock.Any(), "evt-test", newStart, 30*time.Minute).Return(nil)
		s.appointments.EXPECT().Reschedule(gomock.Any(), gomock.Any(), gomock.Any()).Return(conflictErr())
		s.calendar.EXPECT().UpdateEvent(gomock.Any(), "evt-test", oldStart, 30*time.Minute).
			Return(errs.New("calendar unreachable"))

		_, err := s.commands.Reschedule(context.Background(), input)

		s.ErrorIs(err, commands.ErrInconsistentState)
	})

	s.Run("event move failure leaves the store untouched", func() {
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(activeAppt(), nil)
		s.availability.EXPECT().IsAvailable(gomock.Any(), newStart).Return(true, nil)
		s.calendar.EXPECT().UpdateEvent(gomock.Any(), "evt-test", newStart, 30*time.Minute).
			Return(errs.New("calendar unreachable"))

		_, err := s.commands.Reschedule(context.Background(), input)

		s.ErrorIs(err, commands.ErrCalendarUpdateFailed)
	})

	s.Run("cancelled appointment cannot be rescheduled", func() {
		appt := builder.NewAppointmentBuilder().
			WithID(apptID).WithUser(userID).
			WithStatus(appointment.StatusCancelled).
			Build()
		s.appointments.EXPECT().FindByID(gomock.Any(), apptID).Return(appt, nil)

		_, err := s.commands.Reschedule(context.Background(), input)

		s.ErrorIs(err, commands.ErrValidation)
	})

	s.Run("new start validation", func() {
		cases := []struct {
			name     string
			newStart time.Time
		}{
			{name: "zero", newStart: time.Time{}},
			{name: "in the past", newStart: testNow.Add(-time.Hour)},
			{name: "off the slot grid", newStart: newStart.Add(7 * time.Minute)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				bad := input
				bad.NewStart = tc.newStart

				_, err := s.commands.Reschedule(context.Background(), bad)

				s.ErrorIs(err, commands.ErrValidation)
			})
		}
	})
}
