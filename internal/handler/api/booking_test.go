//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"coach-booking-api/internal/handler/api"
	"coach-booking-api/internal/pkg/errs"
	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/tests/common/httptest"
	"coach-booking-api/tests/common/testutil"
	commandsmock "coach-booking-api/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockBookings  *commandsmock.MockBookingCommands
	mockLifecycle *commandsmock.MockLifecycleCommands
	handler       *api.BookingHandler
	userID        uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockBookings = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockLifecycle = commandsmock.NewMockLifecycleCommands(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockBookings, s.mockLifecycle)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		// Mock authenticated user
		c.Set("user_id", s.userID)
		c.Set("user_email", "client@example.com")
		c.Set("user_name", "Jordan Client")
		c.Next()
	}

	// Setup routes
	s.router.POST("/booking/free", authMiddleware, s.handler.CreateFreeBooking)
	s.router.POST("/booking/paid", authMiddleware, s.handler.CreatePaidBooking)
	s.router.POST("/booking/package", authMiddleware, s.handler.CreatePackageBooking)
	s.router.POST("/booking/appointments/:id/cancel", authMiddleware, s.handler.CancelAppointment)
	s.router.POST("/booking/appointments/:id/reschedule", authMiddleware, s.handler.RescheduleAppointment)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func freeBookingBody() map[string]any {
	return map[string]any{
		"scheduled_datetime": "2025-06-16T14:00:00Z",
		"user_phone":         "+1-416-555-0100",
		"promo_code":         "WELCOME25",
	}
}

func successResult() *commands.BookingResult {
	return &commands.BookingResult{
		AppointmentID: uuid.New(),
		ScheduledAt:   time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC),
	}
}

// ================================================================================
// TestCreateFreeBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreateFreeBooking() {
	url := "/booking/free"

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockBookings.EXPECT().CreateFreeBooking(gomock.Any(), gomock.Any()).
			Return(successResult(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, freeBookingBody(), "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("promo code is trimmed before the command runs", func() {
		s.mockBookings.EXPECT().CreateFreeBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input commands.CreateFreeBookingInput) (*commands.BookingResult, error) {
				s.Equal("WELCOME25", input.PromoCode)
				s.Equal(s.userID, input.UserID)
				return successResult(), nil
			})

		body := freeBookingBody()
		body["promo_code"] = "  WELCOME25  "
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
	})

	missing := []testCaseBooking{
		{name: "missing field: scheduled_datetime", mutate: testutil.Field("scheduled_datetime", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: user_phone", mutate: testutil.Field("user_phone", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: promo_code", mutate: testutil.Field("promo_code", nil), expectCode: http.StatusBadRequest},
		{name: "malformed datetime", mutate: testutil.Field("scheduled_datetime", "next tuesday"), expectCode: http.StatusBadRequest},
	}
	for _, tc := range missing {
		s.Run(tc.name, func() {
			body := freeBookingBody()
			tc.mutate(body)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

			s.Equal(tc.expectCode, rec.Code)
		})
	}

	commandFailures := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "invalid promo code", err: commands.ErrPromoInvalid, expectCode: http.StatusBadRequest},
		{name: "slot unavailable", err: commands.ErrSlotUnavailable, expectCode: http.StatusConflict},
		{name: "concurrent booking", err: commands.ErrConcurrentBookingConflict, expectCode: http.StatusConflict},
		{name: "calendar down", err: commands.ErrCalendarCreateFailed, expectCode: http.StatusBadGateway},
		{name: "availability unknown", err: commands.ErrAvailabilityUnknown, expectCode: http.StatusBadGateway},
		{name: "external timeout", err: commands.ErrExternalServiceTimeout, expectCode: http.StatusGatewayTimeout},
		{name: "database failure", err: commands.ErrDatabaseOperation, expectCode: http.StatusInternalServerError},
		{
			name:       "classified saga error keeps its status",
			err:        errs.Mark(errs.New("appointment row exists"), commands.ErrSlotUnavailable),
			expectCode: http.StatusConflict,
		},
		{
			name:       "failed compensation is never downgraded to its step",
			err:        errs.Mark(errs.Join(commands.ErrSlotUnavailable, errs.New("refund rejected")), commands.ErrInconsistentState),
			expectCode: http.StatusInternalServerError,
		},
	}
	for _, tc := range commandFailures {
		s.Run("command failure: "+tc.name, func() {
			s.mockBookings.EXPECT().CreateFreeBooking(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, freeBookingBody(), "bearer-token")

			s.Equal(tc.expectCode, rec.Code)
		})
	}

	s.Run("unauthorized: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, freeBookingBody(), "")

		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestCreatePaidBooking
// ================================================================================

func paidBookingBody() map[string]any {
	return map[string]any{
		"scheduled_datetime": "2025-06-16T14:00:00Z",
		"user_phone":         "+1-416-555-0100",
		"payment_order_id":   "order-1",
	}
}

func (s *BookingHandlerTestSuite) TestCreatePaidBooking() {
	url := "/booking/paid"

	s.Run("success: returns 201 Created with the charged amount", func() {
		cents := int64(15000)
		currency := "USD"
		result := successResult()
		result.AmountCents = &cents
		result.Currency = &currency
		s.mockBookings.EXPECT().CreatePaidBooking(gomock.Any(), gomock.Any()).Return(result, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, paidBookingBody(), "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
		s.Contains(rec.Body.String(), "15000")
	})

	s.Run("idempotency key header reaches the command with a request hash", func() {
		key := uuid.New()
		s.mockBookings.EXPECT().CreatePaidBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input commands.CreatePaidBookingInput) (*commands.BookingResult, error) {
				s.Require().NotNil(input.IdempotencyKey)
				s.Equal(key, *input.IdempotencyKey)
				s.NotEmpty(input.RequestHash)
				return successResult(), nil
			})

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, paidBookingBody(), "bearer-token",
			map[string]string{"Idempotency-Key": key.String()})

		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("missing idempotency key header leaves the command unkeyed", func() {
		s.mockBookings.EXPECT().CreatePaidBooking(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input commands.CreatePaidBookingInput) (*commands.BookingResult, error) {
				s.Nil(input.IdempotencyKey)
				return successResult(), nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, paidBookingBody(), "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("malformed idempotency key: returns 400", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, paidBookingBody(), "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	commandFailures := []struct {
		name       string
		err        error
		expectCode int
	}{
		{name: "capture failed", err: commands.ErrPaymentCaptureFailed, expectCode: http.StatusPaymentRequired},
		{name: "duplicate request", err: commands.ErrDuplicateRequest, expectCode: http.StatusConflict},
		{name: "request in progress", err: commands.ErrRequestInProgress, expectCode: http.StatusConflict},
		{name: "slot unavailable", err: commands.ErrSlotUnavailable, expectCode: http.StatusConflict},
	}
	for _, tc := range commandFailures {
		s.Run("command failure: "+tc.name, func() {
			s.mockBookings.EXPECT().CreatePaidBooking(gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, paidBookingBody(), "bearer-token")

			s.Equal(tc.expectCode, rec.Code)
		})
	}

	s.Run("missing field: payment_order_id", func() {
		body := paidBookingBody()
		testutil.Field("payment_order_id", nil)(body)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestCreatePackageBooking
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreatePackageBooking() {
	url := "/booking/package"
	body := map[string]any{
		"scheduled_datetime": "2025-06-16T14:00:00Z",
		"user_phone":         "+1-416-555-0100",
		"package_id":         uuid.New().String(),
	}

	s.Run("success: returns 201 Created", func() {
		s.mockBookings.EXPECT().CreatePackageBooking(gomock.Any(), gomock.Any()).Return(successResult(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("exhausted package: returns 400", func() {
		s.mockBookings.EXPECT().CreatePackageBooking(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrPackageExhausted)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

// ================================================================================
// TestCancelAppointment
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancelAppointment() {
	apptID := uuid.New()
	url := "/booking/appointments/" + apptID.String() + "/cancel"

	s.Run("success: returns 200 OK without a body", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), commands.CancelInput{UserID: s.userID, AppointmentID: apptID}).
			Return(&commands.CancelResult{AppointmentID: apptID, Status: "cancelled"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: reason from the body is forwarded", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, input commands.CancelInput) (*commands.CancelResult, error) {
				s.Require().NotNil(input.Reason)
				s.Equal("schedule conflict", *input.Reason)
				return &commands.CancelResult{AppointmentID: apptID, Status: "cancelled"}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "schedule conflict"}, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("fee details surface in the response", func() {
		cents := int64(7500)
		currency := "USD"
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), gomock.Any()).
			Return(&commands.CancelResult{
				AppointmentID: apptID,
				Status:        "cancelled",
				FeeCents:      &cents,
				FeeCurrency:   &currency,
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "7500")
	})

	s.Run("invalid appointment id: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/booking/appointments/not-a-uuid/cancel", nil, "bearer-token")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("someone else's appointment: returns 403", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(nil, commands.ErrPermissionDenied)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("unknown appointment: returns 404", func() {
		s.mockLifecycle.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(nil, commands.ErrAppointmentNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestRescheduleAppointment
// ================================================================================

func (s *BookingHandlerTestSuite) TestRescheduleAppointment() {
	apptID := uuid.New()
	url := "/booking/appointments/" + apptID.String() + "/reschedule"
	body := map[string]any{"new_datetime": "2025-06-18T15:00:00Z"}

	s.Run("success: returns 200 OK with the new slot", func() {
		newStart := time.Date(2025, 6, 18, 15, 0, 0, 0, time.UTC)
		s.mockLifecycle.EXPECT().Reschedule(gomock.Any(), commands.RescheduleInput{
			UserID:        s.userID,
			AppointmentID: apptID,
			NewStart:      newStart,
		}).Return(&commands.RescheduleResult{
			AppointmentID: apptID,
			ScheduledAt:   newStart,
			Status:        "rescheduled",
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "rescheduled")
	})

	s.Run("missing field: new_datetime", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("slot taken concurrently: returns 409", func() {
		s.mockLifecycle.EXPECT().Reschedule(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrConcurrentBookingConflict)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		s.Equal(http.StatusConflict, rec.Code)
	})
}
