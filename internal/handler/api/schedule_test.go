//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"coach-booking-api/internal/handler/api"
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/usecase/queries"
	"coach-booking-api/tests/common/httptest"
	queriesmock "coach-booking-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockAvailability *queriesmock.MockAvailabilityQueries
	mockPromos       *queriesmock.MockPromoQueries
	mockAppointments *queriesmock.MockAppointmentQueries
	handler          *api.ScheduleHandler
	userID           uuid.UUID
}

func (s *ScheduleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockAvailability = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.mockPromos = queriesmock.NewMockPromoQueries(s.mockCtrl)
	s.mockAppointments = queriesmock.NewMockAppointmentQueries(s.mockCtrl)
	s.userID = uuid.New()

	s.handler = api.NewScheduleHandler(
		s.mockAvailability,
		s.mockPromos,
		s.mockAppointments,
		config.NewTestConfig().Booking,
		clock.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
	)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Next()
	}

	// Setup routes
	s.router.GET("/booking/availability", s.handler.GetAvailability)
	s.router.GET("/booking/promo/:code", s.handler.ValidatePromo)
	s.router.GET("/booking/my-appointments", authMiddleware, s.handler.GetMyAppointments)
}

func (s *ScheduleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}

// ================================================================================
// TestGetAvailability
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestGetAvailability() {
	emptyView := &queries.AvailabilityView{Slots: []queries.SlotView{}, BlockedDates: []string{}}

	s.Run("success: defaults to a two-week window from today", func() {
		s.mockAvailability.EXPECT().ListAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, from, to time.Time) (*queries.AvailabilityView, error) {
				s.Equal(14*24*time.Hour, to.Sub(from))
				return emptyView, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/availability", nil, "")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: explicit date range is honored", func() {
		s.mockAvailability.EXPECT().ListAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, from, to time.Time) (*queries.AvailabilityView, error) {
				s.Equal("2025-06-02", from.Format("2006-01-02"))
				s.Equal("2025-06-09", to.Format("2006-01-02"))
				return emptyView, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/booking/availability?start_date=2025-06-02&end_date=2025-06-09", nil, "")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("malformed start_date: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/booking/availability?start_date=June+2nd", nil, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("end before start: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/booking/availability?start_date=2025-06-09&end_date=2025-06-02", nil, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("window beyond the cap: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/booking/availability?start_date=2025-06-02&end_date=2025-09-02", nil, "")

		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("unknown calendar state: returns 502", func() {
		s.mockAvailability.EXPECT().ListAvailable(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrAvailabilityUnknown)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/availability", nil, "")

		s.Equal(http.StatusBadGateway, rec.Code)
	})
}

// ================================================================================
// TestValidatePromo
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestValidatePromo() {
	s.Run("success: returns the validation view", func() {
		s.mockPromos.EXPECT().Validate(gomock.Any(), "WELCOME25").
			Return(&queries.PromoView{Code: "WELCOME25", Valid: true, UsesRemaining: 60}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/promo/WELCOME25", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"valid":true`)
	})

	s.Run("unknown code still returns 200 with valid=false", func() {
		s.mockPromos.EXPECT().Validate(gomock.Any(), "NOPE").
			Return(&queries.PromoView{Code: "NOPE", Valid: false, Reason: "not found"}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/promo/NOPE", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"valid":false`)
	})
}

// ================================================================================
// TestGetMyAppointments
// ================================================================================

func (s *ScheduleHandlerTestSuite) TestGetMyAppointments() {
	s.Run("success: returns the user's appointments", func() {
		s.mockAppointments.EXPECT().UserAppointments(gomock.Any(), s.userID).
			Return(&queries.UserAppointmentsView{
				Upcoming: []queries.AppointmentView{},
				Past:     []queries.AppointmentView{},
				Packages: []queries.PackageView{},
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/my-appointments", nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unauthorized: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/booking/my-appointments", nil, "")

		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
