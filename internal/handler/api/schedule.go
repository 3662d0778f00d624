package api

import (
	"errors"
	"net/http"
	"time"

	"coach-booking-api/internal/handler/middleware"
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	dateFormat        = "2006-01-02"
	defaultWindowDays = 14
	maxWindowDays     = 60
)

type ScheduleHandler struct {
	availability queries.AvailabilityQueries
	promos       queries.PromoQueries
	appointments queries.AppointmentQueries
	cfg          config.BookingConfig
	clock        clock.Clock
}

func NewScheduleHandler(
	availability queries.AvailabilityQueries,
	promos queries.PromoQueries,
	appointments queries.AppointmentQueries,
	cfg config.BookingConfig,
	clock clock.Clock,
) *ScheduleHandler {
	return &ScheduleHandler{
		availability: availability,
		promos:       promos,
		appointments: appointments,
		cfg:          cfg,
		clock:        clock,
	}
}

// @Summary List available slots
// @Description List bookable slot starts between two dates
// @Tags schedule
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD)"
// @Param end_date query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /booking/availability [get]
func (h *ScheduleHandler) GetAvailability(c *gin.Context) {
	loc, err := h.cfg.Location()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	now := h.clock.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, defaultWindowDays)

	if s := c.Query("start_date"); s != "" {
		from, err = time.ParseInLocation(dateFormat, s, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid start_date format, expected YYYY-MM-DD",
			})
			return
		}
		to = from.AddDate(0, 0, defaultWindowDays)
	}
	if s := c.Query("end_date"); s != "" {
		to, err = time.ParseInLocation(dateFormat, s, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid end_date format, expected YYYY-MM-DD",
			})
			return
		}
	}
	if to.Before(from) || to.Sub(from) > maxWindowDays*24*time.Hour {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date range",
		})
		return
	}

	view, err := h.availability.ListAvailable(c.Request.Context(), from, to)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDateRange):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		case errors.Is(err, queries.ErrAvailabilityUnknown):
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Availability is temporarily unknown",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Validate promo code
// @Description Check whether a promo code can gate a free booking
// @Tags schedule
// @Produce json
// @Param code path string true "Promo code"
// @Success 200 {object} queries.PromoView
// @Router /booking/promo/{code} [get]
func (h *ScheduleHandler) ValidatePromo(c *gin.Context) {
	code := c.Param("code")

	view, err := h.promos.Validate(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Get my appointments
// @Description Upcoming and recent appointments plus session packages for the current user
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.UserAppointmentsView
// @Failure 401 {object} map[string]string
// @Router /booking/my-appointments [get]
func (h *ScheduleHandler) GetMyAppointments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	view, err := h.appointments.UserAppointments(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
