package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	reqdto "coach-booking-api/internal/handler/dto/request"
	resdto "coach-booking-api/internal/handler/dto/response"
	"coach-booking-api/internal/handler/middleware"
	"coach-booking-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookings  commands.BookingCommands
	lifecycle commands.LifecycleCommands
}

func NewBookingHandler(bookings commands.BookingCommands, lifecycle commands.LifecycleCommands) *BookingHandler {
	return &BookingHandler{
		bookings:  bookings,
		lifecycle: lifecycle,
	}
}

// @Summary Book a free session
// @Description Book a promo-gated free coaching session
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateFreeBookingRequest true "Free booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /booking/free [post]
func (h *BookingHandler) CreateFreeBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateFreeBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookings.CreateFreeBooking(c.Request.Context(), commands.CreateFreeBookingInput{
		UserID:      userID,
		UserName:    middleware.GetUserName(c),
		UserEmail:   middleware.GetUserEmail(c),
		Phone:       req.Phone,
		ScheduledAt: req.ScheduledAt,
		BackupAt:    req.BackupAt,
		PromoCode:   req.TrimmedPromoCode(),
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

// @Summary Book a paid session
// @Description Finalize an approved payment order and book the session
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreatePaidBookingRequest true "Paid booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 402 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /booking/paid [post]
func (h *BookingHandler) CreatePaidBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreatePaidBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	input := commands.CreatePaidBookingInput{
		UserID:      userID,
		UserName:    middleware.GetUserName(c),
		UserEmail:   middleware.GetUserEmail(c),
		Phone:       req.Phone,
		ScheduledAt: req.ScheduledAt,
		BackupAt:    req.BackupAt,
		OrderRef:    req.OrderRef,
		Notes:       req.Notes,
	}
	if keyStr := c.GetHeader("Idempotency-Key"); keyStr != "" {
		key, err := uuid.Parse(keyStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid idempotency key format",
			})
			return
		}
		input.IdempotencyKey = &key
		input.RequestHash = requestHash(userID, req.OrderRef, req.ScheduledAt)
	}

	result, err := h.bookings.CreatePaidBooking(c.Request.Context(), input)
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

// @Summary Book a package session
// @Description Book a session against a purchased session package
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePackageBookingRequest true "Package booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /booking/package [post]
func (h *BookingHandler) CreatePackageBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreatePackageBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.bookings.CreatePackageBooking(c.Request.Context(), commands.CreatePackageBookingInput{
		UserID:      userID,
		UserName:    middleware.GetUserName(c),
		UserEmail:   middleware.GetUserEmail(c),
		Phone:       req.Phone,
		ScheduledAt: req.ScheduledAt,
		BackupAt:    req.BackupAt,
		PackageID:   req.PackageID,
		Notes:       req.Notes,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingResult(result))
}

// @Summary Cancel appointment
// @Description Cancel an appointment, charging a late fee when the policy requires one
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.CancelAppointmentRequest false "Cancellation request"
// @Success 200 {object} resdto.CancelResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /booking/appointments/{id}/cancel [post]
func (h *BookingHandler) CancelAppointment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	var req reqdto.CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid request format",
			})
			return
		}
	}

	result, err := h.lifecycle.Cancel(c.Request.Context(), commands.CancelInput{
		UserID:        userID,
		AppointmentID: appointmentID,
		Reason:        req.Reason,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// @Summary Reschedule appointment
// @Description Move an appointment to a new available slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.RescheduleAppointmentRequest true "Reschedule request"
// @Success 200 {object} resdto.RescheduleResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /booking/appointments/{id}/reschedule [post]
func (h *BookingHandler) RescheduleAppointment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	appointmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	var req reqdto.RescheduleAppointmentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.lifecycle.Reschedule(c.Request.Context(), commands.RescheduleInput{
		UserID:        userID,
		AppointmentID: appointmentID,
		NewStart:      req.NewStart,
	})
	if err != nil {
		h.respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRescheduleResult(result))
}

func (h *BookingHandler) respondBookingError(c *gin.Context, err error) {
	switch {
	// A failed compensation still carries its step's sentinel; checked first
	// so it cannot be downgraded to the step's own status.
	case errors.Is(err, commands.ErrInconsistentState):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	case errors.Is(err, commands.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Validation failed",
		})
	case errors.Is(err, commands.ErrPromoInvalid):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid or exhausted promo code",
		})
	case errors.Is(err, commands.ErrPackageExhausted):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Package has no sessions remaining",
		})
	case errors.Is(err, commands.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Appointment belongs to another user",
		})
	case errors.Is(err, commands.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Appointment not found",
		})
	case errors.Is(err, commands.ErrPaymentCaptureFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error": "Payment could not be completed",
		})
	case errors.Is(err, commands.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Requested slot is not available",
		})
	case errors.Is(err, commands.ErrConcurrentBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Slot was just booked by another client",
		})
	case errors.Is(err, commands.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Duplicate booking request with different parameters",
		})
	case errors.Is(err, commands.ErrRequestInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Booking request is currently being processed",
		})
	case errors.Is(err, commands.ErrCalendarCreateFailed), errors.Is(err, commands.ErrCalendarUpdateFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Calendar service is unavailable",
		})
	case errors.Is(err, commands.ErrAvailabilityUnknown):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Availability is temporarily unknown",
		})
	case errors.Is(err, commands.ErrExternalServiceTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": "External service timed out",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

// requestHash fingerprints the parameters that must not change between
// retries of the same idempotency key.
func requestHash(userID uuid.UUID, orderRef string, scheduledAt time.Time) string {
	sum := sha256.Sum256([]byte(userID.String() + "|" + orderRef + "|" + scheduledAt.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(sum[:])
}
