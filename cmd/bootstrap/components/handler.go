package components

import (
	"coach-booking-api/internal/handler"
	"coach-booking-api/internal/handler/api"
	"coach-booking-api/internal/handler/middleware"

	"go.uber.org/fx"
)

const (
	writeRateLimitPerSecond = 5
	writeRateLimitBurst     = 10
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewScheduleHandler,
		middleware.NewAuthMiddleware,
		func() *middleware.RateLimiter {
			return middleware.NewRateLimiter(writeRateLimitPerSecond, writeRateLimitBurst)
		},
	),
	fx.Invoke(handler.NewRouter),
)
