package bootstrap

import (
	"coach-booking-api/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.BookingConfig { return cfg.Booking },
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.PayPalConfig { return cfg.PayPal },
		func(cfg config.Config) config.CalendarConfig { return cfg.Calendar },
	),
)
