package bootstrap

import (
	"context"

	"coach-booking-api/internal/infra/gateway/calendar"
	"coach-booking-api/internal/infra/gateway/payment"
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/pkg/config"
	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/internal/usecase/queries"

	"go.uber.org/fx"
)

// GatewayModule selects real or null gateways once, at startup, based on
// which credentials are configured. Handlers and use cases never branch on
// configuration themselves.
var GatewayModule = fx.Module("gateways",
	fx.Provide(
		fx.Annotate(
			NewCalendarGateway,
			fx.As(new(commands.CalendarGateway)),
			fx.As(new(queries.BusyFeed)),
		),
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(commands.PaymentGateway)),
		),
	),
)

type CalendarPort interface {
	commands.CalendarGateway
	queries.BusyFeed
}

func NewCalendarGateway(cfg config.Config) (CalendarPort, error) {
	if !cfg.Calendar.Configured() {
		return calendar.NewNullGateway(), nil
	}
	return calendar.NewGoogleGateway(context.Background(), cfg.Calendar, cfg.Booking)
}

func NewPaymentGateway(cfg config.Config, clk clock.Clock) commands.PaymentGateway {
	if !cfg.PayPal.Configured() {
		return payment.NewNullGateway(cfg.Booking)
	}
	return payment.NewPayPalGateway(cfg.PayPal, clk)
}
