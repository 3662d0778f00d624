package components

import (
	"coach-booking-api/internal/pkg/clock"
	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		fx.Annotate(
			queries.NewAvailabilityQueries,
			fx.As(new(queries.AvailabilityQueries)),
			fx.As(new(commands.AvailabilityPort)),
		),
		queries.NewPromoQueries,
		queries.NewAppointmentQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewLifecycleCommands,
	),
)
