package components

import (
	repo_impl "coach-booking-api/internal/infra/repository"
	"coach-booking-api/internal/usecase/commands"
	"coach-booking-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewAppointmentRepository,
			fx.As(new(commands.AppointmentRepository)),
			fx.As(new(queries.AppointmentConflictReads)),
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			repo_impl.NewPromoRepository,
			fx.As(new(commands.PromoRepository)),
			fx.As(new(queries.PromoReadStore)),
		),
		fx.Annotate(
			repo_impl.NewPackageRepository,
			fx.As(new(commands.PackageRepository)),
			fx.As(new(queries.PackageReadStore)),
		),
		fx.Annotate(
			repo_impl.NewIdempotencyRepository,
			fx.As(new(commands.IdempotencyRepository)),
		),
		fx.Annotate(
			repo_impl.NewScheduleRepository,
			fx.As(new(queries.ScheduleReadStore)),
		),
	),
)
