package main

import (
	"context"
	"log/slog"
	"os"

	"smarthr/config"
	"smarthr/internal/delivery"
	"smarthr/internal/delivery/api"
	"smarthr/internal/delivery/api/middleware"
	"smarthr/internal/delivery/api/router/handler"
	"smarthr/internal/domain/service"
	"smarthr/internal/infra/auth"
	logs "smarthr/internal/infra/log"
	"smarthr/internal/infra/mail"
	"smarthr/internal/infra/metrics"
	"smarthr/internal/infra/persistence/postgres"
	"smarthr/internal/infra/throttle"
	"smarthr/internal/usecase/impl"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		metrics.New,
		metrics.NewAuthMetrics,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			fx.Annotate(
				postgres.NewHealthChecker,
				fx.As(new(handler.ReadinessCheck)),
				fx.ResultTags(`group:"readiness"`),
			),
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			service.NewSystemClock,
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewSecretGenerator,
			mail.New,
			throttle.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewRecoveryService,
			impl.NewAccountService,
			impl.NewActivityService,
			impl.NewEmployeeService,
			impl.NewReviewService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewThrottleMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewRecoveryHandler,
			handler.NewAccountHandler,
			handler.NewEmployeeHandler,
			handler.NewReviewHandler,
			handler.NewHealthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
