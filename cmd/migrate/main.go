package main

import (
	"context"
	"log/slog"
	"os"

	"smarthr/config"
	logs "smarthr/internal/infra/log"
	"smarthr/internal/infra/persistence/postgres"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type migrateParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	DB     *gorm.DB
	Logger *slog.Logger
}

func main() {
	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
		),
		fx.Invoke(migrate),
	)
	if err := app.Err(); err != nil {
		slog.Error("Failed to build migration", slog.Any("error", err))
		os.Exit(1)
	}

	app.Run()
}

// migrate runs once the database hook has pinged the server, then stops the app.
func migrate(params migrateParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Logger.Info("Running schema migration")
			if err := postgres.Migrate(context.WithoutCancel(ctx), params.DB); err != nil {
				return err
			}
			params.Logger.Info("Schema migration finished")

			return params.Shutdown()
		},
	})
}
