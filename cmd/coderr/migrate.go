package main

import (
	"context"
	"database/sql"

	"coderr/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		migrateStep("up", "Apply all pending migrations", migrations.Up),
		migrateStep("down", "Roll back the latest migration", migrations.Down),
		migrateStep("status", "Print the migration status", migrations.Status),
	)

	return cmd
}

func migrateStep(use, short string, step func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var db *gorm.DB

			return runOnce(cmd.Context(), func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return errors.Wrap(err, "failed to get sql.DB")
				}

				return step(ctx, sqlDB)
			}, fx.Populate(&db))
		},
	}
}

// runOnce starts the infrastructure and use cases without the HTTP server,
// runs task and stops the container again.
func runOnce(ctx context.Context, task func(context.Context) error, populate fx.Option) error {
	app := fx.New(
		fx.NopLogger,
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		populate,
	)
	if err := app.Err(); err != nil {
		return errors.WithStack(err)
	}

	if err := app.Start(ctx); err != nil {
		return errors.WithStack(err)
	}

	taskErr := task(ctx)
	if err := app.Stop(ctx); err != nil && taskErr == nil {
		return errors.WithStack(err)
	}

	return taskErr
}
