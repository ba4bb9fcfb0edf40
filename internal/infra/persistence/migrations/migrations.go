// Package migrations embeds the SQL schema migrations and applies them with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"coderr/internal/errors"

	"github.com/pressly/goose/v3"
)

const dialect = "postgres"

//go:embed sql/*.sql
var files embed.FS

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "sql"); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db, "sql"); err != nil {
		return errors.Wrap(err, "failed to roll back migration")
	}

	return nil
}

// Status logs the applied state of every migration.
func Status(ctx context.Context, db *sql.DB) error {
	if err := configure(); err != nil {
		return err
	}

	return errors.WithStack(goose.StatusContext(ctx, db, "sql"))
}

func configure() error {
	goose.SetBaseFS(files)
	if err := goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}

	return nil
}
