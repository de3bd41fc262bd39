package postgres

import (
	"context"
	"embed"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies all pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	sqlDB := stdlib.OpenDBFromPool(db.pool)
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return gerrors.Wrap(err, "setting migration dialect")
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return gerrors.Wrap(err, "applying migrations")
	}
	return nil
}

// MigrationVersion returns the current schema version.
func (db *DB) MigrationVersion(ctx context.Context) (int64, error) {
	sqlDB := stdlib.OpenDBFromPool(db.pool)
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return 0, gerrors.Wrap(err, "setting migration dialect")
	}
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, gerrors.Wrap(err, "reading migration version")
	}
	return version, nil
}
