package db

import (
	"context"
	"database/sql"
	"embed"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rotisserie/eris"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var gooseSetup sync.Once

func setupGoose() error {
	var err error
	gooseSetup.Do(func() {
		goose.SetBaseFS(migrationFiles)
		err = goose.SetDialect("postgres")
	})
	return err
}

// RunMigrations applies embedded SQL migrations via goose. If database is nil, it's a no-op.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	if err := setupGoose(); err != nil {
		return eris.Wrap(err, "configure goose")
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return eris.Wrap(err, "apply migrations")
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, database *sql.DB) (int64, error) {
	if err := setupGoose(); err != nil {
		return 0, eris.Wrap(err, "configure goose")
	}
	v, err := goose.GetDBVersionContext(ctx, database)
	if err != nil {
		return 0, eris.Wrap(err, "read schema version")
	}
	return v, nil
}
