package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/mysql/*.sql
var mysqlMigrationsFS embed.FS

const queryStatusColumnExists = `
	SELECT COUNT(*) FROM information_schema.columns
	WHERE table_schema = DATABASE()
		AND table_name = 'equipements'
		AND column_name = 'statut'`

const queryAddStatusColumn = `
	ALTER TABLE equipements ADD COLUMN statut VARCHAR(50) DEFAULT 'Fonctionnel'`

// RunMySQLMigrations applies pending goose migrations. Version 2 is a Go
// migration because MySQL has no ADD COLUMN IF NOT EXISTS and tables created
// by older tooling may already carry the status column.
func RunMySQLMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := newMySQLProvider(db)
	if err != nil {
		return err
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("applying mysql migrations: %w", err)
	}
	return nil
}

func newMySQLProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(mysqlMigrationsFS, "migrations/mysql")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectMySQL, db, fsys,
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(
			goose.NewGoMigration(2, &goose.GoFunc{RunDB: addStatusColumn}, nil),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating migration provider: %w", err)
	}
	return provider, nil
}

func addStatusColumn(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, queryStatusColumnExists).Scan(&n); err != nil {
		return fmt.Errorf("checking statut column: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, queryAddStatusColumn); err != nil {
		return fmt.Errorf("adding statut column: %w", err)
	}
	return nil
}
