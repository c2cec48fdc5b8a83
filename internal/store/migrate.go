package store

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/postgres/*.sql
var postgresMigrationsFS embed.FS

const postgresMigrationsDir = "migrations/postgres"

// RunMigrations applies pending PostgreSQL migrations in filename order.
// Applied versions are tracked in schema_migrations. Every file is itself
// idempotent so a table created before the tracking table existed is picked
// up as is. There are no down migrations.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, queryCreateSchemaMigrations); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	entries, err := postgresMigrationsFS.ReadDir(postgresMigrationsDir)
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version := entry.Name()

		var applied bool
		if err := pool.QueryRow(ctx, queryMigrationApplied, version).Scan(&applied); err != nil {
			return fmt.Errorf("checking migration %s: %w", version, err)
		}
		if applied {
			continue
		}

		sql, err := postgresMigrationsFS.ReadFile(postgresMigrationsDir + "/" + version)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", version, err)
		}

		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("applying migration %s: %w", version, err)
		}

		if _, err := pool.Exec(ctx, queryRecordMigration, version); err != nil {
			return fmt.Errorf("recording migration %s: %w", version, err)
		}
	}

	return nil
}
