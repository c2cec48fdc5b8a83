//go:build integration

package store_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/donaldgifford/stock-tracker/internal/store"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcmysql.Run(ctx,
		"mysql:8.0.36",
		tcmysql.WithDatabase("stock_test"),
		tcmysql.WithUsername("test"),
		tcmysql.WithPassword("test"),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	dsn, err := container.ConnectionString(ctx, "parseTime=true")
	require.NoError(t, err)
	return dsn
}

func setupMySQL(t *testing.T) *store.MySQLStore {
	t.Helper()
	ctx := context.Background()

	s, err := store.NewMySQLStore(ctx, startMySQL(t), 4)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, s.Migrate(ctx))
	return s
}

func TestMySQLStore_Contract(t *testing.T) {
	testSessionContract(t, setupMySQL(t))
}

func TestMySQLStore_MigrateIsIdempotent(t *testing.T) {
	s := setupMySQL(t)
	ctx := context.Background()

	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Ping(ctx))
}

func TestMySQLStore_MigrateLegacyTable(t *testing.T) {
	dsn := startMySQL(t)
	ctx := context.Background()

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `
		CREATE TABLE equipements (
			id INT AUTO_INCREMENT PRIMARY KEY,
			nom VARCHAR(255),
			type VARCHAR(255),
			quantite INT,
			fournisseur VARCHAR(255),
			remarque TEXT
		)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO equipements (nom, type, quantite, remarque) VALUES ('Switch', 'Huawei', 2, NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := store.NewMySQLStore(ctx, dsn, 2)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx))

	sess, err := s.Open(ctx)
	require.NoError(t, err)
	defer sess.Close()

	rows, err := sess.ListByNameType(ctx, "Switch", "Huawei")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.StatusFunctional, rows[0].Status)
	assert.Empty(t, rows[0].Note)
	assert.Equal(t, 2, rows[0].Quantity)
}

func TestMySQLStore_EmptyStatusReadsAsFunctional(t *testing.T) {
	dsn := startMySQL(t)
	ctx := context.Background()

	s, err := store.NewMySQLStore(ctx, dsn, 2)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.Migrate(ctx))

	db, err := sql.Open("mysql", dsn)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		`INSERT INTO equipements (nom, type, quantite, statut) VALUES ('Switch', 'Huawei', 2, '')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	sess, err := s.Open(ctx)
	require.NoError(t, err)
	defer sess.Close()

	found, err := sess.FindByKey(ctx, domain.MergeKey{Name: "Switch", Type: "Huawei", Status: domain.StatusFunctional})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFunctional, found.Status)

	functional := domain.StatusFunctional
	listed, err := sess.List(ctx, &store.ListQuery{Status: &functional})
	require.NoError(t, err)
	require.Len(t, listed, 1)
}
