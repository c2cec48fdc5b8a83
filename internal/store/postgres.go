package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store on a pgx connection pool. Each Session holds
// one acquired connection.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL. poolSize <= 0 uses the default.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	if poolSize > 0 {
		cfg.MaxConns = int32(poolSize) //nolint:gosec // pool sizes are small
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Open acquires a pooled connection.
func (s *PostgresStore) Open(ctx context.Context) (Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	return &pgSession{conn: conn}, nil
}

type pgSession struct {
	conn *pgxpool.Conn
}

func (s *pgSession) Close() error {
	s.conn.Release()
	return nil
}

func (s *pgSession) ListByNameType(ctx context.Context, name, typ string) ([]domain.Equipment, error) {
	rows, err := s.conn.Query(ctx, queryListByNameType, pgx.NamedArgs{
		"nom":  name,
		"type": typ,
	})
	if err != nil {
		return nil, fmt.Errorf("querying equipment by name and type: %w", err)
	}
	return collectEquipment(rows)
}

func (s *pgSession) FindByKey(ctx context.Context, key domain.MergeKey) (*domain.Equipment, error) {
	row := s.conn.QueryRow(ctx, queryFindByKey, pgx.NamedArgs{
		"nom":    key.Name,
		"type":   key.Type,
		"statut": string(key.Status),
	})
	return scanOne(row)
}

func (s *pgSession) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	return scanOne(s.conn.QueryRow(ctx, queryGetEquipment, id))
}

func (s *pgSession) Insert(ctx context.Context, e *domain.Equipment) error {
	err := s.conn.QueryRow(ctx, queryInsertEquipment, equipmentArgs(e)).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("inserting equipment: %w", err)
	}
	return nil
}

func (s *pgSession) SetQuantity(ctx context.Context, id int64, quantity int) error {
	tag, err := s.conn.Exec(ctx, querySetQuantity, id, quantity)
	if err != nil {
		return fmt.Errorf("updating quantity of %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgSession) Overwrite(ctx context.Context, e *domain.Equipment) error {
	args := equipmentArgs(e)
	args["id"] = e.ID

	tag, err := s.conn.Exec(ctx, queryOverwriteEquipment, args)
	if err != nil {
		return fmt.Errorf("overwriting equipment %d: %w", e.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgSession) Delete(ctx context.Context, id int64) error {
	tag, err := s.conn.Exec(ctx, queryDeleteEquipment, id)
	if err != nil {
		return fmt.Errorf("deleting equipment %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgSession) List(ctx context.Context, q *ListQuery) ([]domain.Equipment, error) {
	sql, args, err := q.ToSQL(sq.Dollar)
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	return collectEquipment(rows)
}

func equipmentArgs(e *domain.Equipment) pgx.NamedArgs {
	return pgx.NamedArgs{
		"nom":         e.Name,
		"type":        e.Type,
		"quantite":    e.Quantity,
		"fournisseur": e.Supplier,
		"remarque":    e.Note,
		"statut":      string(e.Status),
	}
}

func scanEquipment(row pgx.Row, e *domain.Equipment) error {
	var st string
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &e.Quantity, &e.Supplier, &e.Note, &st); err != nil {
		return err
	}
	e.Status = domain.Status(st)
	return nil
}

func scanOne(row pgx.Row) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	if err := scanEquipment(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning equipment: %w", err)
	}
	return e, nil
}

func collectEquipment(rows pgx.Rows) ([]domain.Equipment, error) {
	defer rows.Close()

	var out []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating equipment rows: %w", err)
	}
	return out, nil
}
