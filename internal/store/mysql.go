package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/go-sql-driver/mysql"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

const mysqlDriverName = "mysql"

// mysqlColumns are read raw; NULLs from legacy rows are resolved in
// scanMySQLEquipment.
var mysqlColumns = []string{"id", "nom", "type", "quantite", "fournisseur", "remarque", "statut"}

var mysqlBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// MySQLStore implements Store on database/sql with the go-sql-driver/mysql
// driver. Each Session holds one *sql.Conn.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore opens a MySQL connection pool from a go-sql-driver DSN.
// poolSize <= 0 uses the default.
func NewMySQLStore(ctx context.Context, dsn string, poolSize int) (*MySQLStore, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing mysql dsn: %w", err)
	}
	// RowsAffected must count matched rows so an update that leaves the
	// quantity unchanged is not reported as not found.
	cfg.ClientFoundRows = true
	cfg.ParseTime = true

	db, err := sql.Open(mysqlDriverName, cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("opening mysql: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(max(poolSize/2, 1))
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &MySQLStore{db: db}, nil
}

// Close closes the underlying pool.
func (s *MySQLStore) Close() {
	_ = s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Migrate applies pending goose migrations.
func (s *MySQLStore) Migrate(ctx context.Context) error {
	return RunMySQLMigrations(ctx, s.db)
}

// Open reserves one connection from the pool.
func (s *MySQLStore) Open(ctx context.Context) (Session, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring connection: %w", err)
	}
	return &mysqlSession{conn: conn}, nil
}

type mysqlSession struct {
	conn *sql.Conn
}

func (s *mysqlSession) Close() error {
	return s.conn.Close()
}

func (s *mysqlSession) ListByNameType(ctx context.Context, name, typ string) ([]domain.Equipment, error) {
	query, args, err := mysqlBuilder.Select(mysqlColumns...).
		From(equipmentTable).
		Where(sq.Eq{"nom": name, "type": typ}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building lookup query: %w", err)
	}
	return s.queryAll(ctx, query, args)
}

func (s *mysqlSession) FindByKey(ctx context.Context, key domain.MergeKey) (*domain.Equipment, error) {
	query, args, err := mysqlBuilder.Select(mysqlColumns...).
		From(equipmentTable).
		Where(sq.Eq{"nom": key.Name, "type": key.Type}).
		Where(sq.Expr(statusColumn+" = ?", string(key.Status))).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building key query: %w", err)
	}
	return s.queryOne(ctx, query, args)
}

func (s *mysqlSession) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	query, args, err := mysqlBuilder.Select(mysqlColumns...).
		From(equipmentTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get query: %w", err)
	}
	return s.queryOne(ctx, query, args)
}

func (s *mysqlSession) Insert(ctx context.Context, e *domain.Equipment) error {
	query, args, err := mysqlBuilder.Insert(equipmentTable).
		Columns("nom", "type", "quantite", "fournisseur", "remarque", "statut").
		Values(e.Name, e.Type, e.Quantity, e.Supplier, e.Note, string(e.Status)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}

	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting equipment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted id: %w", err)
	}
	e.ID = id
	return nil
}

func (s *mysqlSession) SetQuantity(ctx context.Context, id int64, quantity int) error {
	query, args, err := mysqlBuilder.Update(equipmentTable).
		Set("quantite", quantity).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building quantity update: %w", err)
	}
	return s.execOne(ctx, query, args, fmt.Sprintf("updating quantity of %d", id))
}

func (s *mysqlSession) Overwrite(ctx context.Context, e *domain.Equipment) error {
	query, args, err := mysqlBuilder.Update(equipmentTable).
		SetMap(map[string]any{
			"nom":         e.Name,
			"type":        e.Type,
			"quantite":    e.Quantity,
			"fournisseur": e.Supplier,
			"remarque":    e.Note,
			"statut":      string(e.Status),
		}).
		Where(sq.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building overwrite: %w", err)
	}
	return s.execOne(ctx, query, args, fmt.Sprintf("overwriting equipment %d", e.ID))
}

func (s *mysqlSession) Delete(ctx context.Context, id int64) error {
	query, args, err := mysqlBuilder.Delete(equipmentTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete: %w", err)
	}
	return s.execOne(ctx, query, args, fmt.Sprintf("deleting equipment %d", id))
}

func (s *mysqlSession) List(ctx context.Context, q *ListQuery) ([]domain.Equipment, error) {
	query, args, err := q.ToSQL(sq.Question)
	if err != nil {
		return nil, fmt.Errorf("building list query: %w", err)
	}
	return s.queryAll(ctx, query, args)
}

func (s *mysqlSession) execOne(ctx context.Context, query string, args []any, op string) error {
	res, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mysqlSession) queryOne(ctx context.Context, query string, args []any) (*domain.Equipment, error) {
	e := &domain.Equipment{}
	if err := scanMySQLEquipment(s.conn.QueryRowContext(ctx, query, args...), e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning equipment: %w", err)
	}
	return e, nil
}

func (s *mysqlSession) queryAll(ctx context.Context, query string, args []any) ([]domain.Equipment, error) {
	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying equipment: %w", err)
	}
	defer rows.Close()

	var out []domain.Equipment
	for rows.Next() {
		var e domain.Equipment
		if err := scanMySQLEquipment(rows, &e); err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating equipment rows: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMySQLEquipment(row rowScanner, e *domain.Equipment) error {
	var (
		name, typ, supplier, note, st null.String
		qty                           null.Int
	)
	if err := row.Scan(&e.ID, &name, &typ, &qty, &supplier, &note, &st); err != nil {
		return err
	}

	e.Name = name.String
	e.Type = typ.String
	e.Quantity = qty.Int
	e.Supplier = supplier.String
	e.Note = note.String
	e.Status = domain.StatusFunctional
	if st.Valid && st.String != "" {
		e.Status = domain.Status(st.String)
	}
	return nil
}
