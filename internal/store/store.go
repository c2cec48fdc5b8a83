// Package store defines the persistence boundary of the stock tracker.
// Business logic depends on the Store and Session interfaces, never on a
// concrete backend, so the engine can be tested against mocks or the
// in-memory store without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// ErrNotFound is returned when a row addressed by id or merge key does not
// exist.
var ErrNotFound = errors.New("equipment not found")

// Store hands out sessions against one equipment table.
type Store interface {
	// Open acquires a connection for one logical operation. Callers must
	// Close the session on every exit path.
	Open(ctx context.Context) (Session, error)

	// Migrate creates the equipment table and adds the status column when
	// missing. It is safe to run on every startup.
	Migrate(ctx context.Context) error

	Ping(ctx context.Context) error
	Close()
}

// Session is a single connection scoped to one engine operation. Statements
// run with the backend's default autocommit.
type Session interface {
	// ListByNameType returns every row with the given name and type,
	// whatever their status, in ascending id order.
	ListByNameType(ctx context.Context, name, typ string) ([]domain.Equipment, error)

	// FindByKey returns the row matching name, type and status exactly, or
	// ErrNotFound.
	FindByKey(ctx context.Context, key domain.MergeKey) (*domain.Equipment, error)

	Get(ctx context.Context, id int64) (*domain.Equipment, error)

	// Insert stores e as a new row and sets e.ID.
	Insert(ctx context.Context, e *domain.Equipment) error

	// SetQuantity replaces the quantity of one row, leaving the other
	// columns untouched.
	SetQuantity(ctx context.Context, id int64, quantity int) error

	// Overwrite replaces every column of the row with id e.ID.
	Overwrite(ctx context.Context, e *domain.Equipment) error

	Delete(ctx context.Context, id int64) error

	// List returns rows matching q (nil means all) in q's order.
	List(ctx context.Context, q *ListQuery) ([]domain.Equipment, error)

	Close() error
}
