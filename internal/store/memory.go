package store

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// MemoryStore is a process-local Store. Rows are kept by id and returned in
// ascending id order, matching the SQL backends.
type MemoryStore struct {
	mu     sync.Mutex
	rows   map[int64]domain.Equipment
	nextID int64
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Session = (*memorySession)(nil)
)

// NewMemoryStore returns a store holding seed. Seed rows without an id are
// numbered after the highest given id.
func NewMemoryStore(seed ...domain.Equipment) *MemoryStore {
	s := &MemoryStore{rows: make(map[int64]domain.Equipment, len(seed))}
	for _, e := range seed {
		s.nextID = max(s.nextID, e.ID)
	}
	for _, e := range seed {
		if e.ID == 0 {
			s.nextID++
			e.ID = s.nextID
		}
		s.rows[e.ID] = e
	}
	return s
}

// Open returns a session sharing the store's rows.
func (s *MemoryStore) Open(context.Context) (Session, error) {
	return &memorySession{store: s}, nil
}

// Migrate is a no-op.
func (s *MemoryStore) Migrate(context.Context) error { return nil }

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() {}

// Snapshot returns every row in id order.
func (s *MemoryStore) Snapshot() []domain.Equipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(nil)
}

func (s *MemoryStore) sortedLocked(keep func(*domain.Equipment) bool) []domain.Equipment {
	out := make([]domain.Equipment, 0, len(s.rows))
	for _, e := range s.rows {
		if keep == nil || keep(&e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b domain.Equipment) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

type memorySession struct {
	store *MemoryStore
}

func (m *memorySession) Close() error { return nil }

func (m *memorySession) ListByNameType(_ context.Context, name, typ string) ([]domain.Equipment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	return m.store.sortedLocked(func(e *domain.Equipment) bool {
		return e.Name == name && e.Type == typ
	}), nil
}

func (m *memorySession) FindByKey(_ context.Context, key domain.MergeKey) (*domain.Equipment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	rows := m.store.sortedLocked(func(e *domain.Equipment) bool {
		return e.Key() == key
	})
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (m *memorySession) Get(_ context.Context, id int64) (*domain.Equipment, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	e, ok := m.store.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (m *memorySession) Insert(_ context.Context, e *domain.Equipment) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	m.store.nextID++
	e.ID = m.store.nextID
	m.store.rows[e.ID] = *e
	return nil
}

func (m *memorySession) SetQuantity(_ context.Context, id int64, quantity int) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	e, ok := m.store.rows[id]
	if !ok {
		return ErrNotFound
	}
	e.Quantity = quantity
	m.store.rows[id] = e
	return nil
}

func (m *memorySession) Overwrite(_ context.Context, e *domain.Equipment) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.rows[e.ID]; !ok {
		return ErrNotFound
	}
	m.store.rows[e.ID] = *e
	return nil
}

func (m *memorySession) Delete(_ context.Context, id int64) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.store.rows, id)
	return nil
}

func (m *memorySession) List(_ context.Context, q *ListQuery) ([]domain.Equipment, error) {
	m.store.mu.Lock()
	rows := m.store.sortedLocked(q.Matches)
	m.store.mu.Unlock()

	if q != nil {
		switch strings.ToLower(q.OrderBy) {
		case orderByName:
			slices.SortStableFunc(rows, func(a, b domain.Equipment) int {
				return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Type, b.Type))
			})
		case orderByQuantity:
			slices.SortStableFunc(rows, func(a, b domain.Equipment) int {
				return cmp.Compare(a.Quantity, b.Quantity)
			})
		}
	}

	return q.apply(rows), nil
}
