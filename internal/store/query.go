package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

const (
	maxLimit = 1000

	orderByID       = "id"
	orderByName     = "name"
	orderByQuantity = "quantity"
)

// validOrderBy maps allowed OrderBy values to their SQL column expressions.
var validOrderBy = map[string]string{
	orderByID:       "id ASC",
	orderByName:     "nom ASC, type ASC, id ASC",
	orderByQuantity: "quantite ASC, id ASC",
}

const defaultOrderBy = "id ASC"

const equipmentTable = "equipements"

// statusColumn reads a missing or empty legacy status as Functional, on reads
// and in status filters alike.
const statusColumn = "COALESCE(NULLIF(statut, ''), '" + string(domain.StatusFunctional) + "')"

// equipmentColumns reads legacy rows whose columns predate NOT NULL and the
// status default.
var equipmentColumns = []string{
	"id",
	"COALESCE(nom, '')",
	"COALESCE(type, '')",
	"COALESCE(quantite, 0)",
	"COALESCE(fournisseur, '')",
	"COALESCE(remarque, '')",
	statusColumn,
}

// ListQuery defines optional filters for listing equipment.
type ListQuery struct {
	Name    *string
	Type    *string
	Status  *domain.Status
	Limit   int // 0 means no limit
	Offset  int
	OrderBy string // "id", "name", "quantity"
}

// Matches reports whether e passes the query filters. Used by backends that
// do not speak SQL.
func (q *ListQuery) Matches(e *domain.Equipment) bool {
	if q == nil {
		return true
	}
	if q.Name != nil && e.Name != *q.Name {
		return false
	}
	if q.Type != nil && e.Type != *q.Type {
		return false
	}
	if q.Status != nil && e.Status != *q.Status {
		return false
	}
	return true
}

// ToSQL builds the SELECT for q using the placeholder style of the target
// driver (sq.Dollar for pgx, sq.Question for MySQL).
func (q *ListQuery) ToSQL(ph sq.PlaceholderFormat) (string, []any, error) {
	b := sq.StatementBuilder.PlaceholderFormat(ph).
		Select(equipmentColumns...).
		From(equipmentTable)

	if q == nil {
		return b.OrderBy(defaultOrderBy).ToSql()
	}

	if q.Name != nil {
		b = b.Where(sq.Eq{"nom": *q.Name})
	}
	if q.Type != nil {
		b = b.Where(sq.Eq{"type": *q.Type})
	}
	if q.Status != nil {
		b = b.Where(sq.Expr(statusColumn+" = ?", string(*q.Status)))
	}

	orderClause := defaultOrderBy
	if col, ok := validOrderBy[strings.ToLower(q.OrderBy)]; ok {
		orderClause = col
	}
	b = b.OrderBy(orderClause)

	if q.Limit > 0 {
		b = b.Limit(uint64(min(q.Limit, maxLimit)))
	}
	if q.Offset > 0 {
		b = b.Offset(uint64(q.Offset))
	}

	return b.ToSql()
}

// apply slices an already filtered and ordered result the way LIMIT/OFFSET
// would.
func (q *ListQuery) apply(rows []domain.Equipment) []domain.Equipment {
	if q == nil {
		return rows
	}
	if q.Offset > 0 {
		if q.Offset >= len(rows) {
			return []domain.Equipment{}
		}
		rows = rows[q.Offset:]
	}
	if q.Limit > 0 && len(rows) > min(q.Limit, maxLimit) {
		rows = rows[:min(q.Limit, maxLimit)]
	}
	return rows
}
