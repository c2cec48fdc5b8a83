// Package domain defines the core business types for the stock tracker.
package domain

import "fmt"

// Status is the canonical condition of an equipment stock bucket. The string
// values are the ones persisted in the statut column.
type Status string

// Status constants.
const (
	StatusFunctional  Status = "Fonctionnel"
	StatusBroken      Status = "En Panne"
	StatusMaintenance Status = "Maintenance"
)

// Statuses lists the canonical statuses in display order.
var Statuses = []Status{StatusFunctional, StatusBroken, StatusMaintenance}

// Valid reports whether s is one of the canonical statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusFunctional, StatusBroken, StatusMaintenance:
		return true
	default:
		return false
	}
}

// OutOfService reports whether equipment in this status cannot be deployed.
func (s Status) OutOfService() bool {
	return s == StatusBroken || s == StatusMaintenance
}

// Equipment is one stock row: a quantity of a named equipment model in a
// single status bucket.
type Equipment struct {
	ID       int64  `json:"id"       db:"id"`
	Name     string `json:"name"     db:"nom"`
	Type     string `json:"type"     db:"type"`
	Quantity int    `json:"quantity" db:"quantite"`
	Supplier string `json:"supplier" db:"fournisseur"`
	Note     string `json:"note"     db:"remarque"`
	Status   Status `json:"status"   db:"statut"`
}

// Key returns the merge key of the row.
func (e *Equipment) Key() MergeKey {
	return MergeKey{Name: e.Name, Type: e.Type, Status: e.Status}
}

// MergeKey identifies merge-equivalent rows. The store holds at most one row
// per key.
type MergeKey struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status Status `json:"status"`
}

func (k MergeKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Name, k.Type, k.Status)
}

// AlertBucket is the display classification of a row. It is derived from the
// row and never stored.
type AlertBucket string

// Alert bucket constants.
const (
	AlertNone         AlertBucket = ""
	AlertLowStock     AlertBucket = "low_stock"
	AlertOutOfService AlertBucket = "out_of_service"
)

// StockSummary is the aggregate alert state of the inventory.
type StockSummary struct {
	LowStock int `json:"low_stock"`
	Broken   int `json:"broken"`
	Total    int `json:"total"`
}

// Healthy reports whether there is nothing to alert on.
func (s StockSummary) Healthy() bool {
	return s.LowStock == 0 && s.Broken == 0
}

// BrokenItem names equipment that arrived broken during an import.
type BrokenItem struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (b BrokenItem) String() string {
	return fmt.Sprintf("%s (%s)", b.Name, b.Type)
}

// ImportRow is one record read from an import source. Fields are keyed by the
// normalized column header (for example "nom", "quantite").
type ImportRow struct {
	Line   int               `json:"line"`
	Fields map[string]string `json:"fields"`
}

// Get returns the value of a column and whether the column was present.
func (r *ImportRow) Get(field string) (string, bool) {
	v, ok := r.Fields[field]
	return v, ok
}
