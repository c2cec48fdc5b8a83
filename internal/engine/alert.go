package engine

import (
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// DefaultLowStockThreshold is the quantity below which a functional row is
// reported as low stock.
const DefaultLowStockThreshold = 5

// AlertRules classifies equipment rows for alerting. It is pure and holds no
// state beyond its threshold.
type AlertRules struct {
	LowStockThreshold int
}

// DefaultAlertRules returns the rules with the default threshold.
func DefaultAlertRules() AlertRules {
	return AlertRules{LowStockThreshold: DefaultLowStockThreshold}
}

// Classify returns the display bucket of one row. Broken and maintenance rows
// are out of service whatever their quantity.
func (r AlertRules) Classify(e *domain.Equipment) domain.AlertBucket {
	switch {
	case e.Status.OutOfService():
		return domain.AlertOutOfService
	case e.Quantity < r.LowStockThreshold:
		return domain.AlertLowStock
	default:
		return domain.AlertNone
	}
}

// Aggregate counts low-stock and broken rows. A broken row counts as broken
// only; a maintenance row counts as neither.
func (r AlertRules) Aggregate(rows []domain.Equipment) domain.StockSummary {
	s := domain.StockSummary{Total: len(rows)}
	for i := range rows {
		switch e := &rows[i]; {
		case e.Status == domain.StatusBroken:
			s.Broken++
		case e.Status == domain.StatusMaintenance:
		case e.Quantity < r.LowStockThreshold:
			s.LowStock++
		}
	}
	return s
}

// FilterAlertable returns the rows with quantity below the threshold or a
// broken status, in input order.
func (r AlertRules) FilterAlertable(rows []domain.Equipment) []domain.Equipment {
	out := make([]domain.Equipment, 0, len(rows))
	for i := range rows {
		if rows[i].Quantity < r.LowStockThreshold || rows[i].Status == domain.StatusBroken {
			out = append(out, rows[i])
		}
	}
	return out
}
