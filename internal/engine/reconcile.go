package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/donaldgifford/stock-tracker/internal/store"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// Action says what reconciliation did with a candidate.
type Action string

// Reconciliation actions.
const (
	ActionMerged   Action = "merged"
	ActionInserted Action = "inserted"
)

// Outcome is the result of reconciling one candidate. Quantity is the stored
// quantity after the write.
type Outcome struct {
	Action   Action `json:"action"`
	ID       int64  `json:"id"`
	Quantity int    `json:"quantity"`
}

// reconcile applies the import merge rule: among the rows sharing e's name
// and type, the first (in store order) with e's status absorbs e's quantity
// and nothing else; without such a row e is inserted as a new row.
func reconcile(ctx context.Context, sess store.Session, e domain.Equipment) (Outcome, error) {
	rows, err := sess.ListByNameType(ctx, e.Name, e.Type)
	if err != nil {
		return Outcome{}, fmt.Errorf("looking up %s/%s: %w", e.Name, e.Type, err)
	}

	for i := range rows {
		if rows[i].Status != e.Status {
			continue
		}
		return merge(ctx, sess, &rows[i], e.Quantity)
	}

	return insert(ctx, sess, e)
}

// mergeByKey is the manual-add variant of reconcile: one lookup on the full
// merge key.
func mergeByKey(ctx context.Context, sess store.Session, e domain.Equipment) (Outcome, error) {
	existing, err := sess.FindByKey(ctx, e.Key())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return insert(ctx, sess, e)
	case err != nil:
		return Outcome{}, fmt.Errorf("looking up %s: %w", e.Key(), err)
	}
	return merge(ctx, sess, existing, e.Quantity)
}

func merge(ctx context.Context, sess store.Session, existing *domain.Equipment, add int) (Outcome, error) {
	qty := existing.Quantity + add
	if qty > MaxQuantity {
		return Outcome{}, &ValidationError{
			Field:   "quantity",
			Message: fmt.Sprintf("merging %d into row %d would exceed %d", add, existing.ID, MaxQuantity),
		}
	}
	if err := sess.SetQuantity(ctx, existing.ID, qty); err != nil {
		return Outcome{}, fmt.Errorf("merging into %d: %w", existing.ID, err)
	}
	return Outcome{Action: ActionMerged, ID: existing.ID, Quantity: qty}, nil
}

func insert(ctx context.Context, sess store.Session, e domain.Equipment) (Outcome, error) {
	if err := sess.Insert(ctx, &e); err != nil {
		return Outcome{}, fmt.Errorf("inserting %s: %w", e.Key(), err)
	}
	return Outcome{Action: ActionInserted, ID: e.ID, Quantity: e.Quantity}, nil
}
