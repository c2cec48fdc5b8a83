package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stock-tracker/internal/store"
	domain "github.com/donaldgifford/stock-tracker/pkg/types"
)

// testSessionContract runs the behaviour every backend must share against an
// empty store.
func testSessionContract(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	sess, err := s.Open(ctx)
	require.NoError(t, err)
	defer func() { require.NoError(t, sess.Close()) }()

	working := &domain.Equipment{
		Name: "Routeur X", Type: "Cisco", Quantity: 10,
		Supplier: "ACME", Note: "rack 3", Status: domain.StatusFunctional,
	}
	broken := &domain.Equipment{Name: "Routeur X", Type: "Cisco", Quantity: 2, Status: domain.StatusBroken}
	other := &domain.Equipment{Name: "Switch", Type: "Huawei", Quantity: 1, Status: domain.StatusMaintenance}

	require.NoError(t, sess.Insert(ctx, working))
	require.NoError(t, sess.Insert(ctx, broken))
	require.NoError(t, sess.Insert(ctx, other))
	assert.Positive(t, working.ID)
	assert.Greater(t, broken.ID, working.ID)

	t.Run("list by name and type ignores status", func(t *testing.T) {
		rows, err := sess.ListByNameType(ctx, "Routeur X", "Cisco")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, working.ID, rows[0].ID)
		assert.Equal(t, broken.ID, rows[1].ID)
		assert.Equal(t, *working, rows[0])
	})

	t.Run("find by key", func(t *testing.T) {
		got, err := sess.FindByKey(ctx, broken.Key())
		require.NoError(t, err)
		assert.Equal(t, broken.ID, got.ID)

		_, err = sess.FindByKey(ctx, domain.MergeKey{Name: "Routeur X", Type: "Cisco", Status: domain.StatusMaintenance})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("set quantity leaves other columns", func(t *testing.T) {
		require.NoError(t, sess.SetQuantity(ctx, working.ID, 15))
		got, err := sess.Get(ctx, working.ID)
		require.NoError(t, err)
		assert.Equal(t, 15, got.Quantity)
		assert.Equal(t, "ACME", got.Supplier)
		assert.Equal(t, "rack 3", got.Note)

		require.NoError(t, sess.SetQuantity(ctx, working.ID, 15), "unchanged value still matches")
		assert.ErrorIs(t, sess.SetQuantity(ctx, 999999, 1), store.ErrNotFound)
	})

	t.Run("overwrite replaces every column", func(t *testing.T) {
		upd := &domain.Equipment{ID: other.ID, Name: "Switch", Type: "Huawei", Quantity: 4, Status: domain.StatusFunctional}
		require.NoError(t, sess.Overwrite(ctx, upd))

		got, err := sess.Get(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, *upd, *got)

		assert.ErrorIs(t, sess.Overwrite(ctx, &domain.Equipment{ID: 999999, Name: "x"}), store.ErrNotFound)
	})

	t.Run("list with filters", func(t *testing.T) {
		st := domain.StatusBroken
		rows, err := sess.List(ctx, &store.ListQuery{Status: &st})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, broken.ID, rows[0].ID)

		all, err := sess.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("delete removes exactly one row", func(t *testing.T) {
		require.NoError(t, sess.Delete(ctx, broken.ID))
		assert.ErrorIs(t, sess.Delete(ctx, broken.ID), store.ErrNotFound)

		_, err := sess.Get(ctx, broken.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		all, err := sess.List(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	t.Parallel()
	testSessionContract(t, store.NewMemoryStore())
}
