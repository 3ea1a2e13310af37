package repository

import (
	"context"
	"path/filepath"
	"testing"

	"shop-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	store, err := OpenSQLiteStore(path, NewSequence(0), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_ItemRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	ctx := context.Background()

	created, err := items.Add(ctx, "apple", 2.5, false)
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.ID)

	got, err := items.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSQLite_GetHidesDeleted(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	ctx := context.Background()

	item, err := items.Add(ctx, "apple", 2.5, false)
	require.NoError(t, err)
	require.NoError(t, items.SoftDelete(ctx, item.ID))

	_, err = items.Get(ctx, item.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)

	resolved, state, err := items.ResolveItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStateDeleted, state)
	assert.Equal(t, "apple", resolved.Name)
}

func TestSQLite_ReplaceRejectsDeletedAndAbsent(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	ctx := context.Background()

	_, err := items.Replace(ctx, 42, "ghost", 1.0, false)
	assert.ErrorIs(t, err, ErrItemNotFound)

	item, err := items.Add(ctx, "apple", 2.5, false)
	require.NoError(t, err)
	require.NoError(t, items.SoftDelete(ctx, item.ID))

	_, err = items.Replace(ctx, item.ID, "apple", 3.0, false)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSQLite_UpsertAdvancesSequence(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	ctx := context.Background()

	created, err := items.Upsert(ctx, 9999, "apple", 2.5, false)
	require.NoError(t, err)
	assert.Equal(t, int64(9999), created.ID)

	next, err := items.Add(ctx, "bread", 1.0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), next.ID)
}

func TestSQLite_SequenceSeededFromPersistedIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")

	first, err := OpenSQLiteStore(path, NewSequence(0), zap.NewNop())
	require.NoError(t, err)
	_, err = first.Items().Upsert(context.Background(), 500, "apple", 2.5, false)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// a fresh sequence must pick up past the persisted ids
	second, err := OpenSQLiteStore(path, NewSequence(0), zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	item, err := second.Items().Add(context.Background(), "bread", 1.0, false)
	require.NoError(t, err)
	assert.Equal(t, int64(501), item.ID)
}

func TestSQLite_ListFiltersAndPaginates(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	ctx := context.Background()

	for _, price := range []float64{1, 2, 3, 4, 5} {
		_, err := items.Add(ctx, "item", price, false)
		require.NoError(t, err)
	}
	require.NoError(t, items.SoftDelete(ctx, 2)) // the 3.0 item

	min := 2.0
	result, err := items.List(ctx, domain.ItemFilter{Offset: 1, Limit: 2, MinPrice: &min})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.InDelta(t, 4.0, result[0].Price, 1e-8)
	assert.InDelta(t, 5.0, result[1].Price, 1e-8)
}

func TestSQLite_CartRecomputesAgainstLiveItems(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	carts := store.Carts()
	ctx := context.Background()

	apple, err := items.Add(ctx, "apple", 2.5, false)
	require.NoError(t, err)
	cart, err := carts.AddEmpty(ctx)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, cart.ID, apple.ID)
	require.NoError(t, err)
	view, err := carts.AddItem(ctx, cart.ID, apple.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.InDelta(t, 5.0, view.Price, 1e-8)

	price := 4.0
	_, err = items.Patch(ctx, apple.ID, domain.ItemPatch{Price: &price})
	require.NoError(t, err)

	view, err = carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, view.Price, 1e-8)
}

func TestSQLite_DeletedItemLineSurvivesUnavailable(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	carts := store.Carts()
	ctx := context.Background()

	apple, err := items.Add(ctx, "apple", 2.5, false)
	require.NoError(t, err)
	cart, err := carts.AddEmpty(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cart.ID, apple.ID)
	require.NoError(t, err)

	require.NoError(t, items.SoftDelete(ctx, apple.ID))

	view, err := carts.Get(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.False(t, view.Items[0].Available)
	assert.Equal(t, "apple", view.Items[0].Name, "the fallback name is the name captured at insertion")
	assert.InDelta(t, 0.0, view.Price, 1e-8)
}

func TestSQLite_AddUnknownItemUsesPlaceholderName(t *testing.T) {
	store := newSQLiteStore(t)
	carts := store.Carts()
	ctx := context.Background()

	cart, err := carts.AddEmpty(ctx)
	require.NoError(t, err)

	view, err := carts.AddItem(ctx, cart.ID, 77)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "item-77", view.Items[0].Name)
	assert.False(t, view.Items[0].Available)
}

func TestSQLite_CartLineOrderSurvivesIncrement(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	carts := store.Carts()
	ctx := context.Background()

	apple, err := items.Add(ctx, "apple", 2.5, false)
	require.NoError(t, err)
	bread, err := items.Add(ctx, "bread", 1.0, false)
	require.NoError(t, err)
	cart, err := carts.AddEmpty(ctx)
	require.NoError(t, err)

	_, err = carts.AddItem(ctx, cart.ID, apple.ID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cart.ID, bread.ID)
	require.NoError(t, err)
	view, err := carts.AddItem(ctx, cart.ID, apple.ID)
	require.NoError(t, err)

	require.Len(t, view.Items, 2)
	assert.Equal(t, apple.ID, view.Items[0].ItemID)
	assert.Equal(t, bread.ID, view.Items[1].ItemID)
}

func TestSQLite_ReplaceAndPatchCartLines(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	carts := store.Carts()
	ctx := context.Background()

	apple, err := items.Add(ctx, "apple", 2.5, false)
	require.NoError(t, err)
	cart, err := carts.AddEmpty(ctx)
	require.NoError(t, err)

	view, err := carts.Replace(ctx, cart.ID, []domain.CartLine{
		{ItemID: apple.ID, Name: "apple", Quantity: 3},
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, view.Price, 1e-8)

	// nil lines leave the cart untouched
	view, err = carts.Patch(ctx, cart.ID, domain.CartPatch{})
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)

	// an empty slice clears it
	empty := []domain.CartLine{}
	view, err = carts.Patch(ctx, cart.ID, domain.CartPatch{Lines: &empty})
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestSQLite_CartNotFound(t *testing.T) {
	store := newSQLiteStore(t)
	carts := store.Carts()
	ctx := context.Background()

	_, err := carts.Get(ctx, 42)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = carts.Replace(ctx, 42, nil)
	assert.ErrorIs(t, err, ErrCartNotFound)

	_, err = carts.AddItem(ctx, 42, 0)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestSQLite_CartListFiltersAfterRecompute(t *testing.T) {
	store := newSQLiteStore(t)
	items := store.Items()
	carts := store.Carts()
	ctx := context.Background()

	cheap, err := items.Add(ctx, "gum", 0.5, false)
	require.NoError(t, err)
	dear, err := items.Add(ctx, "steak", 20.0, false)
	require.NoError(t, err)

	cartA, err := carts.AddEmpty(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cartA.ID, cheap.ID)
	require.NoError(t, err)
	cartB, err := carts.AddEmpty(ctx)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cartB.ID, dear.ID)
	require.NoError(t, err)

	min := 10.0
	views, err := carts.List(ctx, domain.CartFilter{Limit: 10, MinPrice: &min})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, cartB.ID, views[0].ID)
}
