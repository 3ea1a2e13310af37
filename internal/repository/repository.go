package repository

import (
	"context"
	"errors"

	"shop-service/internal/domain"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrCartNotFound = errors.New("cart not found")
)

// ItemRepository owns item records. Get is the active-only accessor: a
// soft-deleted item is invisible to it. ResolveItem is the tri-state accessor
// cart recalculation depends on, so it also satisfies domain.ItemResolver.
type ItemRepository interface {
	Add(ctx context.Context, name string, price float64, deleted bool) (domain.Item, error)
	Get(ctx context.Context, id int64) (domain.Item, error)
	ResolveItem(ctx context.Context, id int64) (domain.Item, domain.ItemState, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Replace(ctx context.Context, id int64, name string, price float64, deleted bool) (domain.Item, error)
	Upsert(ctx context.Context, id int64, name string, price float64, deleted bool) (domain.Item, error)
	Patch(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error)
	SoftDelete(ctx context.Context, id int64) error
}

// CartRepository owns cart records. Every operation returns the projected
// view recomputed against current item data; no stored price ever leaks out.
type CartRepository interface {
	AddEmpty(ctx context.Context) (domain.CartView, error)
	Get(ctx context.Context, id int64) (domain.CartView, error)
	List(ctx context.Context, filter domain.CartFilter) ([]domain.CartView, error)
	Replace(ctx context.Context, id int64, lines []domain.CartLine) (domain.CartView, error)
	Upsert(ctx context.Context, id int64, lines []domain.CartLine) (domain.CartView, error)
	Patch(ctx context.Context, id int64, patch domain.CartPatch) (domain.CartView, error)
	AddItem(ctx context.Context, cartID, itemID int64) (domain.CartView, error)
}
