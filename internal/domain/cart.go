package domain

import (
	"context"
	"fmt"
)

// CartLine is one (item reference, quantity) pair inside a cart. Name is the
// fallback display name carried with the line: it is what callers see when the
// referenced item can no longer be resolved.
type CartLine struct {
	ItemID   int64
	Name     string
	Quantity int
}

// Cart is the stored form of a cart: an ordered line set. Price is never
// stored; it is derived on every read.
type Cart struct {
	ID    int64
	Lines []CartLine
}

// CartLineView is the projected form of a line, with availability and the
// current item name baked in.
type CartLineView struct {
	ItemID    int64
	Name      string
	Quantity  int
	Available bool
}

// CartView is the derived representation of a cart returned to callers.
type CartView struct {
	ID    int64
	Items []CartLineView
	Price float64
}

// TotalQuantity sums line quantities regardless of availability.
func (v CartView) TotalQuantity() int {
	total := 0
	for _, line := range v.Items {
		total += line.Quantity
	}
	return total
}

// CartPatch carries the optional fields of a partial cart update. Lines is
// tri-state: nil leaves the line set untouched, a present (possibly empty)
// slice replaces it wholesale.
type CartPatch struct {
	Lines *[]CartLine
}

// CartFilter selects and pages carts for listing. Price bounds apply to the
// recomputed price; quantity bounds apply to the summed line quantities,
// counting unavailable lines too.
type CartFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	MinQuantity *int
	MaxQuantity *int
}

// Matches reports whether the projected cart passes the filter predicates.
func (f CartFilter) Matches(view CartView) bool {
	if f.MinPrice != nil && view.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && view.Price > *f.MaxPrice {
		return false
	}
	quantity := view.TotalQuantity()
	if f.MinQuantity != nil && quantity < *f.MinQuantity {
		return false
	}
	if f.MaxQuantity != nil && quantity > *f.MaxQuantity {
		return false
	}
	return true
}

// ItemResolver resolves an item reference during cart recalculation.
type ItemResolver interface {
	ResolveItem(ctx context.Context, id int64) (Item, ItemState, error)
}

// RecalculateCart projects the stored lines against live item data. Each line
// is resolved in stored order: an active item contributes price*quantity to
// the total and lends the line its current name; a deleted or absent item
// leaves the line in place, unavailable, under its fallback name, contributing
// zero. The returned view is freshly constructed and shares no memory with the
// input.
func RecalculateCart(ctx context.Context, id int64, lines []CartLine, resolver ItemResolver) (CartView, error) {
	views := make([]CartLineView, 0, len(lines))
	total := 0.0

	for _, line := range lines {
		item, state, err := resolver.ResolveItem(ctx, line.ItemID)
		if err != nil {
			return CartView{}, fmt.Errorf("resolve item %d: %w", line.ItemID, err)
		}

		view := CartLineView{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Quantity: line.Quantity,
		}
		if state == ItemStateActive {
			view.Available = true
			view.Name = item.Name
			total += item.Price * float64(line.Quantity)
		}
		views = append(views, view)
	}

	return CartView{ID: id, Items: views, Price: total}, nil
}

// PlaceholderName synthesizes a display name for a line whose item could not
// be resolved at insertion time.
func PlaceholderName(itemID int64) string {
	return fmt.Sprintf("item-%d", itemID)
}
