package domain

// Item is a priced, soft-deletable catalog entry.
type Item struct {
	ID      int64
	Name    string
	Price   float64
	Deleted bool
}

// ItemState classifies the result of a tri-state item lookup. A soft-deleted
// item still has a row (its name and price stay queryable for cart
// recalculation); an absent item has no row at all.
type ItemState int

const (
	ItemStateActive ItemState = iota
	ItemStateDeleted
	ItemStateAbsent
)

func (s ItemState) String() string {
	switch s {
	case ItemStateActive:
		return "active"
	case ItemStateDeleted:
		return "deleted"
	default:
		return "absent"
	}
}

// ItemPatch carries the optional fields of a partial item update.
// A nil field leaves the stored value untouched.
type ItemPatch struct {
	Name  *string
	Price *float64
}

// ItemFilter selects and pages items for listing. Price bounds are inclusive.
type ItemFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	ShowDeleted bool
}

// Matches reports whether the item passes the filter predicates
// (pagination is applied by the store over the matching sequence).
func (f ItemFilter) Matches(item Item) bool {
	if !f.ShowDeleted && item.Deleted {
		return false
	}
	if f.MinPrice != nil && item.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && item.Price > *f.MaxPrice {
		return false
	}
	return true
}
