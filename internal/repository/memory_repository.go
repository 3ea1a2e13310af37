package repository

import (
	"context"
	"sync"

	"shop-service/internal/domain"
)

// InMemoryItemRepository is a map-backed item store. Mutations of a record are
// mutually exclusive; reads may run concurrently with each other.
type InMemoryItemRepository struct {
	mu    sync.RWMutex
	seq   *Sequence
	items map[int64]domain.Item
	order []int64
}

func NewInMemoryItemRepository(seq *Sequence) *InMemoryItemRepository {
	return &InMemoryItemRepository{
		seq:   seq,
		items: make(map[int64]domain.Item),
	}
}

func (r *InMemoryItemRepository) Add(ctx context.Context, name string, price float64, deleted bool) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item := domain.Item{
		ID:      r.seq.Next(),
		Name:    name,
		Price:   price,
		Deleted: deleted,
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *InMemoryItemRepository) Get(ctx context.Context, id int64) (domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok || item.Deleted {
		return domain.Item{}, ErrItemNotFound
	}
	return item, nil
}

func (r *InMemoryItemRepository) ResolveItem(ctx context.Context, id int64) (domain.Item, domain.ItemState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	switch {
	case !ok:
		return domain.Item{}, domain.ItemStateAbsent, nil
	case item.Deleted:
		return item, domain.ItemStateDeleted, nil
	default:
		return item, domain.ItemStateActive, nil
	}
}

func (r *InMemoryItemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Item, 0)
	matched := 0
	for _, id := range r.order {
		item := r.items[id]
		if !filter.Matches(item) {
			continue
		}
		if matched >= filter.Offset && len(result) < filter.Limit {
			result = append(result, item)
		}
		matched++
	}
	return result, nil
}

func (r *InMemoryItemRepository) Replace(ctx context.Context, id int64, name string, price float64, deleted bool) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[id]
	if !ok || existing.Deleted {
		return domain.Item{}, ErrItemNotFound
	}
	item := domain.Item{ID: id, Name: name, Price: price, Deleted: deleted}
	r.items[id] = item
	return item, nil
}

func (r *InMemoryItemRepository) Upsert(ctx context.Context, id int64, name string, price float64, deleted bool) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		r.order = append(r.order, id)
		r.seq.Advance(id)
	}
	item := domain.Item{ID: id, Name: name, Price: price, Deleted: deleted}
	r.items[id] = item
	return item, nil
}

func (r *InMemoryItemRepository) Patch(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok || item.Deleted {
		return domain.Item{}, ErrItemNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
	r.items[id] = item
	return item, nil
}

func (r *InMemoryItemRepository) SoftDelete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		// absent id is a no-op, not an error
		return nil
	}
	item.Deleted = true
	r.items[id] = item
	return nil
}

// InMemoryCartRepository is a map-backed cart store. Only line sets are
// stored; prices and availability are recomputed against the item resolver on
// every read.
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	seq   *Sequence
	carts map[int64][]domain.CartLine
	order []int64
	items domain.ItemResolver
}

func NewInMemoryCartRepository(seq *Sequence, items domain.ItemResolver) *InMemoryCartRepository {
	return &InMemoryCartRepository{
		seq:   seq,
		carts: make(map[int64][]domain.CartLine),
		items: items,
	}
}

func (r *InMemoryCartRepository) AddEmpty(ctx context.Context) (domain.CartView, error) {
	r.mu.Lock()
	id := r.seq.Next()
	r.carts[id] = nil
	r.order = append(r.order, id)
	r.mu.Unlock()

	return domain.CartView{ID: id, Items: []domain.CartLineView{}}, nil
}

func (r *InMemoryCartRepository) Get(ctx context.Context, id int64) (domain.CartView, error) {
	r.mu.RLock()
	lines, ok := r.carts[id]
	snapshot := copyLines(lines)
	r.mu.RUnlock()

	if !ok {
		return domain.CartView{}, ErrCartNotFound
	}
	return domain.RecalculateCart(ctx, id, snapshot, r.items)
}

func (r *InMemoryCartRepository) List(ctx context.Context, filter domain.CartFilter) ([]domain.CartView, error) {
	r.mu.RLock()
	ids := make([]int64, len(r.order))
	copy(ids, r.order)
	snapshots := make(map[int64][]domain.CartLine, len(ids))
	for _, id := range ids {
		snapshots[id] = copyLines(r.carts[id])
	}
	r.mu.RUnlock()

	result := make([]domain.CartView, 0)
	matched := 0
	for _, id := range ids {
		view, err := domain.RecalculateCart(ctx, id, snapshots[id], r.items)
		if err != nil {
			return nil, err
		}
		if !filter.Matches(view) {
			continue
		}
		if matched >= filter.Offset && len(result) < filter.Limit {
			result = append(result, view)
		}
		matched++
	}
	return result, nil
}

func (r *InMemoryCartRepository) Replace(ctx context.Context, id int64, lines []domain.CartLine) (domain.CartView, error) {
	r.mu.Lock()
	if _, ok := r.carts[id]; !ok {
		r.mu.Unlock()
		return domain.CartView{}, ErrCartNotFound
	}
	snapshot := copyLines(lines)
	r.carts[id] = snapshot
	r.mu.Unlock()

	return domain.RecalculateCart(ctx, id, snapshot, r.items)
}

func (r *InMemoryCartRepository) Upsert(ctx context.Context, id int64, lines []domain.CartLine) (domain.CartView, error) {
	r.mu.Lock()
	if _, ok := r.carts[id]; !ok {
		r.order = append(r.order, id)
		r.seq.Advance(id)
	}
	snapshot := copyLines(lines)
	r.carts[id] = snapshot
	r.mu.Unlock()

	return domain.RecalculateCart(ctx, id, snapshot, r.items)
}

func (r *InMemoryCartRepository) Patch(ctx context.Context, id int64, patch domain.CartPatch) (domain.CartView, error) {
	r.mu.Lock()
	lines, ok := r.carts[id]
	if !ok {
		r.mu.Unlock()
		return domain.CartView{}, ErrCartNotFound
	}
	if patch.Lines != nil {
		lines = copyLines(*patch.Lines)
		r.carts[id] = lines
	}
	snapshot := copyLines(lines)
	r.mu.Unlock()

	return domain.RecalculateCart(ctx, id, snapshot, r.items)
}

func (r *InMemoryCartRepository) AddItem(ctx context.Context, cartID, itemID int64) (domain.CartView, error) {
	r.mu.Lock()
	lines, ok := r.carts[cartID]
	if !ok {
		r.mu.Unlock()
		return domain.CartView{}, ErrCartNotFound
	}

	found := false
	lines = copyLines(lines)
	for i := range lines {
		if lines[i].ItemID == itemID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		name := domain.PlaceholderName(itemID)
		if item, state, err := r.items.ResolveItem(ctx, itemID); err == nil && state == domain.ItemStateActive {
			name = item.Name
		}
		lines = append(lines, domain.CartLine{ItemID: itemID, Name: name, Quantity: 1})
	}
	r.carts[cartID] = lines
	snapshot := copyLines(lines)
	r.mu.Unlock()

	return domain.RecalculateCart(ctx, cartID, snapshot, r.items)
}

func copyLines(lines []domain.CartLine) []domain.CartLine {
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out
}
