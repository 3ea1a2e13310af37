package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"shop-service/internal/domain"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore holds the shared connection for the SQLite-backed item and cart
// stores. It follows the single-writer principle: one connection, and a mutex
// serializing all mutations. Reads run lock-free on the WAL.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex
	seq    *Sequence
	logger *zap.Logger
}

// OpenSQLiteStore opens (or creates) the database at path, applies the schema
// and seeds the id sequence past any persisted ids.
func OpenSQLiteStore(path string, seq *Sequence, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db, seq: seq, logger: logger}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := store.seedSequence(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed id sequence: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		price REAL NOT NULL DEFAULT 0,
		deleted INTEGER NOT NULL DEFAULT 0,
		CHECK(price >= 0),
		CHECK(deleted IN (0, 1))
	);

	CREATE TABLE IF NOT EXISTS carts (
		id INTEGER PRIMARY KEY
	);

	-- Lines keep their own fallback name and insertion position. There is
	-- deliberately no foreign key to items: a line must survive its item
	-- vanishing entirely.
	CREATE TABLE IF NOT EXISTS cart_lines (
		cart_id INTEGER NOT NULL,
		item_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		name TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		PRIMARY KEY (cart_id, item_id),
		FOREIGN KEY (cart_id) REFERENCES carts(id) ON DELETE CASCADE,
		CHECK(quantity > 0)
	);

	CREATE INDEX IF NOT EXISTS idx_items_deleted ON items(deleted);
	CREATE INDEX IF NOT EXISTS idx_cart_lines_cart_id ON cart_lines(cart_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) seedSequence() error {
	var maxID sql.NullInt64
	query := `SELECT MAX(id) FROM (SELECT id FROM items UNION ALL SELECT id FROM carts)`
	if err := s.db.QueryRow(query).Scan(&maxID); err != nil {
		return err
	}
	if maxID.Valid {
		s.seq.Advance(maxID.Int64)
	}
	return nil
}

// Items returns the item store backed by this database.
func (s *SQLiteStore) Items() ItemRepository {
	return &sqliteItemRepository{store: s}
}

// Carts returns the cart store backed by this database.
func (s *SQLiteStore) Carts() CartRepository {
	return &sqliteCartRepository{store: s}
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type sqliteItemRepository struct {
	store *SQLiteStore
}

func (r *sqliteItemRepository) Add(ctx context.Context, name string, price float64, deleted bool) (domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.seq.Next()
	query := `INSERT INTO items (id, name, price, deleted) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, id, name, price, boolToInt(deleted)); err != nil {
		return domain.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return domain.Item{ID: id, Name: name, Price: price, Deleted: deleted}, nil
}

func (r *sqliteItemRepository) Get(ctx context.Context, id int64) (domain.Item, error) {
	item, state, err := r.ResolveItem(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if state != domain.ItemStateActive {
		return domain.Item{}, ErrItemNotFound
	}
	return item, nil
}

func (r *sqliteItemRepository) ResolveItem(ctx context.Context, id int64) (domain.Item, domain.ItemState, error) {
	query := `SELECT id, name, price, deleted FROM items WHERE id = ?`

	var item domain.Item
	var deleted int
	err := r.store.db.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Name, &item.Price, &deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Item{}, domain.ItemStateAbsent, nil
		}
		return domain.Item{}, domain.ItemStateAbsent, fmt.Errorf("failed to get item: %w", err)
	}

	item.Deleted = deleted == 1
	if item.Deleted {
		return item, domain.ItemStateDeleted, nil
	}
	return item, domain.ItemStateActive, nil
}

func (r *sqliteItemRepository) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)

	if !filter.ShowDeleted {
		conditions = append(conditions, "deleted = 0")
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	query := `SELECT id, name, price, deleted FROM items`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var item domain.Item
		var deleted int
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &deleted); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Deleted = deleted == 1
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}
	return items, nil
}

func (r *sqliteItemRepository) Replace(ctx context.Context, id int64, name string, price float64, deleted bool) (domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `UPDATE items SET name = ?, price = ?, deleted = ? WHERE id = ? AND deleted = 0`
	result, err := s.db.ExecContext(ctx, query, name, price, boolToInt(deleted), id)
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to replace item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Item{}, ErrItemNotFound
	}
	return domain.Item{ID: id, Name: name, Price: price, Deleted: deleted}, nil
}

func (r *sqliteItemRepository) Upsert(ctx context.Context, id int64, name string, price float64, deleted bool) (domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO items (id, name, price, deleted) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, price = excluded.price, deleted = excluded.deleted
	`
	if _, err := s.db.ExecContext(ctx, query, id, name, price, boolToInt(deleted)); err != nil {
		return domain.Item{}, fmt.Errorf("failed to upsert item: %w", err)
	}
	s.seq.Advance(id)
	return domain.Item{ID: id, Name: name, Price: price, Deleted: deleted}, nil
}

func (r *sqliteItemRepository) Patch(ctx context.Context, id int64, patch domain.ItemPatch) (domain.Item, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, state, err := r.ResolveItem(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	if state != domain.ItemStateActive {
		return domain.Item{}, ErrItemNotFound
	}

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}

	query := `UPDATE items SET name = ?, price = ? WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, item.Name, item.Price, id); err != nil {
		return domain.Item{}, fmt.Errorf("failed to patch item: %w", err)
	}
	return item, nil
}

func (r *sqliteItemRepository) SoftDelete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// no-op when the id is absent
	query := `UPDATE items SET deleted = 1 WHERE id = ?`
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to soft-delete item: %w", err)
	}
	return nil
}

type sqliteCartRepository struct {
	store *SQLiteStore
}

func (r *sqliteCartRepository) resolver() domain.ItemResolver {
	return &sqliteItemRepository{store: r.store}
}

func (r *sqliteCartRepository) cartExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.store.db.QueryRowContext(ctx, `SELECT 1 FROM carts WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check cart: %w", err)
	}
	return true, nil
}

func (r *sqliteCartRepository) loadLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	query := `SELECT item_id, name, quantity FROM cart_lines WHERE cart_id = ? ORDER BY position`

	rows, err := r.store.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.CartLine, 0)
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ItemID, &line.Name, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}
	return lines, nil
}

func (r *sqliteCartRepository) recalculate(ctx context.Context, cartID int64) (domain.CartView, error) {
	lines, err := r.loadLines(ctx, cartID)
	if err != nil {
		return domain.CartView{}, err
	}
	return domain.RecalculateCart(ctx, cartID, lines, r.resolver())
}

func (r *sqliteCartRepository) setLines(ctx context.Context, tx *sql.Tx, cartID int64, lines []domain.CartLine) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_lines WHERE cart_id = ?`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}
	query := `INSERT INTO cart_lines (cart_id, item_id, quantity, name, position) VALUES (?, ?, ?, ?, ?)`
	for i, line := range lines {
		if _, err := tx.ExecContext(ctx, query, cartID, line.ItemID, line.Quantity, line.Name, i); err != nil {
			return fmt.Errorf("failed to insert cart line: %w", err)
		}
	}
	return nil
}

func (r *sqliteCartRepository) AddEmpty(ctx context.Context) (domain.CartView, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.seq.Next()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO carts (id) VALUES (?)`, id); err != nil {
		return domain.CartView{}, fmt.Errorf("failed to insert cart: %w", err)
	}
	return domain.CartView{ID: id, Items: []domain.CartLineView{}}, nil
}

func (r *sqliteCartRepository) Get(ctx context.Context, id int64) (domain.CartView, error) {
	exists, err := r.cartExists(ctx, id)
	if err != nil {
		return domain.CartView{}, err
	}
	if !exists {
		return domain.CartView{}, ErrCartNotFound
	}
	return r.recalculate(ctx, id)
}

func (r *sqliteCartRepository) List(ctx context.Context, filter domain.CartFilter) ([]domain.CartView, error) {
	rows, err := r.store.db.QueryContext(ctx, `SELECT id FROM carts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list carts: %w", err)
	}
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan cart id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating carts: %w", err)
	}
	rows.Close()

	// Filters apply to the recomputed view, so they run after recalculation
	// and pagination runs over the filtered sequence.
	result := make([]domain.CartView, 0)
	matched := 0
	for _, id := range ids {
		view, err := r.recalculate(ctx, id)
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

func (r *sqliteCartRepository) Replace(ctx context.Context, id int64, lines []domain.CartLine) (domain.CartView, error) {
	s := r.store
	s.mu.Lock()

	exists, err := r.cartExists(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return domain.CartView{}, err
	}
	if !exists {
		s.mu.Unlock()
		return domain.CartView{}, ErrCartNotFound
	}
	if err := r.replaceLines(ctx, id, lines); err != nil {
		s.mu.Unlock()
		return domain.CartView{}, err
	}
	s.mu.Unlock()

	return r.recalculate(ctx, id)
}

func (r *sqliteCartRepository) Upsert(ctx context.Context, id int64, lines []domain.CartLine) (domain.CartView, error) {
	s := r.store
	s.mu.Lock()

	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO carts (id) VALUES (?)`, id); err != nil {
		s.mu.Unlock()
		return domain.CartView{}, fmt.Errorf("failed to upsert cart: %w", err)
	}
	s.seq.Advance(id)
	if err := r.replaceLines(ctx, id, lines); err != nil {
		s.mu.Unlock()
		return domain.CartView{}, err
	}
	s.mu.Unlock()

	return r.recalculate(ctx, id)
}

func (r *sqliteCartRepository) Patch(ctx context.Context, id int64, patch domain.CartPatch) (domain.CartView, error) {
	s := r.store
	s.mu.Lock()

	exists, err := r.cartExists(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return domain.CartView{}, err
	}
	if !exists {
		s.mu.Unlock()
		return domain.CartView{}, ErrCartNotFound
	}
	if patch.Lines != nil {
		if err := r.replaceLines(ctx, id, *patch.Lines); err != nil {
			s.mu.Unlock()
			return domain.CartView{}, err
		}
	}
	s.mu.Unlock()

	return r.recalculate(ctx, id)
}

func (r *sqliteCartRepository) replaceLines(ctx context.Context, cartID int64, lines []domain.CartLine) error {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := r.setLines(ctx, tx, cartID, lines); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (r *sqliteCartRepository) AddItem(ctx context.Context, cartID, itemID int64) (domain.CartView, error) {
	s := r.store
	s.mu.Lock()

	exists, err := r.cartExists(ctx, cartID)
	if err != nil {
		s.mu.Unlock()
		return domain.CartView{}, err
	}
	if !exists {
		s.mu.Unlock()
		return domain.CartView{}, ErrCartNotFound
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE cart_lines SET quantity = quantity + 1 WHERE cart_id = ? AND item_id = ?`,
		cartID, itemID)
	if err != nil {
		s.mu.Unlock()
		return domain.CartView{}, fmt.Errorf("failed to increment cart line: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		s.mu.Unlock()
		return domain.CartView{}, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if affected == 0 {
		name := domain.PlaceholderName(itemID)
		if item, state, err := r.resolver().ResolveItem(ctx, itemID); err == nil && state == domain.ItemStateActive {
			name = item.Name
		}
		query := `
			INSERT INTO cart_lines (cart_id, item_id, quantity, name, position)
			VALUES (?, ?, 1, ?, (SELECT COALESCE(MAX(position) + 1, 0) FROM cart_lines WHERE cart_id = ?))
		`
		if _, err := s.db.ExecContext(ctx, query, cartID, itemID, name, cartID); err != nil {
			s.mu.Unlock()
			return domain.CartView{}, fmt.Errorf("failed to append cart line: %w", err)
		}
	}
	s.mu.Unlock()

	return r.recalculate(ctx, cartID)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
