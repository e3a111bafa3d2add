package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// PostgresRepository stores one row per username with the items as a JSONB
// array, mirroring the cart document shape returned to clients.
type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartQuery    = `SELECT items FROM carts WHERE username = $1`
	upsertCartQuery = `
		INSERT INTO carts (username, items, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (username)
		DO UPDATE SET items = $2, updated_at = $3
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, username string) (Cart, error) {
	items, existed, err := r.loadItems(ctx, username)
	if err != nil {
		return Cart{}, err
	}
	if !existed {
		if err := r.saveItems(ctx, username, []Item{}); err != nil {
			return Cart{}, err
		}
	}
	return Cart{Username: username, Items: items, IsReturningUser: existed}, nil
}

func (r *PostgresRepository) Add(ctx context.Context, username string, item Item) (int, error) {
	items, _, err := r.loadItems(ctx, username)
	if err != nil {
		return 0, err
	}
	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}
	if err := r.saveItems(ctx, username, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

func (r *PostgresRepository) Remove(ctx context.Context, username, productID, productName string) (int, int, error) {
	items, existed, err := r.loadItems(ctx, username)
	if err != nil {
		return 0, 0, err
	}
	if !existed {
		return 0, 0, nil
	}
	kept := make([]Item, 0, len(items))
	removed := 0
	for _, it := range items {
		if matchesItem(it, productID, productName) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	if err := r.saveItems(ctx, username, kept); err != nil {
		return 0, 0, err
	}
	return removed, len(kept), nil
}

func (r *PostgresRepository) Clear(ctx context.Context, username string) error {
	return r.saveItems(ctx, username, []Item{})
}

func (r *PostgresRepository) loadItems(ctx context.Context, username string) ([]Item, bool, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, getCartQuery, username).Scan(&raw)
	if err == sql.ErrNoRows {
		return []Item{}, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	items := make([]Item, 0)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			// corrupt row; treat as empty rather than failing the command
			return []Item{}, true, nil
		}
	}
	return items, true, nil
}

func (r *PostgresRepository) saveItems(ctx context.Context, username string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = r.db.ExecContext(ctx, upsertCartQuery, username, raw, now)
	return err
}
