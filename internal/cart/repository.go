package cart

import (
	"context"
	"strings"
	"sync"
)

// Repository provides access to cart storage. All calls take a context so
// callers can bound them with a timeout; the voice interpreter treats any
// error here as non-fatal.
type Repository interface {
	// Get returns the cart, creating an empty one for first-time users.
	// IsReturningUser reports whether the cart existed before the call.
	Get(ctx context.Context, username string) (Cart, error)
	// Add inserts the item or increments its quantity, returning the
	// resulting number of distinct items in the cart.
	Add(ctx context.Context, username string, item Item) (int, error)
	// Remove drops items matching the product id or name and returns the
	// number of entries removed plus the remaining item count.
	Remove(ctx context.Context, username, productID, productName string) (int, int, error)
	Clear(ctx context.Context, username string) error
}

// InMemoryRepository is used for tests and for running without a database.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string][]Item)}
}

func (r *InMemoryRepository) Get(ctx context.Context, username string) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, existed := r.carts[username]
	if !existed {
		r.carts[username] = []Item{}
		items = nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return Cart{Username: username, Items: out, IsReturningUser: existed}, nil
}

func (r *InMemoryRepository) Add(ctx context.Context, username string, item Item) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.carts[username]
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
	r.carts[username] = items
	return len(items), nil
}

func (r *InMemoryRepository) Remove(ctx context.Context, username, productID, productName string) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.carts[username]
	kept := items[:0]
	removed := 0
	for _, it := range items {
		if matchesItem(it, productID, productName) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	r.carts[username] = kept
	return removed, len(kept), nil
}

func (r *InMemoryRepository) Clear(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[username] = []Item{}
	return nil
}

func matchesItem(it Item, productID, productName string) bool {
	if productID != "" && it.ProductID == productID {
		return true
	}
	if productName != "" && strings.EqualFold(it.ProductName, productName) {
		return true
	}
	return false
}
