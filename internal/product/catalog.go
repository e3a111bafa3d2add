package product

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// JSONRepository serves the catalog from a JSON document keyed by category:
//
//	{"produce": [{"id": "p_apple", "name": "Organic Apple", ...}], ...}
//
// The file is read once and cached; Reload re-reads it. A missing or
// unreadable file yields an empty catalog rather than an error, so callers
// can treat "no products" as a service-unavailable condition instead of
// crashing. Create/Delete/Reset mutate only the in-memory cache; the file
// stays untouched and a Reload discards local changes.
type JSONRepository struct {
	path string

	mu     sync.RWMutex
	loaded bool
	cache  []Product
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) List() []Product {
	r.mu.RLock()
	if r.loaded {
		out := make([]Product, len(r.cache))
		copy(out, r.cache)
		r.mu.RUnlock()
		return out
	}
	r.mu.RUnlock()

	_ = r.Reload()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, len(r.cache))
	copy(out, r.cache)
	return out
}

func (r *JSONRepository) GetByID(id string) (Product, error) {
	for _, p := range r.List() {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *JSONRepository) ListByIDs(ids []string) []Product {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]Product, 0, len(ids))
	for _, p := range r.List() {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out
}

// Reload re-reads the catalog file. Read or parse failures leave an empty
// catalog and return nil: catalog absence is a degraded state, not an error.
func (r *JSONRepository) Reload() error {
	products := loadCatalogFile(r.path)

	r.mu.Lock()
	r.cache = products
	r.loaded = true
	r.mu.Unlock()
	return nil
}

func (r *JSONRepository) Create(p Product) (Product, error) {
	r.ensureLoaded()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = append(r.cache, p)
	return p, nil
}

func (r *JSONRepository) Delete(id string) error {
	r.ensureLoaded()
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cache {
		if r.cache[i].ID == id {
			r.cache = append(r.cache[:i], r.cache[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *JSONRepository) Reset(products []Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make([]Product, 0, len(products))
	r.cache = append(r.cache, products...)
	r.loaded = true
	return nil
}

func (r *JSONRepository) ensureLoaded() {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if !loaded {
		_ = r.Reload()
	}
}

// loadCatalogFile flattens the category-keyed document into a single slice,
// tagging each item with its category. A token-stream decode keeps the
// category order of the file, so repeated loads yield identical sequences.
func loadCatalogFile(path string) []Product {
	f, err := os.Open(path)
	if err != nil {
		return []Product{}
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	tok, err := dec.Token()
	if err != nil {
		return []Product{}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return []Product{}
	}

	out := make([]Product, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return []Product{}
		}
		category, ok := keyTok.(string)
		if !ok {
			return []Product{}
		}
		var items []catalogEntry
		if err := dec.Decode(&items); err != nil {
			return []Product{}
		}
		for _, item := range items {
			out = append(out, Product{
				ID:       item.ID,
				Name:     strings.TrimSpace(item.Name),
				Price:    item.Price,
				Category: category,
				Image:    item.Image,
			})
		}
	}
	return out
}
