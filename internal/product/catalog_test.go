package product

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const catalogDoc = `{
  "produce": [
    { "id": "p_apple", "name": "Organic Apple", "price": 50, "image": "/images/apple.jpg" },
    { "id": "p_pear", "name": " Fresh Pear ", "price": 55 }
  ],
  "dairy": [
    { "id": "p_milk", "name": "Full Cream Milk 1L", "price": 60 }
  ]
}`

func writeCatalog(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestJSONRepositoryList(t *testing.T) {
	repo := NewJSONRepository(writeCatalog(t, catalogDoc))

	products := repo.List()
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	if products[0].ID != "p_apple" || products[0].Category != "produce" {
		t.Fatalf("unexpected first product %+v", products[0])
	}
	if products[1].Name != "Fresh Pear" {
		t.Fatalf("expected trimmed name, got %q", products[1].Name)
	}
	if products[2].Category != "dairy" {
		t.Fatalf("expected dairy category, got %q", products[2].Category)
	}
}

// Repeated List calls must return the same sequence: category order comes
// from the file, not map iteration.
func TestJSONRepositoryListIsStable(t *testing.T) {
	repo := NewJSONRepository(writeCatalog(t, catalogDoc))

	first := repo.List()
	for i := 0; i < 20; i++ {
		if got := repo.List(); !reflect.DeepEqual(first, got) {
			t.Fatalf("list order changed on iteration %d: %v vs %v", i, first, got)
		}
	}
}

func TestJSONRepositoryMissingFile(t *testing.T) {
	repo := NewJSONRepository(filepath.Join(t.TempDir(), "nope.json"))
	if err := repo.Reload(); err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}
	if got := repo.List(); len(got) != 0 {
		t.Fatalf("expected empty catalog, got %d products", len(got))
	}
}

func TestJSONRepositoryMalformedFile(t *testing.T) {
	repo := NewJSONRepository(writeCatalog(t, `{"produce": [`))
	if got := repo.List(); len(got) != 0 {
		t.Fatalf("expected empty catalog for malformed file, got %d", len(got))
	}
}

func TestJSONRepositoryMutations(t *testing.T) {
	repo := NewJSONRepository(writeCatalog(t, catalogDoc))

	if _, err := repo.Create(Product{ID: "p_new", Name: "New Thing", Price: 10, Category: "misc"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(repo.List()) != 4 {
		t.Fatalf("expected 4 products after create, got %d", len(repo.List()))
	}

	if err := repo.Delete("p_milk"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID("p_milk"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete("p_milk"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for repeated delete, got %v", err)
	}

	// reload drops local changes
	if err := repo.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(repo.List()) != 3 {
		t.Fatalf("expected 3 products after reload, got %d", len(repo.List()))
	}
}
