package product

// Product represents one catalog entry. Identity is the string ID
// (e.g. "p_apple"); records are never mutated after loading.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// catalogEntry is the per-item shape inside the catalog JSON document,
// which is keyed by category name.
type catalogEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}
