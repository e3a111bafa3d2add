package product

import (
	"strings"

	"github.com/kljensen/snowball"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id string) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []string) []Product {
	return s.repo.ListByIDs(ids)
}

func (s *Service) Create(p Product) (Product, error) {
	return s.repo.Create(p)
}

func (s *Service) Delete(id string) error {
	return s.repo.Delete(id)
}

// ResetProducts replaces all products with the given list (used for dev / seeding).
func (s *Service) ResetProducts(products []Product) error {
	return s.repo.Reset(products)
}

// Search filters the catalog by keyword, category and price range. Keyword
// matching tries a plain substring first, then stemmed token equality, then
// a small edit-distance tolerance so "aple" still finds apples.
func (s *Service) Search(q, category string, minPrice, maxPrice float64) []Product {
	products := s.repo.List()
	query := strings.ToLower(strings.TrimSpace(q))
	stemmed := stemWord(query)

	out := make([]Product, 0)
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if p.Price < minPrice {
			continue
		}
		if maxPrice > 0 && p.Price > maxPrice {
			continue
		}
		if query != "" && !matchesKeyword(p.Name, query, stemmed) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesKeyword(name, query, stemmed string) bool {
	lower := strings.ToLower(name)
	if strings.Contains(lower, query) {
		return true
	}
	for _, tok := range strings.Fields(lower) {
		if stemWord(tok) == stemmed {
			return true
		}
		if len(stemmed) > 3 && fuzzy.LevenshteinDistance(stemmed, tok) <= 2 {
			return true
		}
	}
	return false
}

func stemWord(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}
