// Package recommend implements the product recommendation strategies:
// same-category lookup, relevance-scored related products, free-text
// similarity search and history-driven personalization. Every strategy is a
// pure function over the catalog slice it is given.
package recommend

import (
	"math"
	"sort"

	"github.com/wichananm65/voice-shop-backend/internal/activity"
	"github.com/wichananm65/voice-shop-backend/internal/match"
	"github.com/wichananm65/voice-shop-backend/internal/product"
)

// Recommendation is a product with the score the strategy assigned to it.
type Recommendation struct {
	product.Product
	Score    float64 `json:"score"`
	Strategy string  `json:"strategy,omitempty"`
}

const (
	strategyRelated    = "related"
	strategySimilarity = "similarity"

	// similarityFloor is the minimum PartialRatio for a product to count as
	// similar to a free-text query.
	similarityFloor = 40
)

// SameCategory returns up to limit products sharing the category, in catalog
// order, excluding the given id.
func SameCategory(products []product.Product, category, excludeID string, limit int) []product.Product {
	out := make([]product.Product, 0, limit)
	for _, p := range products {
		if p.Category != category || p.ID == excludeID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Related scores every other product against the anchor: +50 for the same
// category, +30 for a price within 30% of the anchor, +15 within 30-50%.
// Products scoring zero are dropped; ties keep catalog order. An unknown
// anchor falls back to the first products in catalog order.
func Related(products []product.Product, anchorID string, limit int) []Recommendation {
	var anchor *product.Product
	for i := range products {
		if products[i].ID == anchorID {
			anchor = &products[i]
			break
		}
	}
	if anchor == nil {
		out := make([]Recommendation, 0, limit)
		for _, p := range products {
			if len(out) == limit {
				break
			}
			out = append(out, Recommendation{Product: p, Strategy: strategyRelated})
		}
		return out
	}

	related := make([]Recommendation, 0)
	for _, p := range products {
		if p.ID == anchorID {
			continue
		}
		score := 0.0
		if p.Category == anchor.Category {
			score += 50
		}
		// a zero-priced anchor grants no price bonus
		if anchor.Price > 0 {
			diff := math.Abs(p.Price-anchor.Price) / anchor.Price
			if diff < 0.3 {
				score += 30
			} else if diff < 0.5 {
				score += 15
			}
		}
		if score > 0 {
			related = append(related, Recommendation{Product: p, Score: score, Strategy: strategyRelated})
		}
	}

	sort.SliceStable(related, func(i, j int) bool {
		return related[i].Score > related[j].Score
	})
	if len(related) > limit {
		related = related[:limit]
	}
	return related
}

// Similar matches the query text against product names and categories,
// keeping the better of the two partial-ratio scores when it clears the
// similarity floor.
func Similar(products []product.Product, query string, limit int) []Recommendation {
	results := make([]Recommendation, 0)
	for _, p := range products {
		nameScore := match.PartialRatio(query, p.Name)
		categoryScore := match.PartialRatio(query, p.Category)
		score := nameScore
		if categoryScore > score {
			score = categoryScore
		}
		if score > similarityFloor {
			results = append(results, Recommendation{Product: p, Score: score, Strategy: strategySimilarity})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Personalized ranks categories by frequency in the purchase history and
// fills the result by walking ranked categories in catalog order, skipping
// already-purchased products. Empty history returns the catalog head
// unfiltered (cold start); exhausted categories backfill with any remaining
// unpurchased products.
func Personalized(products []product.Product, history []activity.HistoryEntry, limit int) []product.Product {
	if len(history) == 0 {
		if len(products) > limit {
			return products[:limit:limit]
		}
		return products
	}

	purchased := make(map[string]bool, len(history))
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, entry := range history {
		if entry.ProductID != "" {
			purchased[entry.ProductID] = true
		}
		if entry.Category == "" {
			continue
		}
		if _, ok := counts[entry.Category]; !ok {
			firstSeen[entry.Category] = i
		}
		counts[entry.Category]++
	}

	ranked := make([]string, 0, len(counts))
	for cat := range counts {
		ranked = append(ranked, cat)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	out := make([]product.Product, 0, limit)
	taken := make(map[string]bool)
	for _, cat := range ranked {
		for _, p := range products {
			if p.Category != cat || purchased[p.ID] || taken[p.ID] {
				continue
			}
			out = append(out, p)
			taken[p.ID] = true
			if len(out) == limit {
				return out
			}
		}
	}

	for _, p := range products {
		if purchased[p.ID] || taken[p.ID] {
			continue
		}
		out = append(out, p)
		taken[p.ID] = true
		if len(out) == limit {
			break
		}
	}
	return out
}
