package voice

import (
	"strings"

	"github.com/wichananm65/voice-shop-backend/internal/match"
	"github.com/wichananm65/voice-shop-backend/internal/product"
)

// MinResolveScore is the minimum token-set similarity (0-100) for a product
// match to be accepted.
const MinResolveScore = 60

// commandTokens are dropped from the text before product matching: intent
// keywords, number words and a few connective fillers. Without this, command
// verbs dilute the token-set score and "add two apples" fails to bind to the
// apple product.
var commandTokens = buildCommandTokens()

func buildCommandTokens() map[string]bool {
	set := make(map[string]bool)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			for _, tok := range strings.Fields(kw) {
				set[tok] = true
			}
		}
	}
	for _, entry := range wordNumbers {
		set[entry.word] = true
	}
	for _, w := range []string{"please", "some", "of", "for", "me", "from"} {
		set[w] = true
	}
	return set
}

// productQuery strips command vocabulary and digit runs from the normalized
// text. If nothing is left the original text is used as-is.
func productQuery(normalized string) string {
	kept := make([]string, 0)
	for _, tok := range strings.Fields(normalized) {
		if commandTokens[tok] || isDigits(tok) {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return normalized
	}
	return strings.Join(kept, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveProduct fuzzy-matches the normalized text against every product
// name and keeps the single best candidate. Ties go to the first product in
// catalog order; scores below MinResolveScore mean "no match".
func ResolveProduct(normalized string, products []product.Product) (product.Product, float64, bool) {
	query := productQuery(normalized)

	var best product.Product
	bestScore := 0.0
	for _, p := range products {
		score := match.TokenSetRatio(query, p.Name)
		if score > bestScore {
			best = p
			bestScore = score
		}
	}
	if bestScore < MinResolveScore {
		return product.Product{}, 0, false
	}
	return best, bestScore, true
}
