package voice

import "strings"

// Intent is the classified purpose of a user utterance.
type Intent string

const (
	IntentViewCart       Intent = "view_cart"
	IntentClearCart      Intent = "clear_cart"
	IntentAddToCart      Intent = "add_to_cart"
	IntentRemoveFromCart Intent = "remove_from_cart"
	IntentSearchProduct  Intent = "search_product"
	IntentListProducts   Intent = "list_products"
	IntentUnknown        Intent = "unknown"
)

// intentRules is an explicit priority chain: the first rule whose keyword
// set matches wins. Ordering is a contract — view_cart phrases must beat the
// lone "show", and "remove all" must beat "remove". The list_products rule is
// effectively unreachable because "list"/"show all"/"available" phrases are
// caught by the add/remove/search rules or the search default first; the
// precedence is kept as-is rather than reordered (known quirk).
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentViewCart, []string{"show cart", "view cart", "my cart", "open cart", "check cart", "see cart", "what's in my cart", "cart items"}},
	{IntentClearCart, []string{"clear cart", "empty cart", "remove all", "delete all", "clear my cart", "empty my cart"}},
	{IntentAddToCart, []string{"add", "buy", "get", "purchase", "i want", "i need"}},
	{IntentRemoveFromCart, []string{"remove", "delete", "cancel", "take out", "drop"}},
	{IntentSearchProduct, []string{"find", "search", "show", "look for", "where is", "do you have", "tell me about"}},
	{IntentListProducts, []string{"list", "show all", "available", "what do you have", "all products"}},
}

// DetectIntent normalizes the text and walks the rule chain in priority
// order. Unmatched input defaults to search_product.
func DetectIntent(text string) Intent {
	normalized := Normalize(text)
	for _, rule := range intentRules {
		if containsAny(normalized, rule.keywords...) {
			return rule.intent
		}
	}
	return IntentSearchProduct
}

// containsAny checks if s contains any of the given substrings.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
