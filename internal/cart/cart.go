package cart

// Item describes a product along with its quantity in the cart.
// JSON field names follow the voice frontend contract.
type Item struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"qty"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

// Cart is a user's cart state as returned to callers. Carts are keyed by a
// free-form username; there is no account system in front of them.
type Cart struct {
	Username        string `json:"username"`
	Items           []Item `json:"items"`
	IsReturningUser bool   `json:"is_returning_user"`
	Message         string `json:"message,omitempty"`
}
