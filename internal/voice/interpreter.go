package voice

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wichananm65/voice-shop-backend/internal/cart"
	"github.com/wichananm65/voice-shop-backend/internal/product"
	"github.com/wichananm65/voice-shop-backend/internal/recommend"
)

// Catalog is the read-only product source the interpreter consumes.
type Catalog interface {
	List() []product.Product
}

// CartService is the cart collaborator. Calls are bounded by the interpreter
// timeout and failures never abort an interpretation.
type CartService interface {
	GetCart(ctx context.Context, username string) (cart.Cart, error)
	AddToCart(ctx context.Context, username string, item cart.Item) (cart.AddResult, error)
	RemoveFromCart(ctx context.Context, username, productID, productName string) (cart.AddResult, error)
	ClearCart(ctx context.Context, username string) (cart.AddResult, error)
}

// Slots carries the structured information extracted from a command.
type Slots struct {
	ProductName string     `json:"product_name,omitempty"`
	ProductID   string     `json:"product_id,omitempty"`
	Quantity    int        `json:"quantity"`
	Category    string     `json:"category,omitempty"`
	Cart        *cart.Cart `json:"cart,omitempty"`
}

// ParsedCommand is the response envelope for one interpreted command.
// It carries every field a caller needs to persist an activity record.
type ParsedCommand struct {
	Intent          Intent                     `json:"intent"`
	Slots           Slots                      `json:"slots"`
	Confidence      float64                    `json:"confidence"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Message         string                     `json:"message"`
	UserID          string                     `json:"user_id"`
}

// Interpreter composes the voice pipeline: normalize, classify, extract
// quantity, resolve a product, dispatch the cart side effect and attach
// recommendations. It holds no per-call state; concurrent use is safe.
type Interpreter struct {
	catalog     Catalog
	cart        CartService
	cartTimeout time.Duration
	recLimit    int
	log         *zap.Logger
}

func NewInterpreter(catalog Catalog, cartSvc CartService, cartTimeout time.Duration, log *zap.Logger) *Interpreter {
	if cartTimeout <= 0 {
		cartTimeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		catalog:     catalog,
		cart:        cartSvc,
		cartTimeout: cartTimeout,
		recLimit:    5,
		log:         log,
	}
}

// Interpret runs the full pipeline for one command. Every failure path
// produces a valid ParsedCommand; nothing here returns an error.
func (it *Interpreter) Interpret(ctx context.Context, text, userID string) ParsedCommand {
	result := ParsedCommand{
		Intent:          IntentUnknown,
		Slots:           Slots{Quantity: 1},
		Recommendations: []recommend.Recommendation{},
		UserID:          userID,
	}

	normalized := Normalize(text)
	if normalized == "" {
		result.Message = "I didn't hear anything. Please try again."
		return result
	}

	result.Intent = DetectIntent(normalized)
	result.Slots.Quantity = ExtractQuantity(normalized)
	it.log.Debug("detected intent",
		zap.String("intent", string(result.Intent)),
		zap.String("command", normalized),
		zap.Int("quantity", result.Slots.Quantity))

	products := it.catalog.List()
	if len(products) == 0 {
		result.Message = "Sorry, product catalog is not available."
		return result
	}

	switch result.Intent {
	case IntentViewCart:
		return it.viewCart(ctx, result, userID)
	case IntentClearCart:
		return it.clearCart(ctx, result, userID)
	case IntentListProducts:
		result.Message = fmt.Sprintf("We have %d products available across multiple categories.", len(products))
		result.Recommendations = recommend.Similar(products, normalized, it.recLimit)
		result.Confidence = 1.0
		return result
	}

	return it.resolveAndDispatch(ctx, result, normalized, userID, products)
}

func (it *Interpreter) viewCart(ctx context.Context, result ParsedCommand, userID string) ParsedCommand {
	result.Confidence = 1.0

	cctx, cancel := context.WithTimeout(ctx, it.cartTimeout)
	defer cancel()
	c, err := it.cart.GetCart(cctx, userID)
	if err != nil {
		it.log.Warn("cart lookup failed", zap.String("user", userID), zap.Error(err))
		result.Message = "Couldn't reach your cart right now. Please try again."
		return result
	}

	result.Slots.Cart = &c
	if c.Message != "" {
		result.Message = c.Message
	} else {
		result.Message = fmt.Sprintf("Your cart contains %d item(s).", len(c.Items))
	}
	return result
}

func (it *Interpreter) clearCart(ctx context.Context, result ParsedCommand, userID string) ParsedCommand {
	result.Confidence = 1.0

	cctx, cancel := context.WithTimeout(ctx, it.cartTimeout)
	defer cancel()
	if _, err := it.cart.ClearCart(cctx, userID); err != nil {
		it.log.Warn("cart clear failed", zap.String("user", userID), zap.Error(err))
		result.Message = "Your cart will be cleared shortly (sync pending)."
		return result
	}
	result.Message = "Your cart has been cleared successfully."
	return result
}

func (it *Interpreter) resolveAndDispatch(ctx context.Context, result ParsedCommand, normalized, userID string, products []product.Product) ParsedCommand {
	matched, score, ok := ResolveProduct(normalized, products)
	if !ok {
		return it.similarFallback(result, normalized, products)
	}

	result.Slots.ProductName = matched.Name
	result.Slots.ProductID = matched.ID
	result.Slots.Category = matched.Category
	result.Confidence = math.Round(score) / 100
	qty := result.Slots.Quantity

	it.log.Info("matched product",
		zap.String("product", matched.Name),
		zap.String("id", matched.ID),
		zap.Float64("confidence", result.Confidence))

	cctx, cancel := context.WithTimeout(ctx, it.cartTimeout)
	defer cancel()

	switch result.Intent {
	case IntentAddToCart:
		item := cart.Item{
			ProductID:   matched.ID,
			ProductName: matched.Name,
			Quantity:    qty,
			Price:       matched.Price,
			Image:       matched.Image,
			Category:    matched.Category,
		}
		if _, err := it.cart.AddToCart(cctx, userID, item); err != nil {
			it.log.Warn("cart add failed", zap.String("user", userID), zap.Error(err))
			result.Message = fmt.Sprintf("Added %d x %s (cart sync pending)", qty, matched.Name)
		} else {
			result.Message = fmt.Sprintf("Added %d x %s to your cart (₹%s)", qty, matched.Name, formatPrice(matched.Price*float64(qty)))
		}
	case IntentRemoveFromCart:
		if _, err := it.cart.RemoveFromCart(cctx, userID, matched.ID, matched.Name); err != nil {
			it.log.Warn("cart remove failed", zap.String("user", userID), zap.Error(err))
			result.Message = fmt.Sprintf("Removed %s (cart sync pending)", matched.Name)
		} else {
			result.Message = fmt.Sprintf("Removed %s from your cart", matched.Name)
		}
	default:
		result.Message = fmt.Sprintf("Found %s - ₹%s in %s", matched.Name, formatPrice(matched.Price), matched.Category)
	}

	result.Recommendations = recommend.Related(products, matched.ID, it.recLimit)
	return result
}

func (it *Interpreter) similarFallback(result ParsedCommand, normalized string, products []product.Product) ParsedCommand {
	similar := recommend.Similar(products, normalized, it.recLimit)
	if len(similar) > 0 {
		result.Recommendations = similar
		result.Message = fmt.Sprintf("I couldn't find an exact match for '%s'. Here are some similar products you might like.", normalized)
		result.Confidence = 0.5
		return result
	}
	result.Message = fmt.Sprintf("Sorry, I couldn't find any products matching '%s'. Try browsing our categories.", normalized)
	it.log.Debug("no products found", zap.String("command", normalized))
	return result
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
