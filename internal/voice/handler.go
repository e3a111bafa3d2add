package voice

import (
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/voice-shop-backend/internal/activity"
	"github.com/wichananm65/voice-shop-backend/internal/product"
	"github.com/wichananm65/voice-shop-backend/internal/recommend"
)

const (
	defaultHistoryLimit   = 20
	personalizedLimit     = 5
	purchaseHistoryWindow = 20
)

// ProductSource is the slice of the product service the voice routes read.
type ProductSource interface {
	List() []product.Product
	ListByIDs(ids []string) []product.Product
}

type Handler struct {
	interpreter *Interpreter
	activities  activity.Repository
	products    ProductSource
	log         *zap.Logger
}

func NewHandler(interpreter *Interpreter, activities activity.Repository, products ProductSource, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		interpreter: interpreter,
		activities:  activities,
		products:    products,
		log:         log,
	}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/voice/parse", h.parseCommand)
	app.Get("/voice/recommendations/:userID", h.getRecommendations)
	app.Get("/voice/user/:userID/history", h.getHistory)
	app.Get("/voice/user/:userID/profile", h.getProfile)
	app.Delete("/voice/user/:userID/history", h.deleteHistory)
	app.Post("/voice/feedback", h.postFeedback)
}

type parseRequest struct {
	Text   string `json:"text"`
	UserID string `json:"user_id"`
}

func (h *Handler) parseCommand(c *fiber.Ctx) error {
	req := new(parseRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if req.UserID == "" {
		req.UserID = "guest"
	}

	result := h.interpreter.Interpret(c.Context(), req.Text, req.UserID)

	rec := activity.Record{
		UserID:      req.UserID,
		CommandText: req.Text,
		Intent:      string(result.Intent),
		ProductID:   result.Slots.ProductID,
		ProductName: result.Slots.ProductName,
		Category:    result.Slots.Category,
		Quantity:    result.Slots.Quantity,
		Confidence:  result.Confidence,
		Success:     result.Confidence > activity.SuccessConfidence,
	}
	if err := h.activities.Save(c.Context(), rec); err != nil {
		// interpretation already happened; log and return the result anyway
		h.log.Warn("activity save failed", zap.String("user", req.UserID), zap.Error(err))
	}

	return c.JSON(result)
}

func (h *Handler) getRecommendations(c *fiber.Ctx) error {
	userID := c.Params("userID")
	history, err := h.activities.PurchaseHistory(c.Context(), userID, purchaseHistoryWindow)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	recs := recommend.Personalized(h.products.List(), history, personalizedLimit)
	return c.JSON(fiber.Map{
		"user_id":          userID,
		"recommendations":  recs,
		"based_on_history": len(history) > 0,
	})
}

func (h *Handler) getHistory(c *fiber.Ctx) error {
	userID := c.Params("userID")
	limit := parseLimit(c.Query("limit"), defaultHistoryLimit)

	records, err := h.activities.ListByUser(c.Context(), userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	successful := 0
	for _, rec := range records {
		if rec.Success {
			successful++
		}
	}
	successRate := 0.0
	if len(records) > 0 {
		successRate = float64(successful) / float64(len(records))
	}

	return c.JSON(fiber.Map{
		"user_id":      userID,
		"history":      records,
		"total":        len(records),
		"successful":   successful,
		"success_rate": successRate,
	})
}

func (h *Handler) getProfile(c *fiber.Ctx) error {
	userID := c.Params("userID")
	history, err := h.activities.PurchaseHistory(c.Context(), userID, purchaseHistoryWindow)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	if len(history) == 0 {
		return c.JSON(fiber.Map{
			"user_id":     userID,
			"is_new_user": true,
			"message":     "No purchase history yet. Start shopping to build your profile!",
		})
	}

	categoryCounts := make(map[string]int)
	productCounts := make(map[string]int)
	var lastVisit time.Time
	for _, entry := range history {
		if entry.Category != "" {
			categoryCounts[entry.Category]++
		}
		if entry.ProductID != "" {
			productCounts[entry.ProductID]++
		}
		if entry.Timestamp.After(lastVisit) {
			lastVisit = entry.Timestamp
		}
	}

	favoriteCategory := ""
	for cat, n := range categoryCounts {
		if favoriteCategory == "" || n > categoryCounts[favoriteCategory] {
			favoriteCategory = cat
		}
	}

	topIDs := topProductIDs(productCounts, 3)
	mostPurchased := h.products.ListByIDs(topIDs)

	return c.JSON(fiber.Map{
		"user_id":           userID,
		"is_new_user":       false,
		"total_purchases":   len(history),
		"category_counts":   categoryCounts,
		"favorite_category": favoriteCategory,
		"most_purchased":    mostPurchased,
		"last_visit":        lastVisit,
	})
}

func (h *Handler) deleteHistory(c *fiber.Ctx) error {
	userID := c.Params("userID")
	deleted, err := h.activities.DeleteByUser(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{
		"user_id":         userID,
		"deleted_records": deleted,
		"message":         "History cleared",
	})
}

func (h *Handler) postFeedback(c *fiber.Ctx) error {
	fb := new(activity.Feedback)
	if err := c.BodyParser(fb); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if fb.UserID == "" {
		fb.UserID = "guest"
	}
	if err := h.activities.SaveFeedback(c.Context(), *fb); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Thank you for your feedback!"})
}

// topProductIDs returns the n most frequent product ids, most purchased
// first. Ties are broken lexically so the output is deterministic.
func topProductIDs(counts map[string]int, n int) []string {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if counts[ids[i]] != counts[ids[j]] {
			return counts[ids[i]] > counts[ids[j]]
		}
		return ids[i] < ids[j]
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
