package recommend

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/voice-shop-backend/internal/product"
)

const defaultLimit = 5

// Catalog is the product source the recommendation routes read from.
type Catalog interface {
	List() []product.Product
}

type Handler struct {
	catalog Catalog
}

func NewHandler(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/recommendations/related/:id", h.getRelated)
	app.Get("/recommendations/category/:category", h.getByCategory)
	app.Get("/recommendations/similar", h.getSimilar)
}

func (h *Handler) getRelated(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"), defaultLimit)
	recs := Related(h.catalog.List(), c.Params("id"), limit)
	return c.JSON(recs)
}

func (h *Handler) getByCategory(c *fiber.Ctx) error {
	limit := parseLimit(c.Query("limit"), defaultLimit)
	products := SameCategory(h.catalog.List(), c.Params("category"), c.Query("exclude"), limit)
	return c.JSON(products)
}

func (h *Handler) getSimilar(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "q is required"})
	}
	limit := parseLimit(c.Query("limit"), defaultLimit)
	return c.JSON(Similar(h.catalog.List(), q, limit))
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
