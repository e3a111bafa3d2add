package product

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/products", h.getProducts)
	app.Get("/products/:id", h.getProduct)

	// dev-only endpoint to reset products — enabled when ALLOW_RESET_PRODUCTS=1
	app.Post("/dev/reset-products", h.resetProducts)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Post("/products", h.createProduct)
	app.Delete("/products/:id", h.deleteProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	minPrice := parsePrice(c.Query("min_price"), 0)
	maxPrice := parsePrice(c.Query("max_price"), 0)
	products := h.service.Search(c.Query("q"), c.Query("category"), minPrice, maxPrice)
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.JSON(p)
}

// resetProducts clears the catalog and inserts the provided list.
// Protected by the ALLOW_RESET_PRODUCTS environment variable.
func (h *Handler) resetProducts(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_RESET_PRODUCTS") != "1" {
		return c.Status(fiber.StatusForbidden).SendString("reset not allowed")
	}

	var products []Product
	if err := c.BodyParser(&products); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.ResetProducts(products); err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
	}
	return c.JSON(products)
}

func validateProductPayload(p *Product) map[string]string {
	errs := map[string]string{}
	if p.ID == "" {
		errs["id"] = "id is required"
	}
	if p.Name == "" {
		errs["name"] = "name is required"
	}
	if p.Price < 0 {
		errs["price"] = "price must be >= 0"
	}
	return errs
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	p := new(Product)
	if err := c.BodyParser(p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// validate payload and return all validation errors together
	if ves := validateProductPayload(p); len(ves) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": ves})
	}

	created, err := h.service.Create(*p)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Product not found")
	}
	return c.SendString("Product deleted")
}

func parsePrice(raw string, fallback float64) float64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
