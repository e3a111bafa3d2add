package cart

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the cart HTTP surface. Carts are addressed by the
// username path segment, matching the voice frontend contract.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/cart/:username", h.getCart)
	app.Post("/cart/:username/add", h.addToCart)
	app.Post("/cart/:username/remove", h.removeFromCart)
	app.Delete("/cart/:username/clear", h.clearCart)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	out, err := h.service.GetCart(c.Context(), c.Params("username"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(out)
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	item := new(Item)
	if err := c.BodyParser(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if item.ProductName == "" && item.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "productName or productId is required"})
	}
	ack, err := h.service.AddToCart(c.Context(), c.Params("username"), *item)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ack)
}

type removeRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
}

func (h *Handler) removeFromCart(c *fiber.Ctx) error {
	payload := new(removeRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	ack, err := h.service.RemoveFromCart(c.Context(), c.Params("username"), payload.ProductID, payload.ProductName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ack)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	ack, err := h.service.ClearCart(c.Context(), c.Params("username"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(ack)
}
