package handlers

import (
	"bookstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes registers the cart routes behind mw.
func (h *CartHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	cart := router.Group("/cart", mw...)
	cart.Post("/add", h.HandleAdd)
	cart.Get("/", h.HandleList)
	cart.Get("/summary", h.HandleSummary)
	cart.Delete("/clear/:username", h.HandleClear)
	cart.Put("/:id", h.HandleUpdate)
	cart.Delete("/:id", h.HandleRemove)
}

// HandleAdd puts one copy of a book into the cart.
func (h *CartHandler) HandleAdd(c *fiber.Ctx) error {
	var input services.AddItemInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}
	if err := authorize(c, input.Username); err != nil {
		return respondError(c, err)
	}

	line, err := h.service.AddItem(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item added to cart",
		"item":    line,
	})
}

// HandleList returns the lines of ?username=.
func (h *CartHandler) HandleList(c *fiber.Ctx) error {
	username := c.Query("username")
	if err := authorize(c, username); err != nil {
		return respondError(c, err)
	}

	lines, err := h.service.ListItems(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"items":   lines,
	})
}

// HandleSummary returns lines with item count and totals.
func (h *CartHandler) HandleSummary(c *fiber.Ctx) error {
	username := c.Query("username")
	if err := authorize(c, username); err != nil {
		return respondError(c, err)
	}

	summary, err := h.service.Summary(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"items":     summary.Items,
		"itemCount": summary.ItemCount,
		"subtotal":  summary.Subtotal,
		"tax":       summary.Tax,
		"total":     summary.Total,
	})
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleUpdate sets the quantity of one of the caller's lines.
func (h *CartHandler) HandleUpdate(c *fiber.Ctx) error {
	var req updateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if err := h.ownLine(c, c.Params("id")); err != nil {
		return respondError(c, err)
	}

	line, err := h.service.UpdateQuantity(c.UserContext(), c.Params("id"), req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"item":    line,
	})
}

// HandleRemove deletes one of the caller's lines.
func (h *CartHandler) HandleRemove(c *fiber.Ctx) error {
	lineID := c.Params("id")
	if err := h.ownLine(c, lineID); err != nil {
		return respondError(c, err)
	}
	if err := h.service.RemoveItem(c.UserContext(), lineID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Item removed from cart",
	})
}

// HandleClear empties the named user's cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := authorize(c, username); err != nil {
		return respondError(c, err)
	}

	count, err := h.service.Clear(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"deletedCount": count,
	})
}

func (h *CartHandler) ownLine(c *fiber.Ctx, lineID string) error {
	line, err := h.service.GetItem(c.UserContext(), lineID)
	if err != nil {
		return err
	}
	session, _ := sessionUsername(c)
	if line.Username != session {
		return services.ErrForbidden
	}
	return nil
}
