package handlers

import (
	"fmt"

	"bookstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes behind mw.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	orderRoutes := router.Group("/orders", mw...)
	orderRoutes.Post("/create", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetOrders)
}

// HandleCreateOrder checks out the caller's cart. Line prices come from the
// stored cart; any items or totals in the body are ignored.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var input services.CheckoutInput
	if err := c.BodyParser(&input); err != nil {
		return badBody(c, err)
	}
	if err := authorize(c, input.Username); err != nil {
		return respondError(c, err)
	}

	order, err := h.service.Checkout(c.UserContext(), input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"orderNumber": order.OrderNumber,
		"orderId":     order.ID,
		"total":       order.Total,
		"message":     fmt.Sprintf("Order #%d placed successfully", order.OrderNumber),
	})
}

// HandleGetOrders lists the orders of ?username=, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	username := c.Query("username")
	if err := authorize(c, username); err != nil {
		return respondError(c, err)
	}

	orders, err := h.service.ListOrders(c.UserContext(), username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
	})
}
