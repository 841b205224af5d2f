package handlers

import (
	"strings"

	"bookstore/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves book listings.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// RegisterRoutes registers the catalog routes behind mw.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	books := router.Group("/books", mw...)
	books.Get("/", h.HandleBooks)
	books.Get("/categories", h.HandleCategories)
	books.Get("/featured", h.HandleFeatured)
}

// HandleBooks lists books of ?category=, defaulting to fiction.
func (h *CatalogHandler) HandleBooks(c *fiber.Ctx) error {
	category := strings.ToLower(c.Query("category", "fiction"))
	return c.JSON(fiber.Map{
		"success":  true,
		"category": category,
		"books":    h.service.BooksByCategory(c.UserContext(), category),
	})
}

// HandleCategories lists the known category keys.
func (h *CatalogHandler) HandleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":    true,
		"categories": h.service.Categories(),
	})
}

// HandleFeatured returns a few books from several categories. ?categories=
// takes a comma separated list.
func (h *CatalogHandler) HandleFeatured(c *fiber.Ctx) error {
	var keys []string
	if raw := c.Query("categories"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			if k = strings.TrimSpace(strings.ToLower(k)); k != "" {
				keys = append(keys, k)
			}
		}
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"featured": h.service.Featured(c.UserContext(), keys),
	})
}
