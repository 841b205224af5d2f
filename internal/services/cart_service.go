package services

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/models"
	"bookstore/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// AddItemInput is what a shopper sends to put a book in the cart.
type AddItemInput struct {
	Username string  `json:"username" validate:"required"`
	BookID   string  `json:"catalogItemId" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	Author   string  `json:"author" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	CoverURL string  `json:"coverUrl"`
}

// CartSummary is the cart page view: lines plus the same totals checkout
// would charge.
type CartSummary struct {
	Items     []models.CartLine `json:"items"`
	ItemCount int               `json:"itemCount"`
	Totals
}

// CartService handles business logic for shopping carts.
type CartService struct {
	repo     repositories.CartRepository
	validate *validator.Validate
}

// NewCartService creates a new CartService.
func NewCartService(repo repositories.CartRepository) *CartService {
	return &CartService{
		repo:     repo,
		validate: NewValidator(),
	}
}

// AddItem adds one copy of a book. Adding a book already in the cart bumps
// its quantity instead of creating a second line.
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (*models.CartLine, error) {
	if err := ValidateStruct(s.validate, input); err != nil {
		return nil, err
	}

	line, err := s.repo.AddOrIncrement(ctx, &models.CartLine{
		Username: input.Username,
		BookID:   input.BookID,
		Title:    input.Title,
		Author:   input.Author,
		Price:    input.Price,
		CoverURL: input.CoverURL,
	})
	if err != nil {
		return nil, persistence("add cart item", err)
	}
	return line, nil
}

// ListItems returns all lines of the user's cart.
func (s *CartService) ListItems(ctx context.Context, username string) ([]models.CartLine, error) {
	if username == "" {
		return nil, NewValidationError("username", "Username is required")
	}
	lines, err := s.repo.ListByUser(ctx, username)
	if err != nil {
		return nil, persistence("list cart", err)
	}
	return lines, nil
}

// Summary returns the cart lines with item count and totals.
func (s *CartService) Summary(ctx context.Context, username string) (*CartSummary, error) {
	lines, err := s.ListItems(ctx, username)
	if err != nil {
		return nil, err
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return &CartSummary{
		Items:     lines,
		ItemCount: count,
		Totals:    ComputeTotals(lines),
	}, nil
}

// GetItem returns a single cart line.
func (s *CartService) GetItem(ctx context.Context, lineID string) (*models.CartLine, error) {
	line, err := s.repo.GetByID(ctx, lineID)
	if err != nil {
		return nil, s.lineError("get cart item", lineID, err)
	}
	return line, nil
}

// UpdateQuantity sets an explicit quantity on a line. Quantities below one
// are rejected; removing a line goes through RemoveItem.
func (s *CartService) UpdateQuantity(ctx context.Context, lineID string, quantity int) (*models.CartLine, error) {
	if quantity < 1 {
		return nil, NewValidationError("quantity", "Quantity must be at least 1")
	}
	line, err := s.repo.UpdateQuantity(ctx, lineID, quantity)
	if err != nil {
		return nil, s.lineError("update cart item", lineID, err)
	}
	return line, nil
}

// RemoveItem deletes one line by its ID.
func (s *CartService) RemoveItem(ctx context.Context, lineID string) error {
	if err := s.repo.Delete(ctx, lineID); err != nil {
		return s.lineError("remove cart item", lineID, err)
	}
	return nil
}

// Clear deletes every line of the user's cart and reports how many went.
// Clearing an empty cart is not an error.
func (s *CartService) Clear(ctx context.Context, username string) (int64, error) {
	count, err := s.repo.ClearByUser(ctx, username)
	if err != nil {
		return 0, persistence("clear cart", err)
	}
	return count, nil
}

func (s *CartService) lineError(op, lineID string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("cart item %s: %w", lineID, ErrNotFound)
	}
	return persistence(op, err)
}
