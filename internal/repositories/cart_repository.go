package repositories

import (
	"context"

	"bookstore/internal/models"
)

// CartRepository defines the interface for cart line data access.
type CartRepository interface {
	// AddOrIncrement inserts line with quantity 1, or bumps the quantity of
	// the existing line for the same user and book. It returns the stored line.
	AddOrIncrement(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	ListByUser(ctx context.Context, username string) ([]models.CartLine, error)
	// ListByUserForUpdate is ListByUser with row locks where the database
	// supports them. Only meaningful inside a transaction.
	ListByUserForUpdate(ctx context.Context, username string) ([]models.CartLine, error)
	GetByID(ctx context.Context, id string) (*models.CartLine, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartLine, error)
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	ClearByUser(ctx context.Context, username string) (int64, error)
}
