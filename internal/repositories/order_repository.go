package repositories

import (
	"context"

	"bookstore/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// write-once, so there is no update or delete.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByUser(ctx context.Context, username string) ([]models.Order, error)
}
