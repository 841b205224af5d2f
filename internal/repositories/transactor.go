package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Stores groups the repositories that take part in one unit of work.
type Stores struct {
	Carts  CartRepository
	Orders OrderRepository
}

// Transactor runs fn with repositories bound to a single transaction.
// Returning an error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(stores Stores) error) error
}

// GORMTransactor is a GORM implementation of Transactor.
type GORMTransactor struct {
	db *gorm.DB
}

// NewGORMTransactor creates a new instance of GORMTransactor.
func NewGORMTransactor(db *gorm.DB) *GORMTransactor {
	return &GORMTransactor{db: db}
}

// WithinTransaction implements Transactor.
func (t *GORMTransactor) WithinTransaction(ctx context.Context, fn func(stores Stores) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Stores{
			Carts:  NewGORMCartRepository(tx),
			Orders: NewGORMOrderRepository(tx),
		})
	})
}
