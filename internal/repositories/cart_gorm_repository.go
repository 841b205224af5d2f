package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// AddOrIncrement is a single INSERT ... ON CONFLICT DO UPDATE, so two
// concurrent adds of the same book both land.
func (r *GORMCartRepository) AddOrIncrement(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	if line.ID == "" {
		line.ID = uuid.New().String()
	}
	line.Quantity = 1

	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "username"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_lines.quantity + ?", 1),
			"updated_at": time.Now(),
		}),
	}).Create(line).Error
	if err != nil {
		return nil, fmt.Errorf("failed to add cart line: %w", err)
	}

	var stored models.CartLine
	if err := db.First(&stored, "username = ? AND book_id = ?", line.Username, line.BookID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload cart line: %w", err)
	}
	return &stored, nil
}

// ListByUser returns the user's cart lines, oldest first.
func (r *GORMCartRepository) ListByUser(ctx context.Context, username string) ([]models.CartLine, error) {
	return r.list(r.db.WithContext(ctx), username)
}

// ListByUserForUpdate locks the returned rows on PostgreSQL. SQLite
// transactions already serialize writers.
func (r *GORMCartRepository) ListByUserForUpdate(ctx context.Context, username string) ([]models.CartLine, error) {
	db := r.db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.list(db, username)
}

func (r *GORMCartRepository) list(db *gorm.DB, username string) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	if err := db.Where("username = ?", username).Order("created_at ASC").Order("id ASC").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart for %s: %w", username, err)
	}
	return lines, nil
}

// GetByID retrieves a single cart line.
func (r *GORMCartRepository) GetByID(ctx context.Context, id string) (*models.CartLine, error) {
	var line models.CartLine
	if err := r.db.WithContext(ctx).First(&line, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart line with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart line %s: %w", id, err)
	}
	return &line, nil
}

// UpdateQuantity sets an explicit quantity on a line.
func (r *GORMCartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartLine, error) {
	res := r.db.WithContext(ctx).Model(&models.CartLine{}).Where("id = ?", id).Updates(map[string]interface{}{
		"quantity":   quantity,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update cart line %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("cart line with ID %s not found for update: %w", id, ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

// Delete removes one line by its ID.
func (r *GORMCartRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.CartLine{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart line: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart line with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteByIDs removes the given lines and reports how many were removed.
func (r *GORMCartRepository) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.CartLine{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete cart lines: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// ClearByUser removes every line of the user's cart.
func (r *GORMCartRepository) ClearByUser(ctx context.Context, username string) (int64, error) {
	res := r.db.WithContext(ctx).Where("username = ?", username).Delete(&models.CartLine{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to clear cart for %s: %w", username, res.Error)
	}
	return res.RowsAffected, nil
}
