package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookstore/internal/models"
	"bookstore/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMOrderRepository_CreateAndListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMOrderRepository(newTestDB(t))

	older := &models.Order{
		Username:    "alice",
		OrderNumber: 1,
		Items: []models.OrderItem{
			{BookID: "OL1W", Title: "Dune", Author: "Frank Herbert", Price: 300, Quantity: 2},
			{BookID: "OL2W", Title: "Foundation", Author: "Isaac Asimov", Price: 450, Quantity: 1},
		},
		Subtotal:  1050,
		Tax:       52.5,
		Total:     1102.5,
		Status:    models.OrderStatusPendingConfirmation,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}
	newer := &models.Order{
		Username:    "alice",
		OrderNumber: 2,
		Items:       []models.OrderItem{{BookID: "OL3W", Title: "Emma", Author: "Jane Austen", Price: 200, Quantity: 1}},
		CreatedAt:   time.Now(),
	}
	other := &models.Order{Username: "bob", OrderNumber: 3, CreatedAt: time.Now()}

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))
	require.NoError(t, repo.Create(ctx, other))
	assert.NotEmpty(t, older.ID)

	orders, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 2, orders[0].OrderNumber)
	assert.Equal(t, 1, orders[1].OrderNumber)

	require.Len(t, orders[1].Items, 2)
	assert.Equal(t, "OL1W", orders[1].Items[0].BookID)
	assert.Equal(t, "OL2W", orders[1].Items[1].BookID)
	assert.Equal(t, 1102.5, orders[1].Total)
	assert.Equal(t, models.PaymentMethodCOD, orders[1].PaymentMethod)
}

func TestGORMTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	carts := repositories.NewGORMCartRepository(db)
	orders := repositories.NewGORMOrderRepository(db)
	tx := repositories.NewGORMTransactor(db)

	_, err := carts.AddOrIncrement(ctx, newLine("alice", "OL1W", 300))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tx.WithinTransaction(ctx, func(s repositories.Stores) error {
		if err := s.Orders.Create(ctx, &models.Order{Username: "alice", CreatedAt: time.Now()}); err != nil {
			return err
		}
		if _, err := s.Carts.ClearByUser(ctx, "alice"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	lines, err := carts.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	list, err := orders.ListByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}
