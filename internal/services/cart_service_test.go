package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bookstore/internal/models"
	"bookstore/internal/repositories"
	"bookstore/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validAddInput() services.AddItemInput {
	return services.AddItemInput{
		Username: "alice",
		BookID:   "OL45883W",
		Title:    "Dune",
		Author:   "Frank Herbert",
		Price:    300,
		CoverURL: "https://covers.openlibrary.org/b/id/1-M.jpg",
	}
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo)

	stored := &models.CartLine{ID: "line-1", Username: "alice", BookID: "OL45883W", Price: 300, Quantity: 2}
	mockRepo.On("AddOrIncrement", mock.Anything, mock.MatchedBy(func(l *models.CartLine) bool {
		return l.Username == "alice" && l.BookID == "OL45883W" && l.Price == 300
	})).Return(stored, nil).Once()

	line, err := service.AddItem(ctx, validAddInput())
	require.NoError(t, err)
	assert.Equal(t, stored, line)
	mockRepo.AssertExpectations(t)
}

func TestCartService_AddItemValidation(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo)

	tests := []struct {
		name  string
		edit  func(*services.AddItemInput)
		field string
	}{
		{"missing username", func(in *services.AddItemInput) { in.Username = "" }, "username"},
		{"missing book id", func(in *services.AddItemInput) { in.BookID = "" }, "catalogItemId"},
		{"missing title", func(in *services.AddItemInput) { in.Title = "" }, "title"},
		{"missing author", func(in *services.AddItemInput) { in.Author = "" }, "author"},
		{"missing price", func(in *services.AddItemInput) { in.Price = 0 }, "price"},
		{"negative price", func(in *services.AddItemInput) { in.Price = -5 }, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validAddInput()
			tt.edit(&in)
			_, err := service.AddItem(ctx, in)
			require.ErrorIs(t, err, services.ErrValidation)

			var vErr *services.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Contains(t, vErr.Fields, tt.field)
		})
	}
	mockRepo.AssertNotCalled(t, "AddOrIncrement", mock.Anything, mock.Anything)
}

func TestCartService_AddItemPersistenceError(t *testing.T) {
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo)

	mockRepo.On("AddOrIncrement", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("disk full")).Once()
	_, err := service.AddItem(context.Background(), validAddInput())
	assert.ErrorIs(t, err, services.ErrPersistence)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo)

	mockRepo.On("Delete", mock.Anything, "line-1").Return(nil).Once()
	assert.NoError(t, service.RemoveItem(ctx, "line-1"))

	mockRepo.On("Delete", mock.Anything, "missing").
		Return(fmt.Errorf("cart line with ID missing not found for deletion: %w", repositories.ErrNotFound)).Once()
	err := service.RemoveItem(ctx, "missing")
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo)

	mockRepo.On("ClearByUser", mock.Anything, "alice").Return(int64(3), nil).Once()
	count, err := service.Clear(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	mockRepo.On("ClearByUser", mock.Anything, "empty").Return(int64(0), nil).Once()
	count, err = service.Clear(ctx, "empty")
	require.NoError(t, err)
	assert.Zero(t, count)
	mockRepo.AssertExpectations(t)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo)

	_, err := service.UpdateQuantity(ctx, "line-1", 0)
	assert.ErrorIs(t, err, services.ErrValidation)

	mockRepo.On("UpdateQuantity", mock.Anything, "line-1", 4).Return(&models.CartLine{ID: "line-1", Quantity: 4}, nil).Once()
	line, err := service.UpdateQuantity(ctx, "line-1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)

	mockRepo.On("UpdateQuantity", mock.Anything, "missing", 2).Return(nil, repositories.ErrNotFound).Once()
	_, err = service.UpdateQuantity(ctx, "missing", 2)
	assert.ErrorIs(t, err, services.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestCartService_Summary(t *testing.T) {
	mockRepo := new(MockCartRepository)
	service := services.NewCartService(mockRepo)

	lines := []models.CartLine{
		{ID: "a", Price: 300, Quantity: 2},
		{ID: "b", Price: 450, Quantity: 1},
	}
	mockRepo.On("ListByUser", mock.Anything, "alice").Return(lines, nil).Once()

	summary, err := service.Summary(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, 1050.0, summary.Subtotal)
	assert.Equal(t, 52.5, summary.Tax)
	assert.Equal(t, 1102.5, summary.Total)

	_, err = service.Summary(context.Background(), "")
	assert.ErrorIs(t, err, services.ErrValidation)
	mockRepo.AssertExpectations(t)
}
