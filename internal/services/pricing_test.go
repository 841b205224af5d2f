package services_test

import (
	"testing"

	"bookstore/internal/models"
	"bookstore/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []models.CartLine
		subtotal float64
		tax      float64
		total    float64
	}{
		{
			name:     "two lines",
			lines:    []models.CartLine{{Price: 300, Quantity: 2}, {Price: 450, Quantity: 1}},
			subtotal: 1050.00,
			tax:      52.50,
			total:    1102.50,
		},
		{
			name:     "fractional prices",
			lines:    []models.CartLine{{Price: 333.33, Quantity: 3}},
			subtotal: 999.99,
			tax:      50.00,
			total:    1049.99,
		},
		{
			name:     "float drift",
			lines:    []models.CartLine{{Price: 0.1, Quantity: 1}, {Price: 0.2, Quantity: 1}},
			subtotal: 0.3,
			tax:      0.02,
			total:    0.32,
		},
		{
			name:  "empty",
			lines: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ComputeTotals(tt.lines)
			assert.Equal(t, tt.subtotal, got.Subtotal)
			assert.Equal(t, tt.tax, got.Tax)
			assert.Equal(t, tt.total, got.Total)
		})
	}
}
