package models_test

import (
	"testing"
	"time"

	"bookstore/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrder_TrackingAt(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order := models.Order{CreatedAt: created}

	tests := []struct {
		name     string
		elapsed  time.Duration
		status   string
		progress int
	}{
		{"just placed", 0, models.TrackingOrderPlaced, 25},
		{"same day", 23 * time.Hour, models.TrackingOrderPlaced, 25},
		{"36 hours", 36 * time.Hour, models.TrackingProcessing, 50},
		{"60 hours", 60 * time.Hour, models.TrackingShipped, 75},
		{"90 hours", 90 * time.Hour, models.TrackingDelivered, 100},
		{"a month later", 30 * 24 * time.Hour, models.TrackingDelivered, 100},
		{"clock skew", -2 * time.Hour, models.TrackingOrderPlaced, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := order.TrackingAt(created.Add(tt.elapsed))
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.progress, got.Progress)
		})
	}
}

func TestCartLine_LineTotal(t *testing.T) {
	line := models.CartLine{Price: 300, Quantity: 2}
	assert.Equal(t, 600.0, line.LineTotal())
}
