package services

import (
	"bookstore/internal/models"

	"github.com/shopspring/decimal"
)

// taxRate is the flat surcharge applied to every order.
var taxRate = decimal.RequireFromString("0.05")

// Totals is the price breakdown of a set of cart lines.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals returns subtotal = Σ price × quantity and
// total = subtotal × (1 + taxRate), both rounded to two decimals.
func ComputeTotals(lines []models.CartLine) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	subtotal = subtotal.Round(2)
	total := subtotal.Mul(decimal.NewFromInt(1).Add(taxRate)).Round(2)

	return Totals{
		Subtotal: subtotal.InexactFloat64(),
		Tax:      total.Sub(subtotal).InexactFloat64(),
		Total:    total.InexactFloat64(),
	}
}
