package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxRateIsFivePercent(t *testing.T) {
	assert.True(t, taxRate.Equal(decimal.RequireFromString("0.05")), taxRate.String())
}
