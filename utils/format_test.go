package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0.00"},
		{20, "$20.00"},
		{1234.5, "$1,234.50"},
		{-5, "-$5.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.amount), "amount %v", tt.amount)
	}
}

func TestCalculateDiscount(t *testing.T) {
	assert.Equal(t, 25, CalculateDiscount(80, 60))
	assert.Equal(t, 33, CalculateDiscount(149.99, 99.99))
	assert.Equal(t, 0, CalculateDiscount(50, 50))
	assert.Equal(t, 0, CalculateDiscount(40, 50), "higher sale price is not a discount")
	assert.Equal(t, 0, CalculateDiscount(0, 10))
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 3.2, RoundCents(3.2000000001))
	assert.Equal(t, 10.01, RoundCents(10.005000001))
}
