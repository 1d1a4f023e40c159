package utils

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatPrice renders an amount as a dollar price with thousands grouping, e.g. $1,234.50
func FormatPrice(amount float64) string {
	if amount < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -amount)
	}
	return "$" + humanize.FormatFloat("#,###.##", amount)
}

// CalculateDiscount returns the whole-number percentage saved against the original price.
// It returns 0 when there is no meaningful discount.
func CalculateDiscount(originalPrice, price float64) int {
	if originalPrice <= 0 || price >= originalPrice {
		return 0
	}
	return int(math.Round((originalPrice - price) / originalPrice * 100))
}

// RoundCents rounds a currency amount to two decimals
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
