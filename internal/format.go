package internal

import (
	"math"

	"github.com/shopspring/decimal"
)

// FormatAmount renders v with exactly two decimals, rounding half away from zero.
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "--"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatPercent renders a signed percentage such as "+10.00%" or "-3.25%".
// The sign follows the rounded value, so -0.001 reads "+0.00%".
func FormatPercent(v float64) string {
	s := FormatAmount(v)
	if s != "--" && NonNegative(v) {
		s = "+" + s
	}
	return s + "%"
}

// NonNegative reports whether v is zero or above once rounded to two decimals.
func NonNegative(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v > 0
	}
	return decimal.NewFromFloat(v).Round(2).Sign() >= 0
}

// TooltipLabel is the chart hover text for one point.
func TooltipLabel(p PricePoint) string {
	return "$" + FormatAmount(p.Price)
}
