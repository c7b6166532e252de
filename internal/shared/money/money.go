package money

import (
	"github.com/shopspring/decimal"
)

// All payroll arithmetic is done in decimal, never float. Amounts are
// rounded to 2 decimal places, half-up.

var hundred = decimal.NewFromInt(100)

// Round applies the payroll rounding policy: 2 decimal places,
// half-up. Amounts here are never negative, so decimal's
// half-away-from-zero rounding is exactly half-up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns base * rate/100, rounded.
func Percent(base, rate decimal.Decimal) decimal.Decimal {
	return Round(base.Mul(rate).Div(hundred))
}

// PercentCapped returns rate% of min(base, cap), rounded. A zero or
// negative cap means uncapped.
func PercentCapped(base, rate, cap decimal.Decimal) decimal.Decimal {
	if cap.IsPositive() && base.GreaterThan(cap) {
		base = cap
	}
	return Percent(base, rate)
}

// FromString parses a decimal amount; empty input is zero.
func FromString(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(v)
}

// IsNegative reports whether the amount is below zero.
func IsNegative(d decimal.Decimal) bool {
	return d.Sign() < 0
}
