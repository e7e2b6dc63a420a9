package tax

import "math"

// PercentageCalculator calculates tax using a flat percentage rate.
type PercentageCalculator struct {
	rate float64 // e.g. 0.18 for 18%
}

// NewPercentageCalculator creates a new percentage-based tax calculator.
// Rates outside [0, 1) are clamped to zero.
func NewPercentageCalculator(rate float64) Calculator {
	if rate < 0 || rate >= 1 {
		rate = 0
	}
	return &PercentageCalculator{rate: rate}
}

// Calculate applies the configured rate to the subtotal, rounding
// half away from zero to whole cents.
func (c *PercentageCalculator) Calculate(subtotalCents int64) int64 {
	if subtotalCents <= 0 {
		return 0
	}
	return int64(math.Round(float64(subtotalCents) * c.rate))
}
