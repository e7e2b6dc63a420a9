// Package tax computes the tax charged on a cart subtotal.
package tax

// Calculator defines the interface for tax calculation.
// Implementations: PercentageCalculator, NoTaxCalculator
type Calculator interface {
	// Calculate returns the tax owed on the given subtotal, in cents.
	Calculate(subtotalCents int64) int64
}
