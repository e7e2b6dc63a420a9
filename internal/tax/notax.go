package tax

// NoTaxCalculator returns zero tax for all calculations.
// Used for tax-exempt deployments.
type NoTaxCalculator struct{}

// NewNoTaxCalculator creates a new no-tax calculator.
func NewNoTaxCalculator() Calculator {
	return &NoTaxCalculator{}
}

// Calculate always returns zero tax.
func (c *NoTaxCalculator) Calculate(subtotalCents int64) int64 {
	return 0
}
