package domain

import (
	"context"
	"fmt"
)

// Cart domain errors.
var (
	ErrCartEmpty        = &Error{Code: EINVALID, Message: "Cart is empty"}
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Product is not in the cart"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
)

// InsufficientStockError reports that a requested quantity exceeds live stock.
// Available is the maximum satisfiable quantity at the time of the check.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Requested   int32
	Available   int32
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName != "" {
		return e.ProductName + ": insufficient stock"
	}
	return "insufficient stock"
}

// StockError wraps an InsufficientStockError in a conflict-coded domain error
// so handlers can both map it to a status and extract the stock ceiling.
func StockError(op string, productID int64, name string, requested, available int32) error {
	return &Error{
		Code:    ECONFLICT,
		Op:      op,
		Message: fmt.Sprintf("Only %d of %s in stock", available, name),
		Err: &InsufficientStockError{
			ProductID:   productID,
			ProductName: name,
			Requested:   requested,
			Available:   available,
		},
	}
}

// CartLine is one product entry in a session cart. UnitPriceCents is the
// snapshot price captured when the line was added; totals are always
// recomputed from live prices on read.
type CartLine struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	ImageURL       string `json:"image_url,omitempty"`
}

// Cart is the session-resident cart payload. It lives only in the session
// store and is never written to durable storage.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Line returns the line for productID, or nil.
func (c *Cart) Line(productID int64) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine deletes the line for productID, reporting whether it existed.
func (c *Cart) RemoveLine(productID int64) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// ItemCount is the total quantity across all lines.
func (c *Cart) ItemCount() int32 {
	var n int32
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// CartTotals is the recomputed price breakdown for a cart.
type CartTotals struct {
	SubtotalCents   int64
	TaxCents        int64
	GrandTotalCents int64
}

// CartView is the reconciled cart returned by View: dangling products dropped,
// quantities clamped to live stock, totals computed from live prices.
type CartView struct {
	Lines  []CartViewLine
	Totals CartTotals
}

// CartViewLine is a cart line enriched with live product data.
type CartViewLine struct {
	CartLine
	LivePriceCents int64
	Stock          int32
}

// CartService provides business logic for shopping cart operations.
// All operations are scoped by the caller's session token; there is no
// process-wide cart state.
type CartService interface {
	// Add inserts a new line or increments an existing one.
	// Fails with *InsufficientStockError if quantity exceeds live stock.
	// Returns the updated total item count.
	Add(ctx context.Context, token string, productID int64, quantity int32) (int32, error)

	// Update sets a line's quantity and returns recomputed totals.
	// Fails with ErrCartItemNotFound, ErrInvalidQuantity, or
	// *InsufficientStockError (carrying the maximum satisfiable quantity).
	Update(ctx context.Context, token string, productID int64, quantity int32) (*CartTotals, error)

	// Remove deletes a line. Idempotent; reports whether a removal occurred.
	Remove(ctx context.Context, token string, productID int64) (bool, error)

	// Clear empties the cart unconditionally.
	Clear(ctx context.Context, token string) error

	// View reconciles the cart against the live catalog and returns it.
	View(ctx context.Context, token string) (*CartView, error)
}
