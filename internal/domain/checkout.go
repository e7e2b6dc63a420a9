package domain

import "context"

// Checkout domain errors.
var (
	ErrInvalidAddress = &Error{Code: EINVALID, Message: "Invalid delivery address"}
	ErrInvalidCard    = &Error{Code: EINVALID, Message: "Invalid payment card"}
)

// PlaceOrderParams identifies the cart and the user's chosen address and
// payment instrument for a checkout attempt.
type PlaceOrderParams struct {
	UserID       int64
	SessionToken string
	AddressID    int64
	CreditCardID int64
}

// CheckoutService converts a session cart into a persisted order.
//
// PlaceOrder validates the cart is non-empty and that the address and card
// belong to the user, then commits atomically: order + items created and
// stock decremented in one transaction, with stock re-checked at commit time
// rather than trusting the cart's read-time view. Any failure leaves no
// partial state. On success the cart is cleared and the order returned.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, params PlaceOrderParams) (*Order, error)
}
