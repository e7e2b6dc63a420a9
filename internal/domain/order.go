package domain

import (
	"context"
	"time"
)

// Order domain errors.
var (
	ErrOrderNotFound     = &Error{Code: ENOTFOUND, Message: "Order not found"}
	ErrInvalidStatus     = &Error{Code: EINVALID, Message: "Unknown order status"}
	ErrInvalidTransition = &Error{Code: EINVALID, Message: "Order status transition not allowed"}
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the five known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// validNext is the order status transition table: forward-only progression,
// with cancellation allowed until the order ships.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:    {OrderProcessing: true, OrderCancelled: true},
	OrderProcessing: {OrderShipped: true, OrderCancelled: true},
	OrderShipped:    {OrderDelivered: true},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Order is the persisted record of a completed checkout. Immutable after
// creation except for Status and UpdatedAt.
type Order struct {
	ID           int64
	UserID       int64
	AddressID    int64
	CreditCardID int64
	TotalCents   int64
	Status       OrderStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem is one line of an order. PriceCents is the snapshot unit price at
// purchase time, immune to later catalog price changes.
type OrderItem struct {
	ID         int64
	OrderID    int64
	ProductID  int64
	Quantity   int32
	PriceCents int64
	CreatedAt  time.Time
}

// OrderDetail aggregates an order with its items.
type OrderDetail struct {
	Order Order
	Items []OrderItem
}

// CreateOrderParams describes the atomic order creation performed by the
// order store: insert the order, insert its items, and decrement stock for
// every line inside a single transaction.
type CreateOrderParams struct {
	UserID       int64
	AddressID    int64
	CreditCardID int64
	TotalCents   int64
	Items        []OrderItemParams
}

// OrderItemParams is one line of a new order.
type OrderItemParams struct {
	ProductID  int64
	Quantity   int32
	PriceCents int64
}

// OrderStore provides order persistence. CreateOrder must be all-or-nothing:
// the commit-time stock re-check decrements each product's stock only when
// enough units remain, and any failed line rolls back the whole transaction.
type OrderStore interface {
	CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error)
	GetOrder(ctx context.Context, id int64) (*OrderDetail, error)
	ListOrdersForUser(ctx context.Context, userID int64, limit int) ([]Order, error)
	ListOrders(ctx context.Context) ([]Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) error

	// AcknowledgeOrder flips pending to processing, returning true only when
	// the flip happened (a second call is a no-op).
	AcknowledgeOrder(ctx context.Context, id int64) (bool, error)
}

// OrderService provides the order lifecycle on top of the store.
type OrderService interface {
	// Get returns an order if it belongs to userID.
	Get(ctx context.Context, userID, orderID int64) (*OrderDetail, error)

	// ListForUser returns the user's orders, newest first. limit <= 0 means all.
	ListForUser(ctx context.Context, userID int64, limit int) ([]Order, error)

	// Acknowledge marks the order as seen by its buyer: a pending order moves
	// to processing exactly once. Invoked by the confirmation endpoint.
	Acknowledge(ctx context.Context, userID, orderID int64) (*OrderDetail, error)

	// UpdateStatus performs an administrative transition, validated against
	// the transition table, and notifies the admin feed.
	UpdateStatus(ctx context.Context, orderID int64, status OrderStatus) error
}
