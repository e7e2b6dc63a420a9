// Package events publishes order lifecycle events for downstream consumers
// (fulfillment, analytics). Publishing is best-effort: a failed publish is
// logged by the caller and never fails the originating operation.
package events

import (
	"context"
	"time"
)

// Subjects for published events.
const (
	SubjectOrderCreated       = "carsi.order.created"
	SubjectOrderStatusChanged = "carsi.order.status_changed"
)

// OrderCreated is emitted after a checkout commits.
type OrderCreated struct {
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	TotalCents int64     `json:"total_cents"`
	ItemCount  int32     `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderStatusChanged is emitted on every successful status transition.
type OrderStatusChanged struct {
	OrderID   int64     `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// Publisher emits domain events on a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, event any) error
	Close()
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (NoopPublisher) Publish(ctx context.Context, subject string, event any) error { return nil }

func (NoopPublisher) Close() {}
