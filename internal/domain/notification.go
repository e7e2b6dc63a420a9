package domain

import (
	"context"
	"time"
)

// Notification is one entry in the admin-facing notification feed.
type Notification struct {
	ID        int64
	Message   string
	Link      string
	Icon      string
	IconColor string
	IsRead    bool
	CreatedAt time.Time
}

// Notifier is the fire-and-forget notification sink consumed by checkout,
// signup, and order status transitions. Implementations must not fail the
// calling operation: errors are logged, not propagated.
type Notifier interface {
	Notify(ctx context.Context, message, link, icon, iconColor string)
}

// NotificationStore provides the persistent feed behind the admin dashboard.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n Notification) (*Notification, error)
	ListNotifications(ctx context.Context, limit int) ([]Notification, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
	ClearNotifications(ctx context.Context) error
}
