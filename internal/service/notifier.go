package service

import (
	"context"
	"log/slog"

	"github.com/ketenci/carsi/internal/domain"
)

// Notifier implements domain.Notifier by appending to the persistent
// notification feed. Failures are logged and swallowed so a broken feed
// never fails a checkout or signup.
type Notifier struct {
	store  domain.NotificationStore
	logger *slog.Logger
}

func NewNotifier(store domain.NotificationStore, logger *slog.Logger) *Notifier {
	return &Notifier{store: store, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, message, link, icon, iconColor string) {
	_, err := n.store.CreateNotification(ctx, domain.Notification{
		Message:   message,
		Link:      link,
		Icon:      icon,
		IconColor: iconColor,
	})
	if err != nil {
		n.logger.Error("failed to record notification",
			slog.String("message", message), slog.Any("error", err))
	}
}
