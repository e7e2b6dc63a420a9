package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ketenci/carsi/internal/domain"
)

// NotificationStore implements domain.NotificationStore.
type NotificationStore struct {
	pool *pgxpool.Pool
}

func NewNotificationStore(pool *pgxpool.Pool) *NotificationStore {
	return &NotificationStore{pool: pool}
}

func (s *NotificationStore) CreateNotification(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO notifications (message, link, icon, icon_color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at`,
		n.Message, n.Link, n.Icon, n.IconColor).
		Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return nil, domain.Internal(err, "postgres.create_notification", "failed to create notification")
	}
	return &n, nil
}

func (s *NotificationStore) ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	q := `SELECT id, message, link, icon, icon_color, is_read, created_at
		FROM notifications ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_notifications", "failed to list notifications")
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Link, &n.Icon, &n.IconColor, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, domain.Internal(err, "postgres.list_notifications", "failed to scan notification")
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *NotificationStore) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE NOT is_read`).Scan(&n)
	if err != nil {
		return 0, domain.Internal(err, "postgres.count_unread", "failed to count notifications")
	}
	return n, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "postgres.mark_read", "failed to mark notification read")
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("postgres.mark_read", "notification", "")
	}
	return nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE NOT is_read`)
	if err != nil {
		return domain.Internal(err, "postgres.mark_all_read", "failed to mark notifications read")
	}
	return nil
}

func (s *NotificationStore) ClearNotifications(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM notifications`)
	if err != nil {
		return domain.Internal(err, "postgres.clear_notifications", "failed to clear notifications")
	}
	return nil
}
