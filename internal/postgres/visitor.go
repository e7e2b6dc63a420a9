package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ketenci/carsi/internal/domain"
)

// VisitorStore implements domain.VisitorStore.
type VisitorStore struct {
	pool *pgxpool.Pool
}

func NewVisitorStore(pool *pgxpool.Pool) *VisitorStore {
	return &VisitorStore{pool: pool}
}

func (s *VisitorStore) RecordVisit(ctx context.Context, v domain.Visitor) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO visitors (ip, user_agent, is_authenticated, is_admin, user_id)
		VALUES ($1, $2, $3, $4, $5)`,
		v.IP, v.UserAgent, v.IsAuthenticated, v.IsAdmin, v.UserID)
	if err != nil {
		return domain.Internal(err, "postgres.record_visit", "failed to record visit")
	}
	return nil
}

func (s *VisitorStore) DailyStats(ctx context.Context, days int) ([]domain.VisitorDayStats, error) {
	if days <= 0 {
		days = 7
	}
	rows, err := s.pool.Query(ctx, `
		SELECT date_trunc('day', created_at) AS day,
			count(*),
			count(*) FILTER (WHERE is_authenticated),
			count(*) FILTER (WHERE is_admin),
			count(*) FILTER (WHERE NOT is_authenticated)
		FROM visitors
		WHERE created_at >= now() - make_interval(days => $1)
		GROUP BY day ORDER BY day`, days)
	if err != nil {
		return nil, domain.Internal(err, "postgres.daily_stats", "failed to aggregate visits")
	}
	defer rows.Close()

	var out []domain.VisitorDayStats
	for rows.Next() {
		var d domain.VisitorDayStats
		if err := rows.Scan(&d.Date, &d.TotalVisits, &d.AuthenticatedVisits, &d.AdminVisits, &d.GuestVisits); err != nil {
			return nil, domain.Internal(err, "postgres.daily_stats", "failed to scan stats")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *VisitorStore) ListVisits(ctx context.Context, limit int) ([]domain.Visitor, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, ip, user_agent, is_authenticated, is_admin, user_id, created_at
		FROM visitors ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_visits", "failed to list visits")
	}
	defer rows.Close()

	var out []domain.Visitor
	for rows.Next() {
		var v domain.Visitor
		if err := rows.Scan(&v.ID, &v.IP, &v.UserAgent, &v.IsAuthenticated, &v.IsAdmin, &v.UserID, &v.CreatedAt); err != nil {
			return nil, domain.Internal(err, "postgres.list_visits", "failed to scan visit")
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
