package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ketenci/carsi/internal/domain"
)

// ReviewStore implements domain.ReviewStore.
type ReviewStore struct {
	pool *pgxpool.Pool
}

func NewReviewStore(pool *pgxpool.Pool) *ReviewStore {
	return &ReviewStore{pool: pool}
}

func (s *ReviewStore) GetUserReview(ctx context.Context, userID, productID int64) (*domain.Review, error) {
	var r domain.Review
	err := s.pool.QueryRow(ctx, `
		SELECT r.id, r.user_id, u.username, r.product_id, r.rating, r.content, r.created_at, r.updated_at
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1 AND r.product_id = $2`, userID, productID).
		Scan(&r.ID, &r.UserID, &r.Username, &r.ProductID, &r.Rating, &r.Content, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("postgres.get_review", "review", "")
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_review", "failed to load review")
	}
	return &r, nil
}

func (s *ReviewStore) ListProductReviews(ctx context.Context, productID int64, limit int) ([]domain.Review, error) {
	q := `
		SELECT r.id, r.user_id, u.username, r.product_id, r.rating, r.content, r.created_at, r.updated_at
		FROM reviews r JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1 ORDER BY r.updated_at DESC`
	args := []any{productID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_reviews", "failed to list reviews")
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var r domain.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.ProductID, &r.Rating, &r.Content, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, domain.Internal(err, "postgres.list_reviews", "failed to scan review")
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// UpsertReview inserts a review or, when the user already reviewed the
// product, replaces its rating and content.
func (s *ReviewStore) UpsertReview(ctx context.Context, r domain.Review) (*domain.Review, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO reviews (user_id, product_id, rating, content)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET rating = EXCLUDED.rating, content = EXCLUDED.content, updated_at = now()
		RETURNING id, created_at, updated_at`,
		r.UserID, r.ProductID, r.Rating, r.Content).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, domain.Internal(err, "postgres.upsert_review", "failed to save review")
	}
	return &r, nil
}
