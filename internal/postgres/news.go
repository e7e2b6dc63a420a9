package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ketenci/carsi/internal/domain"
)

// NewsStore implements domain.NewsStore.
type NewsStore struct {
	pool *pgxpool.Pool
}

func NewNewsStore(pool *pgxpool.Pool) *NewsStore {
	return &NewsStore{pool: pool}
}

const newsColumns = `id, title, summary, content, image_url, is_published, author_id, created_at, updated_at`

func scanNews(row pgx.Row) (*domain.News, error) {
	var n domain.News
	err := row.Scan(&n.ID, &n.Title, &n.Summary, &n.Content, &n.ImageURL,
		&n.IsPublished, &n.AuthorID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NewsStore) GetNews(ctx context.Context, id int64) (*domain.News, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = $1`, id)
	n, err := scanNews(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNewsNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_news", "failed to load article")
	}
	return n, nil
}

func (s *NewsStore) ListNews(ctx context.Context, publishedOnly bool) ([]domain.News, error) {
	q := `SELECT ` + newsColumns + ` FROM news`
	if publishedOnly {
		q += ` WHERE is_published`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_news", "failed to list articles")
	}
	defer rows.Close()

	var out []domain.News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.list_news", "failed to scan article")
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (s *NewsStore) CreateNews(ctx context.Context, n domain.News) (*domain.News, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO news (title, summary, content, image_url, is_published, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		n.Title, n.Summary, n.Content, n.ImageURL, n.IsPublished, n.AuthorID).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, domain.Internal(err, "postgres.create_news", "failed to create article")
	}
	return &n, nil
}

func (s *NewsStore) UpdateNews(ctx context.Context, n domain.News) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE news SET title = $2, summary = $3, content = $4, image_url = $5,
			is_published = $6, updated_at = now()
		WHERE id = $1`,
		n.ID, n.Title, n.Summary, n.Content, n.ImageURL, n.IsPublished)
	if err != nil {
		return domain.Internal(err, "postgres.update_news", "failed to update article")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

func (s *NewsStore) DeleteNews(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "postgres.delete_news", "failed to delete article")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}
