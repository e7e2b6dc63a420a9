package domain

import (
	"context"
	"time"
)

// ErrNewsNotFound is returned for missing or unpublished articles.
var ErrNewsNotFound = &Error{Code: ENOTFOUND, Message: "Article not found"}

// News is a site article authored by an admin.
type News struct {
	ID          int64
	Title       string
	Summary     string
	Content     string
	ImageURL    string
	IsPublished bool
	AuthorID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Excerpt returns the summary, falling back to a truncated content preview.
func (n *News) Excerpt() string {
	if n.Summary != "" {
		return n.Summary
	}
	if len(n.Content) > 200 {
		return n.Content[:200] + "..."
	}
	return n.Content
}

// NewsStore provides article persistence.
type NewsStore interface {
	GetNews(ctx context.Context, id int64) (*News, error)
	ListNews(ctx context.Context, publishedOnly bool) ([]News, error)
	CreateNews(ctx context.Context, n News) (*News, error)
	UpdateNews(ctx context.Context, n News) error
	DeleteNews(ctx context.Context, id int64) error
}
