package domain

import (
	"context"
	"time"
)

// ErrInvalidRating rejects ratings outside 1-5.
var ErrInvalidRating = &Error{Code: EINVALID, Message: "Rating must be between 1 and 5"}

// Review is a user's rating and comment on a product. One review per user
// per product; a second submission updates the first.
type Review struct {
	ID        int64
	UserID    int64
	Username  string
	ProductID int64
	Rating    int32
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewStore provides review persistence.
type ReviewStore interface {
	GetUserReview(ctx context.Context, userID, productID int64) (*Review, error)
	ListProductReviews(ctx context.Context, productID int64, limit int) ([]Review, error)
	UpsertReview(ctx context.Context, r Review) (*Review, error)
}

// ReviewService validates and records reviews, keeping the product's average
// rating current.
type ReviewService interface {
	Submit(ctx context.Context, userID, productID int64, rating int32, content string) (*Review, error)
	ListForProduct(ctx context.Context, productID int64, limit int) ([]Review, error)
}
