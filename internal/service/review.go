package service

import (
	"context"
	"log/slog"

	"github.com/ketenci/carsi/internal/domain"
)

// ReviewService implements domain.ReviewService.
type ReviewService struct {
	reviews  domain.ReviewStore
	products domain.ProductStore
	logger   *slog.Logger
}

func NewReviewService(reviews domain.ReviewStore, products domain.ProductStore, logger *slog.Logger) *ReviewService {
	return &ReviewService{reviews: reviews, products: products, logger: logger}
}

// Submit records a review and refreshes the product's average rating. A user
// reviewing the same product twice replaces their earlier review.
func (s *ReviewService) Submit(ctx context.Context, userID, productID int64, rating int32, content string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	review, err := s.reviews.UpsertReview(ctx, domain.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Content:   content,
	})
	if err != nil {
		return nil, err
	}

	if err := s.products.UpdateProductRating(ctx, productID); err != nil {
		// The review is saved; the aggregate catches up on the next submit.
		s.logger.Error("failed to refresh product rating",
			slog.Int64("product_id", productID), slog.Any("error", err))
	}
	return review, nil
}

func (s *ReviewService) ListForProduct(ctx context.Context, productID int64, limit int) ([]domain.Review, error) {
	return s.reviews.ListProductReviews(ctx, productID, limit)
}
