package service

import (
	"context"
	"testing"
	"time"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReviewStore keys reviews by (user, product) the way the unique
// constraint does.
type fakeReviewStore struct {
	reviews map[[2]int64]*domain.Review
	nextID  int64
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: make(map[[2]int64]*domain.Review), nextID: 1}
}

func (s *fakeReviewStore) GetUserReview(ctx context.Context, userID, productID int64) (*domain.Review, error) {
	r, ok := s.reviews[[2]int64{userID, productID}]
	if !ok {
		return nil, domain.NotFound("fake.get_review", "review", "")
	}
	return r, nil
}

func (s *fakeReviewStore) ListProductReviews(ctx context.Context, productID int64, limit int) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *fakeReviewStore) UpsertReview(ctx context.Context, r domain.Review) (*domain.Review, error) {
	key := [2]int64{r.UserID, r.ProductID}
	if existing, ok := s.reviews[key]; ok {
		existing.Rating = r.Rating
		existing.Content = r.Content
		existing.UpdatedAt = time.Now()
		cp := *existing
		return &cp, nil
	}
	r.ID = s.nextID
	s.nextID++
	s.reviews[key] = &r
	return &r, nil
}

func TestReviewService_Submit(t *testing.T) {
	ctx := context.Background()
	products := newFakeProductStore(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 5, IsActive: true},
	)
	reviews := newFakeReviewStore()
	svc := NewReviewService(reviews, products, testLogger())

	review, err := svc.Submit(ctx, 1, 1, 4, "solid mug")
	require.NoError(t, err)
	assert.Equal(t, int32(4), review.Rating)

	// A second submission replaces the first instead of duplicating it.
	review, err = svc.Submit(ctx, 1, 1, 2, "cracked after a week")
	require.NoError(t, err)
	assert.Equal(t, int32(2), review.Rating)

	list, err := svc.ListForProduct(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReviewService_Submit_Validation(t *testing.T) {
	ctx := context.Background()
	products := newFakeProductStore(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 5, IsActive: true},
	)
	svc := NewReviewService(newFakeReviewStore(), products, testLogger())

	for _, rating := range []int32{0, -1, 6} {
		_, err := svc.Submit(ctx, 1, 1, rating, "")
		assert.ErrorIs(t, err, domain.ErrInvalidRating, "rating %d", rating)
	}

	_, err := svc.Submit(ctx, 1, 99, 3, "")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
