package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/session"
	"github.com/ketenci/carsi/internal/tax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCartFixture(products ...*domain.Product) (*CartService, *fakeProductStore, session.Store) {
	store := newFakeProductStore(products...)
	sessions := session.NewMemoryStore()
	svc := NewCartService(sessions, store, tax.NewPercentageCalculator(0.18), testLogger())
	return svc, store, sessions
}

func TestCartService_Add(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 5, IsActive: true},
	)

	count, err := svc.Add(ctx, "tok", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), count)

	// Adding again increments the existing line.
	count, err = svc.Add(ctx, "tok", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(3), count)
}

func TestCartService_Add_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 3, IsActive: true},
	)

	_, err := svc.Add(ctx, "tok", 1, 2)
	require.NoError(t, err)

	// 2 in cart + 2 requested > 3 in stock.
	_, err = svc.Add(ctx, "tok", 1, 2)
	require.Error(t, err)
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int32(4), stockErr.Requested)
	assert.Equal(t, int32(3), stockErr.Available)
}

func TestCartService_Add_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 5, IsActive: true},
		&domain.Product{ID: 2, Name: "Retired", PriceCents: 500, Stock: 5, IsActive: false},
	)

	_, err := svc.Add(ctx, "tok", 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Add(ctx, "tok", 99, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.Add(ctx, "tok", 2, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCartService_Update_Totals(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 10, IsActive: true},
		&domain.Product{ID: 2, Name: "Coaster", PriceCents: 500, Stock: 10, IsActive: true},
	)

	_, err := svc.Add(ctx, "tok", 1, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "tok", 2, 1)
	require.NoError(t, err)

	totals, err := svc.Update(ctx, "tok", 1, 2)
	require.NoError(t, err)

	// 2 x 10.00 + 1 x 5.00 = 25.00, 18% tax = 4.50, total 29.50
	assert.Equal(t, int64(2500), totals.SubtotalCents)
	assert.Equal(t, int64(450), totals.TaxCents)
	assert.Equal(t, int64(2950), totals.GrandTotalCents)
}

func TestCartService_Update_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 3, IsActive: true},
	)

	_, err := svc.Update(ctx, "tok", 1, 2)
	assert.ErrorIs(t, err, domain.ErrCartItemNotFound)

	_, err = svc.Add(ctx, "tok", 1, 1)
	require.NoError(t, err)

	_, err = svc.Update(ctx, "tok", 1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.Update(ctx, "tok", 1, 5)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, int32(3), stockErr.Available)
}

func TestCartService_Update_RetiredProduct(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 5, IsActive: true},
	)

	_, err := svc.Add(ctx, "tok", 1, 1)
	require.NoError(t, err)

	// The product retires while its line is still in the cart.
	inactive := false
	_, err = store.UpdateProduct(ctx, 1, domain.UpdateProductParams{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "tok", 1, 2)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCartService_Remove_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 5, IsActive: true},
	)

	_, err := svc.Add(ctx, "tok", 1, 1)
	require.NoError(t, err)

	removed, err := svc.Remove(ctx, "tok", 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Remove(ctx, "tok", 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCartService_View_ReconcilesAgainstCatalog(t *testing.T) {
	ctx := context.Background()
	svc, store, sessions := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 10, IsActive: true},
		&domain.Product{ID: 2, Name: "Coaster", PriceCents: 500, Stock: 10, IsActive: true},
		&domain.Product{ID: 3, Name: "Teapot", PriceCents: 3000, Stock: 10, IsActive: true},
	)

	_, err := svc.Add(ctx, "tok", 1, 5)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "tok", 2, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "tok", 3, 1)
	require.NoError(t, err)

	// Catalog moves under the cart: stock shrinks, a product retires,
	// a price drops.
	two := int32(2)
	inactive := false
	newPrice := int64(800)
	_, err = store.UpdateProduct(ctx, 1, domain.UpdateProductParams{Stock: &two, PriceCents: &newPrice})
	require.NoError(t, err)
	_, err = store.UpdateProduct(ctx, 3, domain.UpdateProductParams{IsActive: &inactive})
	require.NoError(t, err)

	view, err := svc.View(ctx, "tok")
	require.NoError(t, err)

	require.Len(t, view.Lines, 2)
	assert.Equal(t, int64(1), view.Lines[0].ProductID)
	assert.Equal(t, int32(2), view.Lines[0].Quantity, "quantity clamps to live stock")
	assert.Equal(t, int64(800), view.Lines[0].UnitPriceCents, "price refreshes to live value")

	// 2 x 8.00 + 1 x 5.00 = 21.00, tax 3.78
	assert.Equal(t, int64(2100), view.Totals.SubtotalCents)
	assert.Equal(t, int64(378), view.Totals.TaxCents)
	assert.Equal(t, int64(2478), view.Totals.GrandTotalCents)

	// The reconciled cart was written back to the session.
	sess, err := sessions.Get(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, sess.Cart.Lines, 2)
	assert.Equal(t, int32(2), sess.Cart.Lines[0].Quantity)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCartFixture(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 5, IsActive: true},
	)

	_, err := svc.Add(ctx, "tok", 1, 2)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "tok"))

	view, err := svc.View(ctx, "tok")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.Totals.GrandTotalCents)
}
