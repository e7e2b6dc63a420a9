package service

import (
	"context"
	"testing"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (*OrderService, *fakeOrderStore, *fakeNotifier, *fakePublisher) {
	t.Helper()
	products := newFakeProductStore(
		&domain.Product{ID: 1, Name: "Mug", PriceCents: 1000, Stock: 10, IsActive: true},
	)
	orders := newFakeOrderStore(products)
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}
	svc := NewOrderService(orders, notifier, publisher, testLogger())
	return svc, orders, notifier, publisher
}

func placeTestOrder(t *testing.T, orders *fakeOrderStore, userID int64) *domain.Order {
	t.Helper()
	order, err := orders.CreateOrder(context.Background(), domain.CreateOrderParams{
		UserID: userID, AddressID: 1, CreditCardID: 1, TotalCents: 1180,
		Items: []domain.OrderItemParams{{ProductID: 1, Quantity: 1, PriceCents: 1000}},
	})
	require.NoError(t, err)
	return order
}

func TestOrderService_Get_OwnershipScoped(t *testing.T) {
	ctx := context.Background()
	svc, orders, _, _ := newOrderFixture(t)
	order := placeTestOrder(t, orders, 1)

	detail, err := svc.Get(ctx, 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, detail.Order.ID)

	// Another user's probe reads as not found, not forbidden.
	_, err = svc.Get(ctx, 2, order.ID)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderService_Acknowledge_FlipsOnce(t *testing.T) {
	ctx := context.Background()
	svc, orders, _, publisher := newOrderFixture(t)
	order := placeTestOrder(t, orders, 1)

	detail, err := svc.Acknowledge(ctx, 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderProcessing, detail.Order.Status)
	assert.Contains(t, publisher.events, "carsi.order.status_changed")

	// A second view does not touch the status.
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.OrderShipped))
	detail, err = svc.Acknowledge(ctx, 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderShipped, detail.Order.Status)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, orders, notifier, _ := newOrderFixture(t)
	order := placeTestOrder(t, orders, 1)

	require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.OrderProcessing))
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.OrderShipped))
	require.NoError(t, svc.UpdateStatus(ctx, order.ID, domain.OrderDelivered))
	assert.NotEmpty(t, notifier.messages)

	// Delivered is terminal.
	err := svc.UpdateStatus(ctx, order.ID, domain.OrderCancelled)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}

func TestOrderService_UpdateStatus_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	svc, orders, _, _ := newOrderFixture(t)
	order := placeTestOrder(t, orders, 1)

	err := svc.UpdateStatus(ctx, order.ID, domain.OrderStatus("refunded"))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestOrderService_UpdateStatus_NoSkipping(t *testing.T) {
	ctx := context.Background()
	svc, orders, _, _ := newOrderFixture(t)
	order := placeTestOrder(t, orders, 1)

	err := svc.UpdateStatus(ctx, order.ID, domain.OrderDelivered)
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))

	// Failed transition leaves the status untouched.
	detail, err := svc.Get(ctx, 1, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, detail.Order.Status)
}
