package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/events"
)

// CheckoutService implements domain.CheckoutService.
type CheckoutService struct {
	cart      domain.CartService
	orders    domain.OrderStore
	addresses domain.AddressStore
	cards     domain.CardStore
	notifier  domain.Notifier
	publisher events.Publisher
	logger    *slog.Logger
}

func NewCheckoutService(
	cart domain.CartService,
	orders domain.OrderStore,
	addresses domain.AddressStore,
	cards domain.CardStore,
	notifier domain.Notifier,
	publisher events.Publisher,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		orders:    orders,
		addresses: addresses,
		cards:     cards,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
	}
}

// PlaceOrder converts the session cart into a persisted order. The cart view
// is only advisory: the order store re-checks stock at commit time, so a cart
// that went stale between view and submit fails cleanly with a stock conflict
// and no partial state.
func (s *CheckoutService) PlaceOrder(ctx context.Context, params domain.PlaceOrderParams) (*domain.Order, error) {
	const op = "checkout.place_order"

	view, err := s.cart.View(ctx, params.SessionToken)
	if err != nil {
		return nil, err
	}
	if len(view.Lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	addr, err := s.addresses.GetAddress(ctx, params.AddressID)
	if err != nil || addr.UserID != params.UserID {
		return nil, domain.ErrInvalidAddress
	}
	card, err := s.cards.GetCard(ctx, params.CreditCardID)
	if err != nil || card.UserID != params.UserID {
		return nil, domain.ErrInvalidCard
	}

	var itemCount int32
	create := domain.CreateOrderParams{
		UserID:       params.UserID,
		AddressID:    params.AddressID,
		CreditCardID: params.CreditCardID,
		TotalCents:   view.Totals.GrandTotalCents,
	}
	for _, line := range view.Lines {
		itemCount += line.Quantity
		create.Items = append(create.Items, domain.OrderItemParams{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			PriceCents: line.UnitPriceCents,
		})
	}

	order, err := s.orders.CreateOrder(ctx, create)
	if err != nil {
		return nil, err
	}

	if err := s.cart.Clear(ctx, params.SessionToken); err != nil {
		// The order is committed; a stale cart is an annoyance, not a failure.
		s.logger.Error("failed to clear cart after checkout",
			slog.Int64("order_id", order.ID), slog.Any("error", err))
	}

	s.notifier.Notify(ctx,
		fmt.Sprintf("New order #%d for %s", order.ID, formatCents(order.TotalCents)),
		fmt.Sprintf("/admin/orders/%d", order.ID),
		"shopping-cart", "green")

	for _, line := range view.Lines {
		remaining := line.Stock - line.Quantity
		if remaining <= domain.LowStockThreshold {
			s.notifier.Notify(ctx,
				fmt.Sprintf("Low stock: %s has %d units left", line.Name, remaining),
				fmt.Sprintf("/admin/products/%d", line.ProductID),
				"alert-triangle", "orange")
		}
	}

	if err := s.publisher.Publish(ctx, events.SubjectOrderCreated, events.OrderCreated{
		OrderID:    order.ID,
		UserID:     order.UserID,
		TotalCents: order.TotalCents,
		ItemCount:  itemCount,
		CreatedAt:  order.CreatedAt,
	}); err != nil {
		s.logger.Error("failed to publish order event",
			slog.Int64("order_id", order.ID), slog.Any("error", err))
	}

	s.logger.Info("order placed",
		slog.Int64("order_id", order.ID),
		slog.Int64("user_id", order.UserID),
		slog.Int64("total_cents", order.TotalCents),
		slog.Int("lines", len(view.Lines)))

	return order, nil
}

// formatCents renders a cent amount as a decimal string, e.g. 2950 -> "29.50".
func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
