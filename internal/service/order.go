package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/events"
)

// OrderService implements domain.OrderService.
type OrderService struct {
	orders    domain.OrderStore
	notifier  domain.Notifier
	publisher events.Publisher
	logger    *slog.Logger
}

func NewOrderService(orders domain.OrderStore, notifier domain.Notifier, publisher events.Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, notifier: notifier, publisher: publisher, logger: logger}
}

// Get returns the order only to its owner. A foreign order is reported as
// not found rather than forbidden so order ids cannot be probed.
func (s *OrderService) Get(ctx context.Context, userID, orderID int64) (*domain.OrderDetail, error) {
	detail, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if detail.Order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return detail, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error) {
	return s.orders.ListOrdersForUser(ctx, userID, limit)
}

// Acknowledge moves a pending order to processing the first time its buyer
// views the confirmation page. Subsequent views leave the status alone.
func (s *OrderService) Acknowledge(ctx context.Context, userID, orderID int64) (*domain.OrderDetail, error) {
	detail, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	flipped, err := s.orders.AcknowledgeOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if flipped {
		s.publishStatusChange(ctx, orderID, domain.OrderPending, domain.OrderProcessing)
		return s.orders.GetOrder(ctx, orderID)
	}
	return detail, nil
}

// UpdateStatus performs an administrative transition validated against the
// lifecycle table.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	const op = "order.update_status"

	if !status.Valid() {
		return domain.ErrInvalidStatus
	}

	detail, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	from := detail.Order.Status
	if !domain.CanTransition(from, status) {
		return domain.Errorf(domain.EINVALID, op,
			"Cannot move order from %s to %s", from, status)
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}

	s.notifier.Notify(ctx,
		fmt.Sprintf("Order #%d is now %s", orderID, status),
		fmt.Sprintf("/admin/orders/%d", orderID),
		"truck", "blue")
	s.publishStatusChange(ctx, orderID, from, status)

	return nil
}

func (s *OrderService) publishStatusChange(ctx context.Context, orderID int64, from, to domain.OrderStatus) {
	err := s.publisher.Publish(ctx, events.SubjectOrderStatusChanged, events.OrderStatusChanged{
		OrderID:   orderID,
		From:      string(from),
		To:        string(to),
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to publish status event",
			slog.Int64("order_id", orderID), slog.Any("error", err))
	}
}
