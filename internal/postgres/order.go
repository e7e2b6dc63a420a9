package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ketenci/carsi/internal/domain"
)

// OrderStore implements domain.OrderStore.
type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

const orderColumns = `id, user_id, address_id, credit_card_id, total_cents, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.UserID, &o.AddressID, &o.CreditCardID,
		&o.TotalCents, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts the order and its items and decrements stock, all in one
// transaction. The stock decrement is conditional on enough units remaining,
// so two concurrent checkouts for the last unit cannot both succeed: the
// second one's UPDATE matches zero rows and the whole transaction rolls back.
func (s *OrderStore) CreateOrder(ctx context.Context, params domain.CreateOrderParams) (*domain.Order, error) {
	const op = "postgres.create_order"

	var order *domain.Order
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO orders (user_id, address_id, credit_card_id, total_cents, status)
			VALUES ($1, $2, $3, $4, 'pending')
			RETURNING `+orderColumns,
			params.UserID, params.AddressID, params.CreditCardID, params.TotalCents)
		o, err := scanOrder(row)
		if err != nil {
			return domain.Internal(err, op, "failed to insert order")
		}

		for _, item := range params.Items {
			tag, err := tx.Exec(ctx, `
				UPDATE products SET stock = stock - $2, updated_at = now()
				WHERE id = $1 AND stock >= $2`,
				item.ProductID, item.Quantity)
			if err != nil {
				return domain.Internal(err, op, "failed to decrement stock")
			}
			if tag.RowsAffected() == 0 {
				var name string
				var available int32
				err := tx.QueryRow(ctx,
					`SELECT name, stock FROM products WHERE id = $1`, item.ProductID).
					Scan(&name, &available)
				if errors.Is(err, pgx.ErrNoRows) {
					return domain.ErrProductNotFound
				}
				if err != nil {
					return domain.Internal(err, op, "failed to load product")
				}
				return domain.StockError(op, item.ProductID, name, item.Quantity, available)
			}

			_, err = tx.Exec(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, price_cents)
				VALUES ($1, $2, $3, $4)`,
				o.ID, item.ProductID, item.Quantity, item.PriceCents)
			if err != nil {
				return domain.Internal(err, op, "failed to insert order item")
			}
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_order", "failed to load order")
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, order_id, product_id, quantity, price_cents, created_at
		FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_order", "failed to load order items")
	}
	defer rows.Close()

	detail := &domain.OrderDetail{Order: *o}
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.PriceCents, &it.CreatedAt); err != nil {
			return nil, domain.Internal(err, "postgres.get_order", "failed to scan order item")
		}
		detail.Items = append(detail.Items, it)
	}
	return detail, rows.Err()
}

func (s *OrderStore) ListOrdersForUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_orders", "failed to list orders")
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (s *OrderStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_orders", "failed to list orders")
	}
	defer rows.Close()
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.list_orders", "failed to scan order")
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return domain.Internal(err, "postgres.update_order_status", "failed to update order status")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// AcknowledgeOrder flips a pending order to processing. The WHERE clause makes
// the flip one-shot under concurrent confirmation views.
func (s *OrderStore) AcknowledgeOrder(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders SET status = 'processing', updated_at = now()
		WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, domain.Internal(err, "postgres.acknowledge_order", "failed to acknowledge order")
	}
	return tag.RowsAffected() > 0, nil
}
