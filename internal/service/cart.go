// Package service implements the business logic behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/session"
	"github.com/ketenci/carsi/internal/tax"
)

// CartService implements domain.CartService on top of the session store.
// The cart never touches durable storage; products are consulted for live
// price and stock on every operation.
type CartService struct {
	sessions session.Store
	products domain.ProductStore
	tax      tax.Calculator
	logger   *slog.Logger
}

func NewCartService(sessions session.Store, products domain.ProductStore, calc tax.Calculator, logger *slog.Logger) *CartService {
	return &CartService{sessions: sessions, products: products, tax: calc, logger: logger}
}

func (s *CartService) Add(ctx context.Context, token string, productID int64, quantity int32) (int32, error) {
	const op = "cart.add"

	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !product.IsActive {
		return 0, domain.ErrProductNotFound
	}

	sess, err := session.GetOrCreate(ctx, s.sessions, token)
	if err != nil {
		return 0, domain.Internal(err, op, "failed to load session")
	}

	want := quantity
	if line := sess.Cart.Line(productID); line != nil {
		want += line.Quantity
	}
	if want > product.Stock {
		return 0, domain.StockError(op, productID, product.Name, want, product.Stock)
	}

	if line := sess.Cart.Line(productID); line != nil {
		line.Quantity = want
		line.UnitPriceCents = product.CurrentPriceCents()
	} else {
		sess.Cart.Lines = append(sess.Cart.Lines, domain.CartLine{
			ProductID:      productID,
			Name:           product.Name,
			Quantity:       quantity,
			UnitPriceCents: product.CurrentPriceCents(),
			ImageURL:       product.ImageURL,
		})
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return 0, domain.Internal(err, op, "failed to save cart")
	}
	return sess.Cart.ItemCount(), nil
}

func (s *CartService) Update(ctx context.Context, token string, productID int64, quantity int32) (*domain.CartTotals, error) {
	const op = "cart.update"

	if quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	sess, err := session.GetOrCreate(ctx, s.sessions, token)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load session")
	}

	line := sess.Cart.Line(productID)
	if line == nil {
		return nil, domain.ErrCartItemNotFound
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.ErrProductNotFound
	}
	if quantity > product.Stock {
		return nil, domain.StockError(op, productID, product.Name, quantity, product.Stock)
	}

	line.Quantity = quantity
	line.UnitPriceCents = product.CurrentPriceCents()

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, domain.Internal(err, op, "failed to save cart")
	}

	view, err := s.reconcile(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &view.Totals, nil
}

func (s *CartService) Remove(ctx context.Context, token string, productID int64) (bool, error) {
	const op = "cart.remove"

	sess, err := session.GetOrCreate(ctx, s.sessions, token)
	if err != nil {
		return false, domain.Internal(err, op, "failed to load session")
	}

	removed := sess.Cart.RemoveLine(productID)
	if !removed {
		return false, nil
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return false, domain.Internal(err, op, "failed to save cart")
	}
	return true, nil
}

func (s *CartService) Clear(ctx context.Context, token string) error {
	const op = "cart.clear"

	sess, err := session.GetOrCreate(ctx, s.sessions, token)
	if err != nil {
		return domain.Internal(err, op, "failed to load session")
	}
	sess.Cart = &domain.Cart{}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.Internal(err, op, "failed to save cart")
	}
	return nil
}

func (s *CartService) View(ctx context.Context, token string) (*domain.CartView, error) {
	const op = "cart.view"

	sess, err := session.GetOrCreate(ctx, s.sessions, token)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to load session")
	}
	return s.reconcile(ctx, sess)
}

// reconcile rebuilds the cart against the live catalog: dead or inactive
// products are dropped, quantities are clamped to current stock, and unit
// prices are refreshed. Any mutation is persisted back to the session before
// returning, so the stored cart never drifts further than one read behind
// the catalog.
func (s *CartService) reconcile(ctx context.Context, sess *session.Session) (*domain.CartView, error) {
	const op = "cart.reconcile"

	view := &domain.CartView{}
	kept := sess.Cart.Lines[:0]
	mutated := false

	for _, line := range sess.Cart.Lines {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if errors.Is(err, domain.ErrProductNotFound) {
			mutated = true
			continue
		}
		if err != nil {
			return nil, err
		}
		if !product.IsActive || product.Stock <= 0 {
			mutated = true
			continue
		}

		if line.Quantity > product.Stock {
			line.Quantity = product.Stock
			mutated = true
		}
		if live := product.CurrentPriceCents(); line.UnitPriceCents != live {
			line.UnitPriceCents = live
			mutated = true
		}
		line.Name = product.Name
		line.ImageURL = product.ImageURL

		kept = append(kept, line)
		view.Lines = append(view.Lines, domain.CartViewLine{
			CartLine:       line,
			LivePriceCents: product.CurrentPriceCents(),
			Stock:          product.Stock,
		})
		view.Totals.SubtotalCents += int64(line.Quantity) * line.UnitPriceCents
	}
	sess.Cart.Lines = kept

	view.Totals.TaxCents = s.tax.Calculate(view.Totals.SubtotalCents)
	view.Totals.GrandTotalCents = view.Totals.SubtotalCents + view.Totals.TaxCents

	if mutated {
		if err := s.sessions.Save(ctx, sess); err != nil {
			return nil, domain.Internal(err, op, "failed to save reconciled cart")
		}
		s.logger.Debug("cart reconciled against catalog",
			slog.String("token", sess.Token),
			slog.Int("lines", len(sess.Cart.Lines)))
	}
	return view, nil
}
