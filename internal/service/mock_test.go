package service

import (
	"context"
	"sync"
	"time"

	"github.com/ketenci/carsi/internal/domain"
)

// fakeProductStore is an in-memory domain.ProductStore for service tests.
type fakeProductStore struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	nextID   int64
}

func newFakeProductStore(products ...*domain.Product) *fakeProductStore {
	s := &fakeProductStore{products: make(map[int64]*domain.Product), nextID: 1}
	for _, p := range products {
		if p.ID == 0 {
			p.ID = s.nextID
		}
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (s *fakeProductStore) ListRelatedProducts(ctx context.Context, productID int64, limit int) ([]domain.Product, error) {
	return nil, nil
}

func (s *fakeProductStore) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &domain.Product{
		ID:              s.nextID,
		CategoryID:      params.CategoryID,
		Name:            params.Name,
		Description:     params.Description,
		PriceCents:      params.PriceCents,
		DiscountPercent: params.DiscountPercent,
		Stock:           params.Stock,
		ImageURL:        params.ImageURL,
		IsActive:        params.IsActive,
	}
	s.nextID++
	s.products[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) UpdateProduct(ctx context.Context, id int64, params domain.UpdateProductParams) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if params.Stock != nil {
		p.Stock = *params.Stock
	}
	if params.PriceCents != nil {
		p.PriceCents = *params.PriceCents
	}
	if params.IsActive != nil {
		p.IsActive = *params.IsActive
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProductStore) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.IsActive = false
	return nil
}

func (s *fakeProductStore) UpdateProductRating(ctx context.Context, productID int64) error {
	return nil
}

func (s *fakeProductStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return nil, domain.ErrCategoryNotFound
}
func (s *fakeProductStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return nil, nil
}
func (s *fakeProductStore) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}
func (s *fakeProductStore) UpdateCategory(ctx context.Context, c domain.Category) error { return nil }
func (s *fakeProductStore) DeleteCategory(ctx context.Context, id int64) error          { return nil }

// fakeOrderStore implements domain.OrderStore against fakeProductStore's
// stock, mirroring the conditional decrement the real store performs.
type fakeOrderStore struct {
	mu       sync.Mutex
	products *fakeProductStore
	orders   map[int64]*domain.OrderDetail
	nextID   int64
}

func newFakeOrderStore(products *fakeProductStore) *fakeOrderStore {
	return &fakeOrderStore{products: products, orders: make(map[int64]*domain.OrderDetail), nextID: 1}
}

func (s *fakeOrderStore) CreateOrder(ctx context.Context, params domain.CreateOrderParams) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products.mu.Lock()
	defer s.products.mu.Unlock()

	for _, item := range params.Items {
		p, ok := s.products.products[item.ProductID]
		if !ok {
			return nil, domain.ErrProductNotFound
		}
		if p.Stock < item.Quantity {
			return nil, domain.StockError("fake.create_order", p.ID, p.Name, item.Quantity, p.Stock)
		}
	}
	for _, item := range params.Items {
		s.products.products[item.ProductID].Stock -= item.Quantity
	}

	order := domain.Order{
		ID:           s.nextID,
		UserID:       params.UserID,
		AddressID:    params.AddressID,
		CreditCardID: params.CreditCardID,
		TotalCents:   params.TotalCents,
		Status:       domain.OrderPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	s.nextID++

	detail := &domain.OrderDetail{Order: order}
	for _, item := range params.Items {
		detail.Items = append(detail.Items, domain.OrderItem{
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}
	s.orders[order.ID] = detail

	cp := order
	return &cp, nil
}

func (s *fakeOrderStore) GetOrder(ctx context.Context, id int64) (*domain.OrderDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *fakeOrderStore) ListOrdersForUser(ctx context.Context, userID int64, limit int) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, d := range s.orders {
		if d.Order.UserID == userID {
			out = append(out, d.Order)
		}
	}
	return out, nil
}

func (s *fakeOrderStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Order
	for _, d := range s.orders {
		out = append(out, d.Order)
	}
	return out, nil
}

func (s *fakeOrderStore) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	d.Order.Status = status
	return nil
}

func (s *fakeOrderStore) AcknowledgeOrder(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.orders[id]
	if !ok {
		return false, domain.ErrOrderNotFound
	}
	if d.Order.Status != domain.OrderPending {
		return false, nil
	}
	d.Order.Status = domain.OrderProcessing
	return true, nil
}

// fakeAddressStore holds addresses keyed by id.
type fakeAddressStore struct {
	addresses map[int64]*domain.Address
}

func newFakeAddressStore(addresses ...*domain.Address) *fakeAddressStore {
	s := &fakeAddressStore{addresses: make(map[int64]*domain.Address)}
	for _, a := range addresses {
		s.addresses[a.ID] = a
	}
	return s
}

func (s *fakeAddressStore) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	a, ok := s.addresses[id]
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	return a, nil
}

func (s *fakeAddressStore) ListAddressesForUser(ctx context.Context, userID int64) ([]domain.Address, error) {
	var out []domain.Address
	for _, a := range s.addresses {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *fakeAddressStore) CreateAddress(ctx context.Context, a domain.Address) (*domain.Address, error) {
	if a.IsDefault {
		for _, other := range s.addresses {
			if other.UserID == a.UserID {
				other.IsDefault = false
			}
		}
	}
	a.ID = int64(len(s.addresses) + 1)
	s.addresses[a.ID] = &a
	return &a, nil
}

func (s *fakeAddressStore) DeleteAddress(ctx context.Context, id int64) error {
	if _, ok := s.addresses[id]; !ok {
		return domain.ErrAddressNotFound
	}
	delete(s.addresses, id)
	return nil
}

func (s *fakeAddressStore) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	target, ok := s.addresses[addressID]
	if !ok || target.UserID != userID {
		return domain.ErrAddressNotFound
	}
	for _, a := range s.addresses {
		if a.UserID == userID {
			a.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

// fakeCardStore holds cards keyed by id.
type fakeCardStore struct {
	cards map[int64]*domain.CreditCard
}

func newFakeCardStore(cards ...*domain.CreditCard) *fakeCardStore {
	s := &fakeCardStore{cards: make(map[int64]*domain.CreditCard)}
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	return s
}

func (s *fakeCardStore) GetCard(ctx context.Context, id int64) (*domain.CreditCard, error) {
	c, ok := s.cards[id]
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return c, nil
}

func (s *fakeCardStore) ListCardsForUser(ctx context.Context, userID int64) ([]domain.CreditCard, error) {
	var out []domain.CreditCard
	for _, c := range s.cards {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCardStore) CreateCard(ctx context.Context, c domain.CreditCard) (*domain.CreditCard, error) {
	if c.IsDefault {
		for _, other := range s.cards {
			if other.UserID == c.UserID {
				other.IsDefault = false
			}
		}
	}
	c.ID = int64(len(s.cards) + 1)
	s.cards[c.ID] = &c
	return &c, nil
}

func (s *fakeCardStore) DeleteCard(ctx context.Context, id int64) error {
	if _, ok := s.cards[id]; !ok {
		return domain.ErrCardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *fakeCardStore) SetDefaultCard(ctx context.Context, userID, cardID int64) error {
	target, ok := s.cards[cardID]
	if !ok || target.UserID != userID {
		return domain.ErrCardNotFound
	}
	for _, c := range s.cards {
		if c.UserID == userID {
			c.IsDefault = false
		}
	}
	target.IsDefault = true
	return nil
}

// fakeNotifier records notifications for assertions.
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *fakeNotifier) Notify(ctx context.Context, message, link, icon, iconColor string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

// fakePublisher records published events.
type fakePublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *fakePublisher) Publish(ctx context.Context, subject string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, subject)
	return nil
}

func (p *fakePublisher) Close() {}
