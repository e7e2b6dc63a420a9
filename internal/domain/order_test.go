package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderPending, OrderProcessing, true},
		{OrderPending, OrderCancelled, true},
		{OrderProcessing, OrderShipped, true},
		{OrderProcessing, OrderCancelled, true},
		{OrderShipped, OrderDelivered, true},

		// Forward-only: no skipping or moving backwards.
		{OrderPending, OrderShipped, false},
		{OrderPending, OrderDelivered, false},
		{OrderShipped, OrderCancelled, false},
		{OrderShipped, OrderProcessing, false},
		{OrderDelivered, OrderCancelled, false},
		{OrderDelivered, OrderPending, false},
		{OrderCancelled, OrderPending, false},
		{OrderCancelled, OrderProcessing, false},
		{OrderProcessing, OrderProcessing, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if OrderStatus("refunded").Valid() {
		t.Error("unknown status should not be valid")
	}
}

func TestProduct_CurrentPriceCents(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount float64
		expected int64
	}{
		{"no discount", 1000, 0, 1000},
		{"ten percent", 1000, 10, 900},
		{"rounding", 999, 15, 849}, // 999 * 0.85 = 849.15
		{"full discount", 1000, 100, 0},
		{"discount above 100 clamps to zero", 1000, 150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{PriceCents: tt.price, DiscountPercent: tt.discount}
			if got := p.CurrentPriceCents(); got != tt.expected {
				t.Errorf("CurrentPriceCents() = %d, want %d", got, tt.expected)
			}
		})
	}
}
