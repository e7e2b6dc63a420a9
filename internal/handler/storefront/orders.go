package storefront

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/middleware"
)

// OrderHandler serves the buyer's order history.
type OrderHandler struct {
	orders domain.OrderService
}

func NewOrderHandler(orders domain.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// List handles GET /orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	limit := handler.QueryInt(r, "limit", 0)

	orders, err := h.orders.ListForUser(r.Context(), user.ID, limit)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	handler.JSON(w, http.StatusOK, resp)
}

// Get handles GET /orders/{orderID}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := handler.URLParamInt64(r, "orderID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	detail, err := h.orders.Get(r.Context(), user.ID, orderID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, toOrderDetailResponse(detail))
}
