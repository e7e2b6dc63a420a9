package admin

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
)

// OrderHandler serves back-office order management.
type OrderHandler struct {
	store   domain.OrderStore
	service domain.OrderService
}

func NewOrderHandler(store domain.OrderStore, service domain.OrderService) *OrderHandler {
	return &OrderHandler{store: store, service: service}
}

// List handles GET /admin/orders
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.ListOrders(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, orders)
}

// Get handles GET /admin/orders/{orderID}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := handler.URLParamInt64(r, "orderID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	detail, err := h.store.GetOrder(r.Context(), orderID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, detail)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles PUT /admin/orders/{orderID}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := handler.URLParamInt64(r, "orderID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	var req updateStatusRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status)); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"status": req.Status})
}
