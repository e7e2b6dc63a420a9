package storefront

import (
	"net/http"
	"time"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/middleware"
)

// CheckoutHandler serves checkout and the post-purchase confirmation view.
type CheckoutHandler struct {
	checkout domain.CheckoutService
	orders   domain.OrderService
}

func NewCheckoutHandler(checkout domain.CheckoutService, orders domain.OrderService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, orders: orders}
}

type checkoutRequest struct {
	AddressID    int64 `json:"address_id" validate:"required,gt=0"`
	CreditCardID int64 `json:"credit_card_id" validate:"required,gt=0"`
}

type orderResponse struct {
	ID         int64     `json:"id"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type orderItemResponse struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int32 `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

type orderDetailResponse struct {
	orderResponse
	Items []orderItemResponse `json:"items"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:         o.ID,
		Status:     string(o.Status),
		TotalCents: o.TotalCents,
		CreatedAt:  o.CreatedAt,
	}
}

func toOrderDetailResponse(d *domain.OrderDetail) orderDetailResponse {
	resp := orderDetailResponse{orderResponse: toOrderResponse(&d.Order)}
	for _, it := range d.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			PriceCents: it.PriceCents,
		})
	}
	return resp
}

// PlaceOrder handles POST /checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	order, err := h.checkout.PlaceOrder(r.Context(), domain.PlaceOrderParams{
		UserID:       user.ID,
		SessionToken: middleware.GetSessionToken(r.Context()),
		AddressID:    req.AddressID,
		CreditCardID: req.CreditCardID,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, toOrderResponse(order))
}

// Confirmation handles GET /orders/{orderID}/confirmation. The first view by
// the buyer moves a pending order to processing.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	orderID, err := handler.URLParamInt64(r, "orderID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	detail, err := h.orders.Acknowledge(r.Context(), user.ID, orderID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, toOrderDetailResponse(detail))
}
