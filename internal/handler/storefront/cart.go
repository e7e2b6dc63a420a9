// Package storefront exposes the buyer-facing HTTP API.
package storefront

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/middleware"
)

// CartHandler serves the session cart endpoints.
type CartHandler struct {
	cart domain.CartService
}

func NewCartHandler(cart domain.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type cartLineResponse struct {
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
	ImageURL       string `json:"image_url,omitempty"`
	Stock          int32  `json:"stock"`
}

type cartTotalsResponse struct {
	SubtotalCents   int64 `json:"subtotal_cents"`
	TaxCents        int64 `json:"tax_cents"`
	GrandTotalCents int64 `json:"grand_total_cents"`
}

type cartResponse struct {
	Lines     []cartLineResponse `json:"lines"`
	ItemCount int32              `json:"item_count"`
	Totals    cartTotalsResponse `json:"totals"`
}

func toCartResponse(view *domain.CartView) cartResponse {
	resp := cartResponse{
		Lines: make([]cartLineResponse, 0, len(view.Lines)),
		Totals: cartTotalsResponse{
			SubtotalCents:   view.Totals.SubtotalCents,
			TaxCents:        view.Totals.TaxCents,
			GrandTotalCents: view.Totals.GrandTotalCents,
		},
	}
	for _, l := range view.Lines {
		resp.ItemCount += l.Quantity
		resp.Lines = append(resp.Lines, cartLineResponse{
			ProductID:      l.ProductID,
			Name:           l.Name,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
			LineTotalCents: int64(l.Quantity) * l.UnitPriceCents,
			ImageURL:       l.ImageURL,
			Stock:          l.Stock,
		})
	}
	return resp
}

// View handles GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())
	view, err := h.cart.View(r.Context(), token)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, toCartResponse(view))
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int32 `json:"quantity" validate:"required,gt=0"`
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	token := middleware.GetSessionToken(r.Context())
	count, err := h.cart.Add(r.Context(), token, req.ProductID, req.Quantity)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"item_count": count})
}

type updateItemRequest struct {
	Quantity int32 `json:"quantity" validate:"required,gt=0"`
}

// UpdateItem handles PUT /cart/items/{productID}
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := handler.URLParamInt64(r, "productID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	var req updateItemRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	token := middleware.GetSessionToken(r.Context())
	totals, err := h.cart.Update(r.Context(), token, productID, req.Quantity)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, cartTotalsResponse{
		SubtotalCents:   totals.SubtotalCents,
		TaxCents:        totals.TaxCents,
		GrandTotalCents: totals.GrandTotalCents,
	})
}

// RemoveItem handles DELETE /cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := handler.URLParamInt64(r, "productID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	token := middleware.GetSessionToken(r.Context())
	removed, err := h.cart.Remove(r.Context(), token, productID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"removed": removed})
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetSessionToken(r.Context())
	if err := h.cart.Clear(r.Context(), token); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"cleared": true})
}
