package storefront

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/middleware"
)

// ReviewHandler serves product reviews.
type ReviewHandler struct {
	reviews domain.ReviewService
}

func NewReviewHandler(reviews domain.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

type submitReviewRequest struct {
	Rating  int32  `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"max=2000"`
}

// Submit handles POST /products/{productID}/reviews
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	productID, err := handler.URLParamInt64(r, "productID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	var req submitReviewRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	review, err := h.reviews.Submit(r.Context(), user.ID, productID, req.Rating, req.Content)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, toReviewResponse(review))
}

// List handles GET /products/{productID}/reviews
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	productID, err := handler.URLParamInt64(r, "productID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	reviews, err := h.reviews.ListForProduct(r.Context(), productID, handler.QueryInt(r, "limit", 0))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	resp := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, toReviewResponse(&reviews[i]))
	}
	handler.JSON(w, http.StatusOK, resp)
}
