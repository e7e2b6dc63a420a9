package storefront

import (
	"net/http"
	"time"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
)

// ProductHandler serves the public catalog.
type ProductHandler struct {
	products domain.ProductStore
	reviews  domain.ReviewService
}

func NewProductHandler(products domain.ProductStore, reviews domain.ReviewService) *ProductHandler {
	return &ProductHandler{products: products, reviews: reviews}
}

type productResponse struct {
	ID                int64   `json:"id"`
	CategoryID        int64   `json:"category_id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	PriceCents        int64   `json:"price_cents"`
	CurrentPriceCents int64   `json:"current_price_cents"`
	DiscountPercent   float64 `json:"discount_percent"`
	Stock             int32   `json:"stock"`
	InStock           bool    `json:"in_stock"`
	Rating            float64 `json:"rating"`
	LikesCount        int32   `json:"likes_count"`
	ImageURL          string  `json:"image_url,omitempty"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:                p.ID,
		CategoryID:        p.CategoryID,
		Name:              p.Name,
		Description:       p.Description,
		PriceCents:        p.PriceCents,
		CurrentPriceCents: p.CurrentPriceCents(),
		DiscountPercent:   p.DiscountPercent,
		Stock:             p.Stock,
		InStock:           p.HasStock(),
		Rating:            p.Rating,
		LikesCount:        p.LikesCount,
		ImageURL:          p.ImageURL,
	}
}

// List handles GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		CategoryID:    handler.QueryInt64(r, "category_id", 0),
		Search:        r.URL.Query().Get("q"),
		MinPriceCents: handler.QueryInt64(r, "min_price_cents", 0),
		MaxPriceCents: handler.QueryInt64(r, "max_price_cents", 0),
		InStock:       r.URL.Query().Get("in_stock") == "true",
		Sort:          r.URL.Query().Get("sort"),
		Page:          handler.QueryInt(r, "page", 1),
		PerPage:       handler.QueryInt(r, "per_page", 24),
	}

	products, total, err := h.products.ListProducts(r.Context(), filter)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	items := make([]productResponse, 0, len(products))
	for i := range products {
		items = append(items, toProductResponse(&products[i]))
	}
	handler.JSON(w, http.StatusOK, map[string]any{
		"products": items,
		"total":    total,
		"page":     filter.Page,
		"per_page": filter.PerPage,
	})
}

// Get handles GET /products/{productID}, enriched with related products and
// recent reviews.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID, err := handler.URLParamInt64(r, "productID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	if !product.IsActive {
		handler.Error(w, r, domain.ErrProductNotFound)
		return
	}

	related, err := h.products.ListRelatedProducts(r.Context(), productID, 4)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	reviews, err := h.reviews.ListForProduct(r.Context(), productID, 10)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	relatedResp := make([]productResponse, 0, len(related))
	for i := range related {
		relatedResp = append(relatedResp, toProductResponse(&related[i]))
	}
	reviewsResp := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		reviewsResp = append(reviewsResp, toReviewResponse(&reviews[i]))
	}

	handler.JSON(w, http.StatusOK, map[string]any{
		"product": toProductResponse(product),
		"related": relatedResp,
		"reviews": reviewsResp,
	})
}

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}

// ListCategories handles GET /categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.ListCategories(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{
			ID: c.ID, Name: c.Name, Description: c.Description, Icon: c.Icon, Color: c.Color,
		})
	}
	handler.JSON(w, http.StatusOK, resp)
}

type reviewResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Rating    int32     `json:"rating"`
	Content   string    `json:"content,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toReviewResponse(rv *domain.Review) reviewResponse {
	return reviewResponse{
		ID:        rv.ID,
		Username:  rv.Username,
		Rating:    rv.Rating,
		Content:   rv.Content,
		UpdatedAt: rv.UpdatedAt,
	}
}
