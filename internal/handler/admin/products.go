package admin

import (
	"fmt"
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
)

// ProductHandler serves catalog management.
type ProductHandler struct {
	products domain.ProductStore
	notifier domain.Notifier
}

func NewProductHandler(products domain.ProductStore, notifier domain.Notifier) *ProductHandler {
	return &ProductHandler{products: products, notifier: notifier}
}

type createProductRequest struct {
	CategoryID      int64   `json:"category_id" validate:"required,gt=0"`
	Name            string  `json:"name" validate:"required,max=200"`
	Description     string  `json:"description" validate:"max=5000"`
	PriceCents      int64   `json:"price_cents" validate:"required,gt=0"`
	DiscountPercent float64 `json:"discount_percent" validate:"min=0,max=100"`
	Stock           int32   `json:"stock" validate:"min=0"`
	ImageURL        string  `json:"image_url" validate:"omitempty,url"`
	IsActive        bool    `json:"is_active"`
}

// Create handles POST /admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	product, err := h.products.CreateProduct(r.Context(), domain.CreateProductParams{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	h.notifier.Notify(r.Context(),
		"New product added: "+product.Name,
		"/admin/products", "package", "blue")

	handler.JSON(w, http.StatusCreated, product)
}

type updateProductRequest struct {
	CategoryID      *int64   `json:"category_id" validate:"omitempty,gt=0"`
	Name            *string  `json:"name" validate:"omitempty,max=200"`
	Description     *string  `json:"description" validate:"omitempty,max=5000"`
	PriceCents      *int64   `json:"price_cents" validate:"omitempty,gt=0"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,min=0,max=100"`
	Stock           *int32   `json:"stock" validate:"omitempty,min=0"`
	ImageURL        *string  `json:"image_url" validate:"omitempty,url"`
	IsActive        *bool    `json:"is_active"`
}

// Update handles PUT /admin/products/{productID}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	productID, err := handler.URLParamInt64(r, "productID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	var req updateProductRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	before, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	product, err := h.products.UpdateProduct(r.Context(), productID, domain.UpdateProductParams{
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DiscountPercent: req.DiscountPercent,
		Stock:           req.Stock,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	// Alert once, on the edit that crosses the threshold.
	if req.Stock != nil && before.Stock > domain.LowStockThreshold && product.Stock <= domain.LowStockThreshold {
		h.notifier.Notify(r.Context(),
			fmt.Sprintf("Low stock: %s has %d units left", product.Name, product.Stock),
			fmt.Sprintf("/admin/products/%d", product.ID),
			"alert-triangle", "orange")
	}

	handler.JSON(w, http.StatusOK, product)
}

// Delete handles DELETE /admin/products/{productID}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	productID, err := handler.URLParamInt64(r, "productID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	if err := h.products.DeleteProduct(r.Context(), productID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"max=50"`
	Color       string `json:"color" validate:"max=20"`
	IsActive    bool   `json:"is_active"`
}

// CreateCategory handles POST /admin/categories
func (h *ProductHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	category, err := h.products.CreateCategory(r.Context(), domain.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PUT /admin/categories/{categoryID}
func (h *ProductHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handler.URLParamInt64(r, "categoryID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	var req categoryRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	err = h.products.UpdateCategory(r.Context(), domain.Category{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    req.IsActive,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"updated": true})
}

// DeleteCategory handles DELETE /admin/categories/{categoryID}
func (h *ProductHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handler.URLParamInt64(r, "categoryID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	if err := h.products.DeleteCategory(r.Context(), categoryID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
