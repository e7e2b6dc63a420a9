package domain

import (
	"context"
	"math"
	"time"
)

// Product domain errors.
var (
	ErrProductNotFound  = &Error{Code: ENOTFOUND, Message: "Product not found"}
	ErrCategoryNotFound = &Error{Code: ENOTFOUND, Message: "Category not found"}
)

// LowStockThreshold is the stock level at or below which the admin
// notification feed gets a restock alert.
const LowStockThreshold = 5

// Product is a catalog item. Prices are stored in cents.
// DiscountPercent is 0-100; a NULL column value is loaded as 0.
type Product struct {
	ID              int64
	CategoryID      int64
	Name            string
	Description     string
	PriceCents      int64
	DiscountPercent float64
	Stock           int32
	Rating          float64
	ImageURL        string
	IsActive        bool
	LikesCount      int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CurrentPriceCents returns the discounted unit price, never negative.
func (p *Product) CurrentPriceCents() int64 {
	d := p.DiscountPercent
	if d <= 0 {
		return p.PriceCents
	}
	if d > 100 {
		d = 100
	}
	return int64(math.Round(float64(p.PriceCents) * (1 - d/100)))
}

// HasStock reports whether any units remain.
func (p *Product) HasStock() bool {
	return p.Stock > 0
}

// Category groups products for browsing.
type Category struct {
	ID          int64
	Name        string
	Description string
	Icon        string
	Color       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	CategoryID    int64
	Search        string
	MinPriceCents int64
	MaxPriceCents int64
	InStock       bool
	Sort          string // price_asc, price_desc, name_asc, name_desc, newest
	Page          int
	PerPage       int
}

// CreateProductParams holds fields for creating a product.
type CreateProductParams struct {
	CategoryID      int64
	Name            string
	Description     string
	PriceCents      int64
	DiscountPercent float64
	Stock           int32
	ImageURL        string
	IsActive        bool
}

// UpdateProductParams holds fields for updating a product.
// Nil pointers leave the existing value unchanged.
type UpdateProductParams struct {
	CategoryID      *int64
	Name            *string
	Description     *string
	PriceCents      *int64
	DiscountPercent *float64
	Stock           *int32
	ImageURL        *string
	IsActive        *bool
}

// ProductStore provides catalog persistence.
type ProductStore interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, int, error)
	ListRelatedProducts(ctx context.Context, productID int64, limit int) ([]Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	UpdateProductRating(ctx context.Context, productID int64) error

	GetCategory(ctx context.Context, id int64) (*Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) (*Category, error)
	UpdateCategory(ctx context.Context, c Category) error
	DeleteCategory(ctx context.Context, id int64) error
}
