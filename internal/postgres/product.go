package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ketenci/carsi/internal/domain"
)

// ProductStore implements domain.ProductStore.
type ProductStore struct {
	pool *pgxpool.Pool
}

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, category_id, name, description, price_cents, discount_percent,
	stock, rating, image_url, is_active, likes_count, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.PriceCents,
		&p.DiscountPercent, &p.Stock, &p.Rating, &p.ImageURL, &p.IsActive,
		&p.LikesCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_product", "failed to load product")
	}
	return p, nil
}

func (s *ProductStore) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	var (
		conds = []string{"is_active = TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID > 0 {
		conds = append(conds, "category_id = "+arg(filter.CategoryID))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(name ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if filter.MinPriceCents > 0 {
		conds = append(conds, "price_cents >= "+arg(filter.MinPriceCents))
	}
	if filter.MaxPriceCents > 0 {
		conds = append(conds, "price_cents <= "+arg(filter.MaxPriceCents))
	}
	if filter.InStock {
		conds = append(conds, "stock > 0")
	}
	where := "WHERE " + strings.Join(conds, " AND ")

	var total int
	err := s.pool.QueryRow(ctx, "SELECT count(*) FROM products "+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, domain.Internal(err, "postgres.list_products", "failed to count products")
	}

	order := "ORDER BY "
	switch filter.Sort {
	case "price_asc":
		order += "price_cents ASC"
	case "price_desc":
		order += "price_cents DESC"
	case "name_asc":
		order += "name ASC"
	case "name_desc":
		order += "name DESC"
	default: // newest
		order += "created_at DESC"
	}

	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 24
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := "LIMIT " + arg(perPage) + " OFFSET " + arg((page-1)*perPage)

	rows, err := s.pool.Query(ctx,
		"SELECT "+productColumns+" FROM products "+where+" "+order+" "+limit, args...)
	if err != nil {
		return nil, 0, domain.Internal(err, "postgres.list_products", "failed to list products")
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, domain.Internal(err, "postgres.list_products", "failed to scan product")
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (s *ProductStore) ListRelatedProducts(ctx context.Context, productID int64, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE
		  AND id <> $1
		  AND category_id = (SELECT category_id FROM products WHERE id = $1)
		ORDER BY rating DESC, likes_count DESC
		LIMIT $2`, productID, limit)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_related", "failed to list related products")
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, domain.Internal(err, "postgres.list_related", "failed to scan product")
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *ProductStore) CreateProduct(ctx context.Context, params domain.CreateProductParams) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO products (category_id, name, description, price_cents, discount_percent, stock, image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+productColumns,
		params.CategoryID, params.Name, params.Description, params.PriceCents,
		params.DiscountPercent, params.Stock, params.ImageURL, params.IsActive)
	p, err := scanProduct(row)
	if err != nil {
		return nil, domain.Internal(err, "postgres.create_product", "failed to create product")
	}
	return p, nil
}

func (s *ProductStore) UpdateProduct(ctx context.Context, id int64, params domain.UpdateProductParams) (*domain.Product, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE products SET
			category_id      = COALESCE($2, category_id),
			name             = COALESCE($3, name),
			description      = COALESCE($4, description),
			price_cents      = COALESCE($5, price_cents),
			discount_percent = COALESCE($6, discount_percent),
			stock            = COALESCE($7, stock),
			image_url        = COALESCE($8, image_url),
			is_active        = COALESCE($9, is_active),
			updated_at       = now()
		WHERE id = $1
		RETURNING `+productColumns,
		id, params.CategoryID, params.Name, params.Description, params.PriceCents,
		params.DiscountPercent, params.Stock, params.ImageURL, params.IsActive)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.update_product", "failed to update product")
	}
	return p, nil
}

func (s *ProductStore) DeleteProduct(ctx context.Context, id int64) error {
	// Soft delete keeps order history lines resolvable.
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "postgres.delete_product", "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (s *ProductStore) UpdateProductRating(ctx context.Context, productID int64) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE products SET
			rating = COALESCE((SELECT avg(rating) FROM reviews WHERE product_id = $1), 0),
			updated_at = now()
		WHERE id = $1`, productID)
	if err != nil {
		return domain.Internal(err, "postgres.update_rating", "failed to update product rating")
	}
	return nil
}

func (s *ProductStore) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var c domain.Category
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, description, icon, color, is_active, created_at, updated_at
		FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, domain.Internal(err, "postgres.get_category", "failed to load category")
	}
	return &c, nil
}

func (s *ProductStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, icon, color, is_active, created_at, updated_at
		FROM categories WHERE is_active = TRUE ORDER BY name`)
	if err != nil {
		return nil, domain.Internal(err, "postgres.list_categories", "failed to list categories")
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.Color, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, domain.Internal(err, "postgres.list_categories", "failed to scan category")
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *ProductStore) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description, icon, color, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.Icon, c.Color, c.IsActive).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, domain.Internal(err, "postgres.create_category", "failed to create category")
	}
	return &c, nil
}

func (s *ProductStore) UpdateCategory(ctx context.Context, c domain.Category) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, icon = $4, color = $5,
			is_active = $6, updated_at = now()
		WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Icon, c.Color, c.IsActive)
	if err != nil {
		return domain.Internal(err, "postgres.update_category", "failed to update category")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (s *ProductStore) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE categories SET is_active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return domain.Internal(err, "postgres.delete_category", "failed to delete category")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
