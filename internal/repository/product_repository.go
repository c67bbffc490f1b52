package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// ProductRepository handles database operations for vendor products
type ProductRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sqlx.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

// Create adds a new product listing
func (r *ProductRepository) Create(ctx context.Context, product *model.VendorProduct) error {
	query := `
		INSERT INTO vendor_products (id, vendor_id, name, category, description, base_price,
			unit, stock_quantity, min_order_quantity, image_url, is_active, created_at, updated_at)
		VALUES (:id, :vendor_id, :name, :category, :description, :base_price,
			:unit, :stock_quantity, :min_order_quantity, :image_url, :is_active, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		r.logger.Error("failed to create product", zap.Error(err))
		return err
	}

	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*model.VendorProduct, error) {
	query := `SELECT * FROM vendor_products WHERE id = $1`

	var product model.VendorProduct
	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get product", zap.Error(err), zap.String("id", id))
		return nil, err
	}

	return &product, nil
}

// ListByVendor retrieves all products of a vendor
func (r *ProductRepository) ListByVendor(ctx context.Context, vendorID string) ([]model.VendorProduct, error) {
	query := `SELECT * FROM vendor_products WHERE vendor_id = $1 ORDER BY created_at DESC`

	products := []model.VendorProduct{}
	if err := r.db.SelectContext(ctx, &products, query, vendorID); err != nil {
		r.logger.Error("failed to list products by vendor", zap.Error(err), zap.String("vendor_id", vendorID))
		return nil, err
	}

	return products, nil
}

// Search retrieves active products matching the filter, joined to vendor
// details, plus the total row count for pagination.
func (r *ProductRepository) Search(ctx context.Context, filter model.ProductSearchFilter) ([]model.VendorProductWithVendor, int, error) {
	conditions := []string{"p.is_active = TRUE"}
	args := []interface{}{}
	argn := 1

	arg := func(v interface{}) string {
		args = append(args, v)
		placeholder := fmt.Sprintf("$%d", argn)
		argn++
		return placeholder
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		conditions = append(conditions, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", p, p))
	}
	if len(filter.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("p.category = ANY(%s)", arg(pq.Array(filter.Categories))))
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.base_price >= %s", arg(*filter.MinPrice)))
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("p.base_price <= %s", arg(*filter.MaxPrice)))
	}
	if filter.InStockOnly {
		conditions = append(conditions, "p.stock_quantity > 0")
	}
	if filter.MinRating != nil {
		conditions = append(conditions, fmt.Sprintf("v.rating >= %s", arg(*filter.MinRating)))
	}

	where := strings.Join(conditions, " AND ")

	orderBy := "p.created_at DESC"
	switch filter.SortBy {
	case "price_asc":
		orderBy = "p.base_price ASC"
	case "price_desc":
		orderBy = "p.base_price DESC"
	case "rating":
		orderBy = "v.rating DESC"
	case "name":
		orderBy = "p.name ASC"
	}

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM vendor_products p
		JOIN vendor_profiles v ON v.id = p.vendor_id
		WHERE %s`, where)

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		r.logger.Error("failed to count products", zap.Error(err))
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT p.*, v.company_name AS vendor_company_name, v.rating AS vendor_rating,
			v.city AS vendor_city, v.state AS vendor_state
		FROM vendor_products p
		JOIN vendor_profiles v ON v.id = p.vendor_id
		WHERE %s
		ORDER BY %s
		LIMIT %s OFFSET %s`,
		where, orderBy, arg(filter.Limit), arg((filter.Page-1)*filter.Limit))

	products := []model.VendorProductWithVendor{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		r.logger.Error("failed to search products", zap.Error(err))
		return nil, 0, err
	}

	return products, total, nil
}

// Update modifies a product listing
func (r *ProductRepository) Update(ctx context.Context, product *model.VendorProduct) error {
	query := `
		UPDATE vendor_products
		SET name = :name, category = :category, description = :description,
			base_price = :base_price, unit = :unit, stock_quantity = :stock_quantity,
			min_order_quantity = :min_order_quantity, image_url = :image_url,
			is_active = :is_active, updated_at = NOW()
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		r.logger.Error("failed to update product", zap.Error(err), zap.String("id", product.ID))
		return err
	}

	return nil
}
