package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const productColumns = `id, name, image_url, price, category, description, available`

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a repository.ProductRepository backed by the
// cafeteria_products table
func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// List retrieves products, optionally narrowed to one category
func (r *productRepository) List(ctx context.Context, category string) ([]domain.CafeteriaProduct, error) {
	if category == "" || category == repository.CategoryAll {
		return r.query(ctx, `SELECT `+productColumns+` FROM cafeteria_products ORDER BY id ASC`)
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM cafeteria_products WHERE category = $1 ORDER BY id ASC`, category)
}

// ListAvailable retrieves products whose available flag is not false
func (r *productRepository) ListAvailable(ctx context.Context) ([]domain.CafeteriaProduct, error) {
	return r.query(ctx, `
		SELECT `+productColumns+`
		FROM cafeteria_products
		WHERE available IS DISTINCT FROM FALSE
		ORDER BY id ASC
	`)
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int) (domain.CafeteriaProduct, error) {
	query := `SELECT ` + productColumns + ` FROM cafeteria_products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.CafeteriaProduct{}, repository.ErrProductNotFound
		}
		return domain.CafeteriaProduct{}, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

func (r *productRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.CafeteriaProduct, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.CafeteriaProduct{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (domain.CafeteriaProduct, error) {
	var (
		product   domain.CafeteriaProduct
		available sql.NullBool
	)
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.ImageURL,
		&product.Price,
		&product.Category,
		&product.Description,
		&available,
	)
	if err != nil {
		return domain.CafeteriaProduct{}, err
	}
	if available.Valid {
		v := available.Bool
		product.Available = &v
	}
	return product, nil
}
