package repository

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines read access to the cafeteria menu
type ProductRepository interface {
	List(ctx context.Context, category string) ([]domain.CafeteriaProduct, error)
	FindByID(ctx context.Context, id int) (domain.CafeteriaProduct, error)
	// ListAvailable returns products whose availability flag is not false
	ListAvailable(ctx context.Context) ([]domain.CafeteriaProduct, error)
}

type staticProductRepository struct {
	products []domain.CafeteriaProduct
}

// NewStaticProductRepository creates a ProductRepository over a fixed menu.
// A nil slice selects the built-in menu.
func NewStaticProductRepository(products []domain.CafeteriaProduct) ProductRepository {
	if products == nil {
		products = seedProducts()
	}
	return &staticProductRepository{products: products}
}

func (r *staticProductRepository) List(ctx context.Context, category string) ([]domain.CafeteriaProduct, error) {
	products := make([]domain.CafeteriaProduct, 0, len(r.products))
	for _, p := range r.products {
		if matchesCategory(p.Category, category) {
			products = append(products, p)
		}
	}
	return products, nil
}

func (r *staticProductRepository) FindByID(ctx context.Context, id int) (domain.CafeteriaProduct, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.CafeteriaProduct{}, ErrProductNotFound
}

func (r *staticProductRepository) ListAvailable(ctx context.Context) ([]domain.CafeteriaProduct, error) {
	products := make([]domain.CafeteriaProduct, 0, len(r.products))
	for _, p := range r.products {
		if p.IsAvailable() {
			products = append(products, p)
		}
	}
	return products, nil
}
