package service

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/filter"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

// CatalogService reads both catalogs. Fetch failures degrade to empty
// results so callers never see a fault for a list.
type CatalogService interface {
	SearchBooks(ctx context.Context, criteria filter.Criteria, page int) filter.Result[domain.Book]
	GetBook(ctx context.Context, id int) (domain.Book, bool)
	ListProducts(ctx context.Context, category string, availableOnly bool) []domain.CafeteriaProduct
	GetProduct(ctx context.Context, id int) (domain.CafeteriaProduct, bool)
}

type catalogService struct {
	books    repository.BookRepository
	products repository.ProductRepository
	pageSize int
	logger   *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(
	books repository.BookRepository,
	products repository.ProductRepository,
	pageSize int,
	logger *zap.Logger,
) CatalogService {
	if pageSize < 1 {
		pageSize = filter.DefaultPageSize
	}
	return &catalogService{
		books:    books,
		products: products,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (s *catalogService) SearchBooks(ctx context.Context, criteria filter.Criteria, page int) filter.Result[domain.Book] {
	books, err := s.books.List(ctx, criteria.Category)
	if err != nil {
		s.logger.Warn("Book catalog unavailable, serving empty list",
			zap.String("category", criteria.Category),
			zap.Error(err),
		)
		books = []domain.Book{}
	}
	if criteria.Category == repository.CategoryAll {
		criteria.Category = ""
	}
	return filter.Apply(books, criteria, page, s.pageSize)
}

func (s *catalogService) GetBook(ctx context.Context, id int) (domain.Book, bool) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrBookNotFound) {
			s.logger.Warn("Failed to fetch book", zap.Int("book_id", id), zap.Error(err))
		}
		return domain.Book{}, false
	}
	return book, true
}

func (s *catalogService) ListProducts(ctx context.Context, category string, availableOnly bool) []domain.CafeteriaProduct {
	var (
		products []domain.CafeteriaProduct
		err      error
	)
	if availableOnly {
		products, err = s.products.ListAvailable(ctx)
	} else {
		products, err = s.products.List(ctx, category)
	}
	if err != nil {
		s.logger.Warn("Cafeteria catalog unavailable, serving empty list", zap.Error(err))
		return []domain.CafeteriaProduct{}
	}

	if availableOnly && category != "" && category != repository.CategoryAll {
		narrowed := make([]domain.CafeteriaProduct, 0, len(products))
		for _, p := range products {
			if p.Category == category {
				narrowed = append(narrowed, p)
			}
		}
		products = narrowed
	}
	return products
}

func (s *catalogService) GetProduct(ctx context.Context, id int) (domain.CafeteriaProduct, bool) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, repository.ErrProductNotFound) {
			s.logger.Warn("Failed to fetch product", zap.Int("product_id", id), zap.Error(err))
		}
		return domain.CafeteriaProduct{}, false
	}
	return product, true
}
