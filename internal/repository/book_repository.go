package repository

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

var (
	ErrBookNotFound = errors.New("book not found")
)

// CategoryAll is accepted anywhere a category filter is, and means no filter
const CategoryAll = "all"

// BookRepository defines read access to the book catalog
type BookRepository interface {
	// List returns the catalog, narrowed to category when it is set
	List(ctx context.Context, category string) ([]domain.Book, error)
	FindByID(ctx context.Context, id int) (domain.Book, error)
}

type staticBookRepository struct {
	books []domain.Book
}

// NewStaticBookRepository creates a BookRepository over a fixed in-memory
// catalog. A nil slice selects the built-in seed catalog.
func NewStaticBookRepository(books []domain.Book) BookRepository {
	if books == nil {
		books = seedBooks()
	}
	return &staticBookRepository{books: books}
}

func (r *staticBookRepository) List(ctx context.Context, category string) ([]domain.Book, error) {
	books := make([]domain.Book, 0, len(r.books))
	for _, b := range r.books {
		if matchesCategory(b.Category, category) {
			books = append(books, b)
		}
	}
	return books, nil
}

func (r *staticBookRepository) FindByID(ctx context.Context, id int) (domain.Book, error) {
	for _, b := range r.books {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Book{}, ErrBookNotFound
}

func matchesCategory(itemCategory, filter string) bool {
	return filter == "" || filter == CategoryAll || itemCategory == filter
}
