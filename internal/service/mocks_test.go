package service

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

var errBackendDown = errors.New("backend down")

type mockBookRepository struct {
	books []domain.Book
	err   error
}

func (m *mockBookRepository) List(ctx context.Context, category string) ([]domain.Book, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Book{}
	for _, b := range m.books {
		if category == "" || category == repository.CategoryAll || b.Category == category {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookRepository) FindByID(ctx context.Context, id int) (domain.Book, error) {
	if m.err != nil {
		return domain.Book{}, m.err
	}
	for _, b := range m.books {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Book{}, repository.ErrBookNotFound
}

type mockProductRepository struct {
	products []domain.CafeteriaProduct
	err      error
}

func (m *mockProductRepository) List(ctx context.Context, category string) ([]domain.CafeteriaProduct, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.CafeteriaProduct{}
	for _, p := range m.products {
		if category == "" || category == repository.CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int) (domain.CafeteriaProduct, error) {
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.CafeteriaProduct{}, repository.ErrProductNotFound
}

func (m *mockProductRepository) ListAvailable(ctx context.Context) ([]domain.CafeteriaProduct, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.CafeteriaProduct{}
	for _, p := range m.products {
		if p.IsAvailable() {
			out = append(out, p)
		}
	}
	return out, nil
}

type mockReviewRepository struct {
	mu      sync.Mutex
	reviews []domain.Review
	listErr error
	addErr  error
	// block, when set, holds Add until it is closed
	block chan struct{}
}

func (m *mockReviewRepository) ListByBook(ctx context.Context, bookID int) ([]domain.Review, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Review{}
	for _, r := range m.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepository) Add(ctx context.Context, review domain.Review) (domain.Review, error) {
	if m.block != nil {
		<-m.block
	}
	if m.addErr != nil {
		return domain.Review{}, m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	review.ID = len(m.reviews) + 1
	m.reviews = append(m.reviews, review)
	return review, nil
}

type publishedEvent struct {
	topic string
	key   string
	event any
}

type mockPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (m *mockPublisher) PublishEvent(ctx context.Context, topic string, key string, event any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) published() []publishedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]publishedEvent(nil), m.events...)
}

func product(id int, name, price, category string) domain.CafeteriaProduct {
	return domain.CafeteriaProduct{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func book(id int, title, author string, year int, category, price string) domain.Book {
	return domain.Book{
		ID:       id,
		Title:    title,
		Author:   author,
		Year:     year,
		Category: category,
		Price:    decimal.RequireFromString(price),
	}
}
