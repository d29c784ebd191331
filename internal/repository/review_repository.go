package repository

import (
	"context"
	"sync"

	"storefront/internal/domain"
)

// ReviewRepository stores book reviews. Reviews are append-only.
type ReviewRepository interface {
	ListByBook(ctx context.Context, bookID int) ([]domain.Review, error)
	// Add assigns the next id to review and stores it
	Add(ctx context.Context, review domain.Review) (domain.Review, error)
}

type memoryReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

// NewMemoryReviewRepository creates a ReviewRepository seeded with a few reviews
func NewMemoryReviewRepository() ReviewRepository {
	return &memoryReviewRepository{reviews: seedReviews()}
}

func (r *memoryReviewRepository) ListByBook(ctx context.Context, bookID int) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reviews := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.BookID == bookID {
			reviews = append(reviews, rv)
		}
	}
	return reviews, nil
}

func (r *memoryReviewRepository) Add(ctx context.Context, review domain.Review) (domain.Review, error) {
	if err := ctx.Err(); err != nil {
		return domain.Review{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	review.ID = len(r.reviews) + 1
	r.reviews = append(r.reviews, review)
	return review, nil
}
