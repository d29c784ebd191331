package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

var ErrSubmitInProgress = errors.New("a review for this book is already being submitted")

// ReviewDraft is the unsent review a visitor is typing for one book
type ReviewDraft struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type reviewInput struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=500"`
}

// ReviewView is the per-book review panel
type ReviewView struct {
	BookID     int             `json:"book_id"`
	Visible    bool            `json:"visible"`
	Loading    bool            `json:"loading"`
	Submitting bool            `json:"submitting"`
	Reviews    []domain.Review `json:"reviews"`
	Average    float64         `json:"average_rating"`
	Draft      ReviewDraft     `json:"draft"`
}

// ReviewBoard holds one session's loaded review lists and drafts
type ReviewBoard struct {
	mu         sync.Mutex
	loaded     map[int][]domain.Review
	loading    map[int]bool
	submitting map[int]bool
	drafts     map[int]ReviewDraft

	repo   repository.ReviewRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewReviewBoard creates an empty board
func NewReviewBoard(repo repository.ReviewRepository, logger *zap.Logger) *ReviewBoard {
	return &ReviewBoard{
		loaded:     make(map[int][]domain.Review),
		loading:    make(map[int]bool),
		submitting: make(map[int]bool),
		drafts:     make(map[int]ReviewDraft),
		repo:       repo,
		logger:     logger,
		now:        time.Now,
	}
}

// LoadOrToggle hides the reviews of bookID when they are shown, otherwise
// fetches and shows them. A failed fetch shows an empty list.
func (b *ReviewBoard) LoadOrToggle(ctx context.Context, bookID int) ReviewView {
	b.mu.Lock()
	if _, ok := b.loaded[bookID]; ok {
		delete(b.loaded, bookID)
		view := b.viewLocked(bookID)
		b.mu.Unlock()
		return view
	}
	if b.loading[bookID] {
		view := b.viewLocked(bookID)
		b.mu.Unlock()
		return view
	}
	b.loading[bookID] = true
	b.mu.Unlock()

	reviews, err := b.repo.ListByBook(ctx, bookID)
	if err != nil {
		b.logger.Warn("Failed to load reviews", zap.Int("book_id", bookID), zap.Error(err))
		reviews = []domain.Review{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.loading, bookID)
	b.loaded[bookID] = reviews
	return b.viewLocked(bookID)
}

// SetDraft stores the unsent rating and comment for bookID
func (b *ReviewBoard) SetDraft(bookID, rating int, comment string) ReviewView {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drafts[bookID] = ReviewDraft{Rating: rating, Comment: comment}
	return b.viewLocked(bookID)
}

// Submit stores a review and appends it to the shown list. A zero rating or
// a blank comment is ignored.
func (b *ReviewBoard) Submit(ctx context.Context, bookID, rating int, comment string) (ReviewView, error) {
	comment = strings.TrimSpace(comment)
	if rating == 0 || comment == "" {
		return b.View(bookID), nil
	}
	if err := validate.Struct(reviewInput{Rating: rating, Comment: comment}); err != nil {
		return b.View(bookID), err
	}

	b.mu.Lock()
	if b.submitting[bookID] {
		b.mu.Unlock()
		return ReviewView{}, ErrSubmitInProgress
	}
	b.submitting[bookID] = true
	b.mu.Unlock()

	created, err := b.repo.Add(ctx, domain.Review{
		BookID:  bookID,
		Rating:  rating,
		Comment: comment,
		Date:    b.now().UTC().Format(domain.ReviewDateLayout),
	})

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.submitting, bookID)
	if err != nil {
		return b.viewLocked(bookID), fmt.Errorf("failed to add review: %w", err)
	}

	reviews := make([]domain.Review, 0, len(b.loaded[bookID])+1)
	reviews = append(reviews, b.loaded[bookID]...)
	b.loaded[bookID] = append(reviews, created)
	delete(b.drafts, bookID)

	b.logger.Info("Review submitted", zap.Int("book_id", bookID), zap.Int("review_id", created.ID))
	return b.viewLocked(bookID), nil
}

// View returns the current panel for bookID
func (b *ReviewBoard) View(bookID int) ReviewView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewLocked(bookID)
}

func (b *ReviewBoard) viewLocked(bookID int) ReviewView {
	reviews, visible := b.loaded[bookID]
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return ReviewView{
		BookID:     bookID,
		Visible:    visible,
		Loading:    b.loading[bookID],
		Submitting: b.submitting[bookID],
		Reviews:    reviews,
		Average:    averageRating(reviews),
		Draft:      b.drafts[bookID],
	}
}

func averageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
