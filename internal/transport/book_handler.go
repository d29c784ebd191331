package transport

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/domain"
	"storefront/internal/filter"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BookCategories lists the filter options of the book search
var BookCategories = []string{
	domain.BookCategoryFiction,
	domain.BookCategoryScience,
	domain.BookCategoryHistory,
	domain.BookCategoryChildren,
	domain.BookCategoryClassics,
}

// BookSearchResponse is one page of the book search
type BookSearchResponse struct {
	filter.Result[domain.Book]
	Criteria   filter.Criteria `json:"criteria"`
	Categories []string        `json:"categories"`
}

// ReviewRequest carries a rating and comment for a book
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"gte=0,lte=5"`
	Comment string `json:"comment" validate:"max=500"`
}

// BookHandler serves the book catalog and its review panels
type BookHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewBookHandler creates a new BookHandler
func NewBookHandler(catalog service.CatalogService, logger *zap.Logger) *BookHandler {
	return &BookHandler{catalog: catalog, logger: logger}
}

// RegisterRoutes registers all book routes
func (h *BookHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.Search)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetBook)
			r.Get("/reviews", h.GetReviews)
			r.Post("/reviews", h.SubmitReview)
			r.Post("/reviews/toggle", h.ToggleReviews)
			r.Put("/reviews/draft", h.SaveDraft)
		})
	})
}

// Search filters and paginates the catalog. Without an explicit page the
// first page is returned, so any change of criteria starts over at page 1.
func (h *BookHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := filter.Criteria{
		Title:    q.Get("title"),
		Author:   q.Get("author"),
		Year:     q.Get("year"),
		Category: q.Get("category"),
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
				{Field: "page", Message: "Must be a whole number"},
			})
			return
		}
		page = parsed
	}

	result := h.catalog.SearchBooks(r.Context(), criteria, page)
	middleware.RespondWithJSON(w, http.StatusOK, BookSearchResponse{
		Result:     result,
		Criteria:   criteria,
		Categories: BookCategories,
	})
}

// GetBook returns one book
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, book)
}

// ToggleReviews shows or hides the reviews of a book
func (h *BookHandler) ToggleReviews(w http.ResponseWriter, r *http.Request) {
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, s.Reviews.LoadOrToggle(r.Context(), book.ID))
}

// GetReviews returns the review panel of a book
func (h *BookHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, s.Reviews.View(book.ID))
}

// SaveDraft keeps the unsent review of a book
func (h *BookHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, s.Reviews.SetDraft(book.ID, req.Rating, req.Comment))
}

// SubmitReview posts a review. Incomplete reviews are ignored.
func (h *BookHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	book, ok := h.findBook(w, r)
	if !ok {
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	view, err := s.Reviews.Submit(r.Context(), book.ID, req.Rating, req.Comment)
	switch {
	case err == nil:
		middleware.RespondWithJSON(w, http.StatusOK, view)
	case errors.Is(err, service.ErrSubmitInProgress):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case middleware.IsValidationError(err):
		respondRequestError(w, err)
	default:
		h.logger.Error("Review submission failed", zap.Int("book_id", book.ID), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit review")
	}
}

func (h *BookHandler) findBook(w http.ResponseWriter, r *http.Request) (domain.Book, bool) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid book id")
		return domain.Book{}, false
	}
	book, ok := h.catalog.GetBook(r.Context(), id)
	if !ok {
		middleware.RespondWithError(w, http.StatusNotFound, "book not found")
		return domain.Book{}, false
	}
	return book, true
}
