package transport

import (
	"errors"
	"net/http"

	"storefront/internal/config"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// bookCartRedirect is where an empty-cart payment sends the visitor
const bookCartRedirect = "/books"

// AddBookRequest adds a book to the cart
type AddBookRequest struct {
	BookID   int `json:"book_id" validate:"required,gt=0"`
	Quantity int `json:"quantity" validate:"omitempty,min=1,max=99"`
}

// CartHandler serves the book cart and its simulated payment
type CartHandler struct {
	catalog  service.CatalogService
	payments *service.PaymentService
	timing   config.TimingConfig
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(
	catalog service.CatalogService,
	payments *service.PaymentService,
	timing config.TimingConfig,
	m *metrics.Metrics,
	logger *zap.Logger,
) *CartHandler {
	return &CartHandler{
		catalog:  catalog,
		payments: payments,
		timing:   timing,
		metrics:  m,
		logger:   logger,
	}
}

// RegisterRoutes registers all book cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{id}", h.UpdateItem)
		r.Delete("/items/{id}", h.RemoveItem)
		r.Post("/payment", h.Pay)
	})
}

func (h *CartHandler) render(w http.ResponseWriter, s *session.Session, status int) {
	middleware.RespondWithJSON(w, status, newCartView(s.BookCart.Snapshot(), s.Notice(session.NoticeBookCart)))
}

// GetCart returns the book cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}
	h.render(w, s, http.StatusOK)
}

// AddItem adds a book, or more copies of it, to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddBookRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	book, found := h.catalog.GetBook(r.Context(), req.BookID)
	if !found {
		middleware.RespondWithError(w, http.StatusNotFound, "book not found")
		return
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	s.BookCart.AddItem(book, qty)
	s.SetNotice(session.NoticeBookCart, book.Title+" added to cart", h.timing.BookNoticeDelay)
	if h.metrics != nil {
		h.metrics.ItemsAdded.WithLabelValues(metrics.DomainBooks).Add(float64(qty))
	}

	h.render(w, s, http.StatusOK)
}

// UpdateItem sets the quantity of a line. Zero or less removes it.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	var req QuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	s.BookCart.UpdateQuantity(id, *req.Quantity)
	h.render(w, s, http.StatusOK)
}

// RemoveItem deletes the whole line of a book
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid book id")
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	s.BookCart.RemoveItem(id)
	h.render(w, s, http.StatusOK)
}

// ClearCart empties the cart and drops any pending post-payment clear
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	s.Scheduler.Cancel(service.PaymentClearKey)
	s.BookCart.Clear()
	h.render(w, s, http.StatusOK)
}

// Pay runs the simulated card payment
func (h *CartHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var form service.PaymentForm
	if err := middleware.DecodeJSON(r, &form); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.payments.Pay(r.Context(), s.BookCart, s.Scheduler, form)
	switch {
	case err == nil:
		middleware.RespondWithJSON(w, http.StatusOK, result)
	case errors.Is(err, service.ErrEmptyCart):
		middleware.RespondWithGuardViolation(w, err.Error(), bookCartRedirect)
	case middleware.IsValidationError(err):
		respondRequestError(w, err)
	default:
		h.logger.Error("Payment failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "payment failed")
	}
}
