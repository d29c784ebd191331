package transport

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// checkoutRedirect is where an empty order sends the visitor
const checkoutRedirect = "/cafeteria/products"

// ValidationReport is the response of a form check
type ValidationReport struct {
	service.FormReport
	Errors []middleware.ValidationError `json:"errors,omitempty"`
}

// CheckoutHandler serves the cafeteria checkout flow
type CheckoutHandler struct {
	logger *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{logger: logger}
}

// RegisterRoutes registers the checkout routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cafeteria/checkout", func(r chi.Router) {
		r.Get("/", h.Begin)
		r.Post("/", h.Confirm)
		r.Post("/validate", h.Validate)
	})
}

// Begin opens the checkout page, or redirects to the products when the order
// is empty
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	view, err := s.Checkout.Begin()
	if errors.Is(err, service.ErrEmptyCart) {
		http.Redirect(w, r, checkoutRedirect, http.StatusSeeOther)
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, view)
}

// Validate checks the form and reports every field as touched
func (h *CheckoutHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var form service.CheckoutForm
	if err := middleware.DecodeJSON(r, &form); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	report := s.Checkout.Validate(form)
	middleware.RespondWithJSON(w, http.StatusOK, ValidationReport{
		FormReport: report,
		Errors:     middleware.FormatValidationErrors(report.Err),
	})
}

// Confirm places the order
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var form service.CheckoutForm
	if err := middleware.DecodeJSON(r, &form); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	result, _, err := s.Checkout.Confirm(r.Context(), form)
	switch {
	case err == nil:
		middleware.RespondWithJSON(w, http.StatusCreated, result)
	case errors.Is(err, service.ErrEmptyCart):
		middleware.RespondWithGuardViolation(w, err.Error(), checkoutRedirect)
	case errors.Is(err, service.ErrCheckoutInProgress), errors.Is(err, service.ErrOrderAlreadyConfirmed):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case middleware.IsValidationError(err):
		respondRequestError(w, err)
	default:
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "checkout failed")
	}
}
