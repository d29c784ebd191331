package transport

import (
	"net/http"
	"time"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactResponse carries the success notice of the contact form
type ContactResponse struct {
	Message string `json:"message,omitempty"`
}

// ContactHandler serves the contact form
type ContactHandler struct {
	contact    service.ContactService
	resetDelay time.Duration
	logger     *zap.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contact service.ContactService, resetDelay time.Duration, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{contact: contact, resetDelay: resetDelay, logger: logger}
}

// RegisterRoutes registers the contact routes
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/contact", func(r chi.Router) {
		r.Get("/", h.GetNotice)
		r.Post("/", h.Submit)
	})
}

// Submit sends the contact message and shows the thank-you notice
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactRequest
	if err := middleware.DecodeJSON(r, &req); err != nil {
		respondRequestError(w, err)
		return
	}
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}

	msg, err := h.contact.Submit(r.Context(), req)
	if err != nil {
		respondRequestError(w, err)
		return
	}
	s.SetNotice(session.NoticeContact, msg, h.resetDelay)

	middleware.RespondWithJSON(w, http.StatusOK, ContactResponse{Message: msg})
}

// GetNotice returns the thank-you notice while it is still showing
func (h *ContactHandler) GetNotice(w http.ResponseWriter, r *http.Request) {
	s, ok := currentSession(w, r, h.logger)
	if !ok {
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, ContactResponse{Message: s.Notice(session.NoticeContact)})
}
