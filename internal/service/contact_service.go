package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/messaging"

	"go.uber.org/zap"
)

// ContactThanks is shown after a contact request is accepted
const ContactThanks = "Thank you for your message. We will get back to you soon."

// ContactService accepts contact form submissions
type ContactService interface {
	Submit(ctx context.Context, req domain.ContactRequest) (string, error)
}

type contactService struct {
	publisher messaging.Publisher
	topic     string
	logger    *zap.Logger
}

// NewContactService creates a new instance of ContactService
func NewContactService(publisher messaging.Publisher, topic string, logger *zap.Logger) ContactService {
	return &contactService{publisher: publisher, topic: topic, logger: logger}
}

// Submit validates req and hands it to the publisher. A publish failure is
// logged; the visitor still gets the thank-you message.
func (s *contactService) Submit(ctx context.Context, req domain.ContactRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := validate.StructCtx(ctx, req); err != nil {
		return "", err
	}

	event := messaging.Envelope{
		Type:       messaging.EventContactSubmitted,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		Payload:    req,
	}
	if err := s.publisher.PublishEvent(ctx, s.topic, req.Email, event); err != nil {
		s.logger.Error("Failed to publish contact request", zap.String("email", req.Email), zap.Error(err))
	}

	return ContactThanks, nil
}
