package service

import (
	"context"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/messaging"

	"go.uber.org/zap"
)

func validContact() domain.ContactRequest {
	return domain.ContactRequest{
		Name:    "Lucia",
		Email:   "lucia@example.com",
		Subject: "Opening hours",
		Message: "Are you open on public holidays?",
	}
}

func TestContactService_PublishesValidRequest(t *testing.T) {
	publisher := &mockPublisher{}
	svc := NewContactService(publisher, "contact", zap.NewNop())

	msg, err := svc.Submit(context.Background(), validContact())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if msg != ContactThanks {
		t.Errorf("Unexpected message: %s", msg)
	}

	events := publisher.published()
	if len(events) != 1 || events[0].topic != "contact" || events[0].key != "lucia@example.com" {
		t.Fatalf("Unexpected events: %+v", events)
	}
	if env := events[0].event.(messaging.Envelope); env.Type != messaging.EventContactSubmitted {
		t.Errorf("Unexpected event type %s", env.Type)
	}
}

func TestContactService_Validation(t *testing.T) {
	svc := NewContactService(&mockPublisher{}, "contact", zap.NewNop())

	tests := []struct {
		name   string
		mutate func(*domain.ContactRequest)
		field  string
		tag    string
	}{
		{"short name", func(r *domain.ContactRequest) { r.Name = "Al" }, "name", "min"},
		{"bad email", func(r *domain.ContactRequest) { r.Email = "not-an-email" }, "email", "email"},
		{"short subject", func(r *domain.ContactRequest) { r.Subject = "Hi" }, "subject", "min"},
		{"short message", func(r *domain.ContactRequest) { r.Message = "Too short" }, "message", "min"},
		{"blank message", func(r *domain.ContactRequest) { r.Message = "     " }, "message", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validContact()
			tt.mutate(&req)
			_, err := svc.Submit(context.Background(), req)
			if got := failedFields(err)[tt.field]; got != tt.tag {
				t.Errorf("Expected %s to fail %s, got %v", tt.field, tt.tag, failedFields(err))
			}
		})
	}
}

func TestContactService_PublishFailureStillThanks(t *testing.T) {
	svc := NewContactService(&mockPublisher{err: errBackendDown}, "contact", zap.NewNop())

	if _, err := svc.Submit(context.Background(), validContact()); err != nil {
		t.Errorf("Publish failure should not surface, got %v", err)
	}
}
