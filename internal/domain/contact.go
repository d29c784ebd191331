package domain

// ContactRequest is a message sent through the contact form
type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=3"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,min=5"`
	Message string `json:"message" validate:"required,min=10,max=500"`
}
