// Package model holds the request, response and domain types that flow
// between the HTTP layer and the email client.
package model

import (
	"strings"

	"github.com/locallens/contact-backend/internal/validation"
)

// Field error messages sent back to the website form verbatim.
const (
	MsgNameRequired    = "Name is required."
	MsgEmailInvalid    = "A valid email address is required."
	MsgMessageRequired = "Message is required."
)

// SubmittedMessage is the fixed acknowledgement returned for every
// accepted enquiry, whether or not the emails went out.
const SubmittedMessage = "Message received! I'll be in touch within a few hours."

// Enquiry is one validated contact-form submission. It only exists for the
// lifetime of a request.
type Enquiry struct {
	Name       string
	Email      string
	Phone      string
	Message    string
	TravelDate string
	Trip       string
}

// SubmitEnquiryRequest is the body of POST /submit. It binds from either
// JSON or form-encoded input.
type SubmitEnquiryRequest struct {
	Name       string `json:"name" form:"name" validate:"required"`
	Email      string `json:"email" form:"email" validate:"required,contact_email"`
	Phone      string `json:"phone" form:"phone"`
	Message    string `json:"message" form:"message" validate:"required"`
	TravelDate string `json:"travel_date" form:"travel_date"`
	Trip       string `json:"trip" form:"trip"`
}

var enquiryMessages = map[string]string{
	"name":    MsgNameRequired,
	"email":   MsgEmailInvalid,
	"message": MsgMessageRequired,
}

// Normalize trims surrounding whitespace from every field.
func (r *SubmitEnquiryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
	r.TravelDate = strings.TrimSpace(r.TravelDate)
	r.Trip = strings.TrimSpace(r.Trip)
}

// Validate reports every failing field at once.
func (r *SubmitEnquiryRequest) Validate() error {
	return validation.Struct(r, enquiryMessages)
}

// Enquiry converts a validated request into the domain value.
func (r *SubmitEnquiryRequest) Enquiry() Enquiry {
	return Enquiry{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Message:    r.Message,
		TravelDate: r.TravelDate,
		Trip:       r.Trip,
	}
}

// ParseEnquiry validates raw form fields. Missing keys count as empty.
//
// It returns either the normalized Enquiry or a non-empty field -> message
// mapping. It has no side effects.
func ParseEnquiry(fields map[string]string) (Enquiry, map[string]string) {
	req := &SubmitEnquiryRequest{
		Name:       fields["name"],
		Email:      fields["email"],
		Phone:      fields["phone"],
		Message:    fields["message"],
		TravelDate: fields["travel_date"],
		Trip:       fields["trip"],
	}
	req.Normalize()

	if err := req.Validate(); err != nil {
		if fieldErrors, ok := err.(validation.CustomValidationErrors); ok {
			return Enquiry{}, fieldErrors
		}
		return Enquiry{}, map[string]string{"request": err.Error()}
	}

	return req.Enquiry(), nil
}

// SubmitEnquiryResponse is the 200 body of POST /submit.
type SubmitEnquiryResponse struct {
	OK        bool   `json:"ok"`
	EmailSent bool   `json:"email_sent"`
	Message   string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
