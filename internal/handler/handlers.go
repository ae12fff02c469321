// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It binds requests, runs input validation using the validation
// package, and calls the appropriate service. It acts as the interface
// between the HTTP request and the core business logic.
package handler

import (
	"github.com/locallens/contact-backend/internal/server"
	"github.com/locallens/contact-backend/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object
// around instead of many.
type Handlers struct {
	Health  *HealthHandler
	Enquiry *EnquiryHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Enquiry: NewEnquiryHandler(s, services.Enquiry),
	}
}
