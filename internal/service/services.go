package service

import (
	"github.com/locallens/contact-backend/internal/server"
)

// Services groups the business services handed to the handler layer.
type Services struct {
	Enquiry *EnquiryService
}

// NewServices builds every service from the application container.
func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		Enquiry: NewEnquiryService(s),
	}, nil
}
