package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locallens/contact-backend/internal/handler"
)

// registerEnquiryRoutes registers the contact form endpoint.
func registerEnquiryRoutes(r *echo.Echo, h *handler.Handlers) {
	r.POST("/submit", h.Enquiry.SubmitRoute())
}
