package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locallens/contact-backend/internal/model"
	"github.com/locallens/contact-backend/internal/server"
	"github.com/locallens/contact-backend/internal/service"
)

// EnquiryHandler serves the contact form endpoint.
type EnquiryHandler struct {
	Handler
	enquiryService *service.EnquiryService
}

// NewEnquiryHandler constructs an EnquiryHandler.
func NewEnquiryHandler(s *server.Server, enquiryService *service.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{
		Handler:        NewHandler(s),
		enquiryService: enquiryService,
	}
}

// Submit is POST /submit. Binding and validation have already run.
//
// The response is 200 whether or not the emails went out; email_sent
// tells the client which.
func (h *EnquiryHandler) Submit(c echo.Context, req *model.SubmitEnquiryRequest) (*model.SubmitEnquiryResponse, error) {
	sent := h.enquiryService.Submit(c.Request().Context(), req.Enquiry())

	return &model.SubmitEnquiryResponse{
		OK:        true,
		EmailSent: sent,
		Message:   model.SubmittedMessage,
	}, nil
}

// SubmitRoute wraps Submit in the typed request pipeline.
func (h *EnquiryHandler) SubmitRoute() echo.HandlerFunc {
	return Handle(h.Handler, h.Submit, http.StatusOK, func() *model.SubmitEnquiryRequest {
		return &model.SubmitEnquiryRequest{}
	})
}
