package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locallens/contact-backend/internal/model"
	"github.com/locallens/contact-backend/internal/server"
)

// HealthHandler serves the liveness probe used by the hosting platform.
type HealthHandler struct {
	Handler
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth always answers 200 {"status":"ok"}. It checks no
// dependencies: a reachable mail server is not required to accept
// enquiries.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, model.HealthResponse{Status: "ok"})
}
