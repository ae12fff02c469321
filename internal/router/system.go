package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locallens/contact-backend/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// business logic.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/health", h.Health.CheckHealth)
}
