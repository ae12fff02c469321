// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and maps paths to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/locallens/contact-backend/internal/handler"
	"github.com/locallens/contact-backend/internal/middleware"
	"github.com/locallens/contact-backend/internal/server"
)

// NewRouter builds the Echo instance with the full middleware chain.
//
// Order matters:
//   - CORS first so preflight requests short-circuit
//   - RequestID before tracing and the context enhancer, which read it
//   - the New Relic transaction before anything that looks it up
//   - RequestLogger inside ContextEnhancer so it gets the request logger
//   - Recover innermost so panics become errors the logger sees
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Debug = s.Config.Server.DebugEnabled()

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerEnquiryRoutes(router, h)

	return router
}
