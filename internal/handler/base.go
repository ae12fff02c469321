package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/locallens/contact-backend/internal/middleware"
	"github.com/locallens/contact-backend/internal/server"
	"github.com/locallens/contact-backend/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
//
// Concrete handlers embed it so they can reach config and logger via
// *server.Server.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// --- Generic typed handler plumbing -----------------------------------------

// HandlerFunc represents a typed endpoint function that receives a
// validated request payload (Req) and returns a response (Res) or an
// error.
//
// Req is typically a POINTER type, e.g. *model.SubmitEnquiryRequest,
// because binding needs a pointer to populate fields.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// handleRequest is the shared execution pipeline for typed handlers.
//
// It centralizes:
//   - request binding + normalization + validation
//   - structured logging with the request-scoped logger
//   - New Relic attributes and error reporting
//   - timing (validation, handler, total)
//   - writing the result as JSON with the given status
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	status int,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := middleware.GetLogger(c).With().
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	// A body that cannot be bound is treated as empty, so the client gets
	// field errors rather than a parse error.
	if err := validation.Bind(c, req); err != nil {
		logger.Debug().
			Err(err).
			Str("content_type", c.Request().Header.Get(echo.HeaderContentType)).
			Msg("request body could not be bound, validating as empty")
	}

	if err := validation.Validate(req); err != nil {
		validationDuration := time.Since(validationStart)

		// The request logger reports the 400 at WARN.
		logger.Debug().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return c.JSON(status, result)
}

// Handle wraps a typed handler with binding, validation, error handling,
// logging and tracing, and returns an echo.HandlerFunc.
//
// newReq is called once per request so concurrent requests never share
// a payload:
//
//	e.POST("/submit", handler.Handle(h.Handler, h.Submit, http.StatusOK, func() *model.SubmitEnquiryRequest {
//		return &model.SubmitEnquiryRequest{}
//	}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	newReq func() Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newReq(), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, status)
	}
}
