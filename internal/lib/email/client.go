// Package email composes and delivers the two enquiry emails.
//
// Messages are plain text. Delivery goes through a Transport: SMTP with
// STARTTLS by default, or the Resend API (resend-go) when configured.
package email

import (
	"context"
	"time"

	"github.com/locallens/contact-backend/internal/config"
	"github.com/locallens/contact-backend/internal/model"
	"github.com/rs/zerolog"
)

// Result is the outcome of one delivery attempt.
//
// Sent is true only when both messages were handed to the transport.
// Err is set when delivery was attempted and failed; it stays nil when
// sending was skipped for lack of credentials.
type Result struct {
	Sent bool
	Err  error
}

// Client wraps a Transport with the mail settings and a logger.
type Client struct {
	mail      config.MailConfig
	transport Transport
	logger    *zerolog.Logger

	// now is swappable so tests get stable timestamps.
	now func() time.Time
}

// NewClient creates an email Client that delivers through transport.
func NewClient(cfg *config.Config, transport Transport, logger *zerolog.Logger) *Client {
	return &Client{
		mail:      cfg.Mail,
		transport: transport,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the time source used for the submission timestamp.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// SendEnquiryEmails sends the owner notification followed by the
// enquirer confirmation.
//
// Steps:
//   - Skip with a warning when credentials are missing
//   - Compose both messages with one timestamp
//   - Hand them to the transport in a single delivery attempt
//
// It never returns an error; failures are logged and reported in Result.
func (c *Client) SendEnquiryEmails(ctx context.Context, enquiry model.Enquiry) Result {
	logger := c.loggerFrom(ctx)

	if !c.mail.Credentialed() {
		logger.Warn().
			Str("provider", c.mail.Provider).
			Msg("email credentials not configured, skipping email send")
		return Result{}
	}

	now := c.now()
	messages := make([]Message, 0, len(Templates))
	for _, tmpl := range Templates {
		msg, err := Render(tmpl, c.mail, enquiry, now)
		if err != nil {
			logger.Error().Err(err).Msg("email send error")
			return Result{Err: err}
		}
		messages = append(messages, msg)
	}

	start := time.Now()
	if err := c.transport.Send(ctx, messages...); err != nil {
		logger.Error().
			Err(err).
			Str("provider", c.mail.Provider).
			Msg("email send error")
		return Result{Err: err}
	}

	logger.Debug().
		Str("provider", c.mail.Provider).
		Int("messages", len(messages)).
		Dur("duration", time.Since(start)).
		Msg("enquiry emails sent")

	return Result{Sent: true}
}

// loggerFrom prefers a request-scoped logger carried in ctx.
func (c *Client) loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return c.logger
}
