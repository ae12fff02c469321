package email

import (
	"bytes"
	"context"
	"crypto/tls"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/locallens/contact-backend/internal/config"
	"github.com/pkg/errors"
)

// SMTPTransport sends mail over a single SMTP session per delivery:
// plain connect, STARTTLS upgrade, PLAIN authentication, then one
// transaction per message.
type SMTPTransport struct {
	addr      string
	user      string
	password  string
	tlsConfig *tls.Config
}

// SMTPOption customizes an SMTPTransport.
type SMTPOption func(*SMTPTransport)

// WithTLSConfig overrides the TLS settings used for STARTTLS.
func WithTLSConfig(cfg *tls.Config) SMTPOption {
	return func(t *SMTPTransport) {
		t.tlsConfig = cfg
	}
}

// NewSMTPTransport creates a transport for the configured server.
func NewSMTPTransport(cfg config.MailConfig, opts ...SMTPOption) *SMTPTransport {
	t := &SMTPTransport{
		addr:     cfg.Address(),
		user:     cfg.User,
		password: cfg.Password,
		tlsConfig: &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		},
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Send delivers every message over one session. The connection is
// closed on every path.
func (t *SMTPTransport) Send(ctx context.Context, messages ...Message) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "smtp send cancelled")
	}

	// The STARTTLS upgrade runs lazily with the first command, so a bad
	// certificate surfaces as an auth error.
	client, err := smtp.DialStartTLS(t.addr, t.tlsConfig)
	if err != nil {
		return errors.Wrapf(err, "smtp dial %s", t.addr)
	}
	defer client.Close()

	if err := client.Auth(sasl.NewPlainClient("", t.user, t.password)); err != nil {
		return errors.Wrap(err, "smtp auth")
	}

	for _, msg := range messages {
		raw, err := msg.Bytes()
		if err != nil {
			return err
		}

		if err := client.SendMail(msg.From, []string{msg.To}, bytes.NewReader(raw)); err != nil {
			return errors.Wrapf(err, "smtp send to %s", msg.To)
		}
	}

	return errors.Wrap(client.Quit(), "smtp quit")
}
