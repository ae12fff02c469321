package email

import (
	"context"
	"fmt"

	"github.com/locallens/contact-backend/internal/config"
)

// Transport delivers composed messages.
//
// Implementations send the messages in order within one delivery
// attempt and stop at the first failure. The returned error names the
// stage that failed.
type Transport interface {
	Send(ctx context.Context, messages ...Message) error
}

// NewTransport picks the transport for the configured provider.
func NewTransport(cfg config.MailConfig) (Transport, error) {
	switch cfg.Provider {
	case config.ProviderSMTP, "":
		return NewSMTPTransport(cfg), nil
	case config.ProviderResend:
		return NewResendTransport(cfg.ResendAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.Provider)
	}
}
