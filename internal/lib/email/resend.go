package email

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
)

// ResendTransport sends mail through the Resend HTTP API. Each message
// is one API call.
type ResendTransport struct {
	client *resend.Client
}

// ResendOption customizes a ResendTransport.
type ResendOption func(*resend.Client)

// WithResendBaseURL points the client at a different API endpoint.
func WithResendBaseURL(u *url.URL) ResendOption {
	return func(c *resend.Client) {
		c.BaseURL = u
	}
}

// NewResendTransport creates a transport authenticated with apiKey.
func NewResendTransport(apiKey string, opts ...ResendOption) *ResendTransport {
	client := resend.NewClient(apiKey)
	for _, opt := range opts {
		opt(client)
	}

	return &ResendTransport{client: client}
}

// Send posts every message as a plain-text email.
func (t *ResendTransport) Send(ctx context.Context, messages ...Message) error {
	for _, msg := range messages {
		params := &resend.SendEmailRequest{
			From:    msg.From,
			To:      []string{msg.To},
			Subject: msg.Subject,
			Text:    msg.Body,
		}

		if _, err := t.client.Emails.SendWithContext(ctx, params); err != nil {
			return errors.Wrapf(err, "resend send to %s", msg.To)
		}
	}

	return nil
}
