package service

import (
	"context"

	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/locallens/contact-backend/internal/lib/email"
	"github.com/locallens/contact-backend/internal/model"
	"github.com/locallens/contact-backend/internal/server"
)

// submissionPreviewLen is how many characters of the message make it
// into the submission log line.
const submissionPreviewLen = 80

// Notifier sends the emails for one enquiry. *email.Client implements it.
type Notifier interface {
	SendEnquiryEmails(ctx context.Context, enquiry model.Enquiry) email.Result
}

// EnquiryService accepts validated enquiries.
type EnquiryService struct {
	server   *server.Server
	notifier Notifier
}

// NewEnquiryService creates an EnquiryService that notifies through the
// server's email client.
func NewEnquiryService(s *server.Server) *EnquiryService {
	return &EnquiryService{
		server:   s,
		notifier: s.Email,
	}
}

// WithNotifier replaces the notifier, e.g. with a fake in tests.
func (s *EnquiryService) WithNotifier(n Notifier) *EnquiryService {
	s.notifier = n
	return s
}

// Submit records the enquiry in the submission log, then sends the
// owner notification and the confirmation.
//
// It reports whether the emails were sent. Delivery problems never fail
// the submission; they are logged by the email client and noticed on
// the New Relic transaction.
func (s *EnquiryService) Submit(ctx context.Context, enquiry model.Enquiry) bool {
	logger := s.loggerFrom(ctx)

	logger.Info().
		Str("enquirer_email", enquiry.Email).
		Msgf("Submission: %s <%s> – %s", enquiry.Name, enquiry.Email, truncate(enquiry.Message, submissionPreviewLen))

	result := s.notifier.SendEnquiryEmails(ctx, enquiry)

	if txn := newrelic.FromContext(ctx); txn != nil {
		txn.AddAttribute("email.sent", result.Sent)
		if result.Err != nil {
			txn.NoticeError(nrpkgerrors.Wrap(result.Err))
		}
	}

	return result.Sent
}

func (s *EnquiryService) loggerFrom(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.server.Logger
}

// truncate keeps at most n characters (runes) of s.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
