package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/locallens/contact-backend/internal/config"
	"github.com/locallens/contact-backend/internal/model"
)

// Template is a string-based enum naming the emails this service sends.
type Template string

const (
	// TemplateOwnerNotification alerts the site owner about a new enquiry.
	TemplateOwnerNotification Template = "owner"

	// TemplateConfirmation thanks the enquirer for getting in touch.
	TemplateConfirmation Template = "confirmation"
)

// Templates lists every template in send order.
var Templates = []Template{TemplateOwnerNotification, TemplateConfirmation}

const (
	notProvided = "Not provided"

	// SubmittedLayout renders the submission timestamp, e.g. 2024-05-01 09:30 UTC.
	SubmittedLayout = "2006-01-02 15:04 UTC"

	confirmationSubject = "Thanks for reaching out – Jivan Parajuli"
	contactNumber       = "+977 9828768566"
)

// Render composes the given template for an enquiry.
func Render(tmpl Template, mail config.MailConfig, enquiry model.Enquiry, now time.Time) (Message, error) {
	switch tmpl {
	case TemplateOwnerNotification:
		return OwnerNotification(mail, enquiry, now), nil
	case TemplateConfirmation:
		return Confirmation(mail, enquiry, now), nil
	default:
		return Message{}, fmt.Errorf("unknown email template %q", tmpl)
	}
}

// OwnerNotification lists every enquiry field for the site owner.
// It is sent from the configured user to the configured recipient.
func OwnerNotification(mail config.MailConfig, enquiry model.Enquiry, now time.Time) Message {
	var body strings.Builder

	body.WriteString("New enquiry from your website:\n\n")
	fmt.Fprintf(&body, "Name:         %s\n", enquiry.Name)
	fmt.Fprintf(&body, "Email:        %s\n", enquiry.Email)
	fmt.Fprintf(&body, "Phone:        %s\n", orNotProvided(enquiry.Phone))
	fmt.Fprintf(&body, "Travel Date:  %s\n", orNotProvided(enquiry.TravelDate))
	fmt.Fprintf(&body, "Tour:         %s\n\n", orNotProvided(enquiry.Trip))
	fmt.Fprintf(&body, "Message:\n%s\n\n", enquiry.Message)
	fmt.Fprintf(&body, "Submitted: %s", now.UTC().Format(SubmittedLayout))

	recipient := mail.Recipient
	if recipient == "" {
		recipient = mail.User
	}

	return Message{
		From:    mail.User,
		To:      recipient,
		Subject: "New Enquiry from " + enquiry.Name,
		Body:    body.String(),
		Date:    now,
	}
}

// Confirmation is the fixed thank-you note sent to the enquirer.
func Confirmation(mail config.MailConfig, enquiry model.Enquiry, now time.Time) Message {
	var body strings.Builder

	fmt.Fprintf(&body, "Hi %s,\n\n", enquiry.Name)
	body.WriteString("Thanks for getting in touch! I've received your message and will ")
	body.WriteString("get back to you within a few hours.\n\n")
	fmt.Fprintf(&body, "If it's urgent, call or WhatsApp me directly at %s.\n\n", contactNumber)
	body.WriteString("– Jivan Parajuli\n")
	body.WriteString("The Fixer Nepal\n")
	body.WriteString("https://locallens.homes")

	return Message{
		From:    mail.User,
		To:      enquiry.Email,
		Subject: confirmationSubject,
		Body:    body.String(),
		Date:    now,
	}
}

func orNotProvided(value string) string {
	if value == "" {
		return notProvided
	}
	return value
}
