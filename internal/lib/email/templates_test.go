package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locallens/contact-backend/internal/config"
	"github.com/locallens/contact-backend/internal/model"
)

var (
	testMail = config.MailConfig{
		User:      "owner@example.com",
		Recipient: "inbox@example.com",
	}
	testNow = time.Date(2024, 5, 1, 9, 30, 45, 0, time.FixedZone("NPT", 5*3600+45*60))
)

func TestOwnerNotification(t *testing.T) {
	t.Parallel()

	t.Run("optional fields default to Not provided", func(t *testing.T) {
		t.Parallel()

		msg := OwnerNotification(testMail, model.Enquiry{
			Name:    "Ann",
			Email:   "ann@example.com",
			Message: "Hello\nthere",
		}, testNow)

		assert.Equal(t, "owner@example.com", msg.From)
		assert.Equal(t, "inbox@example.com", msg.To)
		assert.Equal(t, "New Enquiry from Ann", msg.Subject)
		assert.Equal(t, "New enquiry from your website:\n\n"+
			"Name:         Ann\n"+
			"Email:        ann@example.com\n"+
			"Phone:        Not provided\n"+
			"Travel Date:  Not provided\n"+
			"Tour:         Not provided\n\n"+
			"Message:\nHello\nthere\n\n"+
			"Submitted: 2024-05-01 03:45 UTC", msg.Body)
	})

	t.Run("optional fields are listed when present", func(t *testing.T) {
		t.Parallel()

		msg := OwnerNotification(testMail, model.Enquiry{
			Name:       "Ann",
			Email:      "ann@example.com",
			Phone:      "+1 555 0100",
			Message:    "Hi",
			TravelDate: "2025-04-12",
			Trip:       "Poon Hill",
		}, testNow)

		assert.Contains(t, msg.Body, "Phone:        +1 555 0100\n")
		assert.Contains(t, msg.Body, "Travel Date:  2025-04-12\n")
		assert.Contains(t, msg.Body, "Tour:         Poon Hill\n")
		assert.NotContains(t, msg.Body, notProvided)
	})

	t.Run("recipient defaults to the user", func(t *testing.T) {
		t.Parallel()

		msg := OwnerNotification(config.MailConfig{User: "owner@example.com"}, model.Enquiry{Name: "Ann"}, testNow)
		assert.Equal(t, "owner@example.com", msg.To)
	})
}

func TestConfirmation(t *testing.T) {
	t.Parallel()

	msg := Confirmation(testMail, model.Enquiry{Name: "Ann", Email: "ann@example.com"}, testNow)

	assert.Equal(t, "owner@example.com", msg.From)
	assert.Equal(t, "ann@example.com", msg.To)
	assert.Equal(t, "Thanks for reaching out – Jivan Parajuli", msg.Subject)
	assert.Equal(t, "Hi Ann,\n\n"+
		"Thanks for getting in touch! I've received your message and will get back to you within a few hours.\n\n"+
		"If it's urgent, call or WhatsApp me directly at +977 9828768566.\n\n"+
		"– Jivan Parajuli\nThe Fixer Nepal\nhttps://locallens.homes", msg.Body)
}

func TestRender(t *testing.T) {
	t.Parallel()

	for _, tmpl := range Templates {
		_, err := Render(tmpl, testMail, PreviewEnquiry, testNow)
		assert.NoError(t, err, tmpl)
	}

	_, err := Render(Template("welcome"), testMail, PreviewEnquiry, testNow)
	require.Error(t, err)
}
