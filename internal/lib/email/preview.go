package email

import "github.com/locallens/contact-backend/internal/model"

// PreviewEnquiry is sample data for rendering the templates locally
// (`contactd preview`).
var PreviewEnquiry = model.Enquiry{
	Name:       "John",
	Email:      "john@example.com",
	Phone:      "+1 555 0100",
	Message:    "Hi! We are two travellers hoping to do the Poon Hill trek in spring.\nCould you help with permits and a guide?",
	TravelDate: "2025-04-12",
}

// PreviewSender stands in for EMAIL_USER when it is not configured.
const PreviewSender = "owner@locallens.homes"
