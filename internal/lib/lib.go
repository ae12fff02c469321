// Package lib holds integrations that do not fit strictly into other
// layers.
//
// Currently that is the email package: message composition and the
// SMTP and Resend delivery transports.
package lib
