// Package service contains the business logic.
//
// It sits between the handler layer and the email integration. It
// receives validated enquiries from the handler, records them and
// dispatches the notifications.
package service
