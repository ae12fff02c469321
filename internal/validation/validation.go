// Package validation contains the logic for binding and validating
// request data.
//
// It uses the `validator` library to enforce rules defined in struct
// tags (plus the custom `contact_email` rule) and converts failures into
// the field -> message mapping the client receives.
package validation
