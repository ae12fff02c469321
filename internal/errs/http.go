package errs

import "strings"

// FieldErrors maps a request field name to a human-readable message.
//
// Example:
//
//	{"email": "A valid email address is required."}
type FieldErrors map[string]string

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Errors: per-field errors (validation).
type HTTPError struct {
	Code    string
	Message string
	Status  int

	// Errors holds field-level validation errors, typically for form inputs.
	Errors FieldErrors
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Response is the JSON body written for a failed request.
//
// Validation failures carry only `errors`; every other failure carries a
// `code` and an `error` message instead.
type Response struct {
	OK     bool        `json:"ok"`
	Errors FieldErrors `json:"errors,omitempty"`
	Code   string      `json:"code,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Body renders the error as the response body sent to the client.
func (e *HTTPError) Body() Response {
	if len(e.Errors) > 0 {
		return Response{OK: false, Errors: e.Errors}
	}
	return Response{OK: false, Code: e.Code, Error: e.Message}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
