package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/locallens/contact-backend/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that calls validation.Struct
// - Return CustomValidationErrors for failures
type Validatable interface {
	Validate() error
}

// Normalizer is implemented by payloads that clean their own fields
// (trimming, defaulting) before validation runs.
type Normalizer interface {
	Normalize()
}

// CustomValidationErrors maps field names to messages and satisfies error.
type CustomValidationErrors map[string]string

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// validate is shared by all payloads. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so error keys match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return IsPlausibleEmail(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("registering contact_email validation: %v", err))
	}

	return v
}

// Bind populates payload from the request body (JSON or form-encoded).
//
// Binding never rejects a request. A body that is missing, malformed or
// of an unsupported type leaves payload zeroed so the request falls
// through to field validation. A JSON value of the wrong type only drops
// that field. The bind error is returned for logging.
func Bind(c echo.Context, payload any) error {
	err := c.Bind(payload)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		if v := reflect.ValueOf(payload); v.Kind() == reflect.Pointer && !v.IsNil() {
			v.Elem().SetZero()
		}
	}

	return err
}

// Validate normalizes payload (when it is a Normalizer) and validates it.
//
// Returns an *errs.HTTPError (400) carrying the field errors, or nil.
func Validate(payload Validatable) error {
	if n, ok := payload.(Normalizer); ok {
		n.Normalize()
	}

	err := payload.Validate()
	if err == nil {
		return nil
	}

	var fieldErrors CustomValidationErrors
	if errors.As(err, &fieldErrors) {
		return errs.ValidationError(errs.FieldErrors(fieldErrors))
	}

	return errs.NewBadRequestError(err.Error(), nil, nil)
}

// Struct runs the struct-tag rules on v.
//
// messages overrides the generic per-tag text for a field: every failing
// rule on that field reports the same fixed message.
func Struct(v any, messages map[string]string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	return extractValidationError(validationErrors, messages)
}

func extractValidationError(validationErrors validator.ValidationErrors, messages map[string]string) CustomValidationErrors {
	fieldErrors := make(CustomValidationErrors, len(validationErrors))

	for _, err := range validationErrors {
		field := err.Field()

		if msg, ok := messages[field]; ok {
			fieldErrors[field] = msg
			continue
		}

		var msg string
		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email", "contact_email":
			msg = "must be a valid email address"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		fieldErrors[field] = msg
	}

	return fieldErrors
}
