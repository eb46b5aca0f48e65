package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report errors with the JSON field names the client actually sent
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate runs struct validation and returns a FieldErrors describing every
// failed field, or nil.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return toFieldErrors(validationErrs)
	}
	return err
}

// FieldErrors maps field name to a human-readable message, suitable for a 422
// response body.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	var messages []string
	for field, msg := range fe {
		messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(messages, "; ")
}

func toFieldErrors(errs validator.ValidationErrors) FieldErrors {
	fe := make(FieldErrors, len(errs))
	for _, err := range errs {
		field := strings.ToLower(err.Field())

		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", field)
		case "min":
			message = fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", field, err.Param())
		case "url":
			message = fmt.Sprintf("%s must be a valid URL", field)
		case "uuid":
			message = fmt.Sprintf("%s must be a valid UUID", field)
		default:
			message = fmt.Sprintf("%s failed validation for %s", field, err.Tag())
		}
		fe[field] = message
	}
	return fe
}
