package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

// messages maps a failed tag to the text returned to the caller.
var messages = map[string]string{
	"required":          "{field} is required",
	"gte":               "{field} must be greater than or equal to {param}",
	"gt":                "{field} must be greater than {param}",
	"lte":               "{field} must be less than or equal to {param}",
	"oneof":             "{field} must be one of {param}",
	"max":               "{field} must be less than or equal to {param}",
	"min":               "{field} must be greater than or equal to {param}",
	"email":             "{field} must be a valid email address",
	"notblank":          "{field} must not be blank",
	"date":              "{field} must be a date formatted as YYYY-MM-DD",
	"reservation_state": "{field} must be one of CONFIRMED PENDING CANCELLED",
	"dive":              "{field} contains an invalid value",
}

// message renders the first field error that has a template. Errors without one are returned verbatim.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fieldErr := range fieldErrors {
		template, ok := messages[fieldErr.Tag()]
		if !ok {
			continue
		}

		return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
	}

	return fieldErrors.Error()
}
