package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var out []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			out = append(out, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return out
}

// validationMessage joins parsed errors into one user-facing message
func validationMessage(err error) string {
	parsed := ParseValidationErrors(err)
	if len(parsed) == 0 {
		return "Invalid request"
	}
	msgs := make([]string, 0, len(parsed))
	for _, p := range parsed {
		msgs = append(msgs, p.Message)
	}
	return strings.Join(msgs, "; ")
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		return fe.Field() + " must not exceed " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}
