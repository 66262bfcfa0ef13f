package exceptions

import (
	"appointment-service/internal/pkg/constvars"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatAllValidationErrors renders one message per violated rule, in field order.
func FormatAllValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		if err == nil {
			return nil
		}
		return []string{constvars.ErrDevInvalidInput}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return messages
}

// FieldViolation is a rule broken before struct validation could run, such as
// a JSON value of the wrong type.
type FieldViolation struct {
	Field string
	Tag   string
}

func (v FieldViolation) Message() string {
	customMessage, ok := constvars.CustomValidationErrorMessages[v.Tag]
	if !ok {
		customMessage = "is invalid"
	}
	return v.Field + " " + customMessage
}

// MergeValidationErrors renders the violations first, then every struct rule
// broken by a field that has no violation of its own.
func MergeValidationErrors(violations []FieldViolation, err error) []string {
	messages := make([]string, 0, len(violations))
	seen := make(map[string]bool, len(violations))
	for _, violation := range violations {
		messages = append(messages, violation.Message())
		seen[violation.Field] = true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			if !seen[fieldErr.Field()] {
				messages = append(messages, formatFieldError(fieldErr))
			}
		}
	}
	return messages
}

func FormatFirstValidationError(err error) string {
	messages := FormatAllValidationErrors(err)
	if len(messages) == 0 {
		return constvars.ErrClientCannotProcessRequest
	}
	return messages[0]
}

func formatFieldError(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}
	if constvars.TagsWithParams[tag] {
		if tag == "oneof" {
			customMessage = strings.Replace(customMessage, "%s", strings.Join(strings.Fields(fieldErr.Param()), ", "), 1)
		} else {
			customMessage = strings.Replace(customMessage, "%s", fieldErr.Param(), 1)
		}
	}
	return fieldErr.Field() + " " + customMessage
}
