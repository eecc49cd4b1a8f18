package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/review"
	"github.com/phrazzld/scry-assist/internal/service/assist"
	"github.com/phrazzld/scry-assist/internal/store"
	"github.com/phrazzld/scry-assist/internal/task"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, assist.ErrNoteNotFound),
		errors.Is(err, review.ErrNoActiveReview),
		errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, assist.ErrNotReviewing),
		errors.Is(err, assist.ErrBusy),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// The note or settings cannot serve a generation as they stand
	case errors.Is(err, assist.ErrMissingHostField),
		errors.Is(err, assist.ErrEmptyQuestion),
		errors.Is(err, domain.ErrAPIKeyEmpty):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrSettingsInvalid),
		errors.Is(err, domain.ErrNoteIDEmpty),
		errors.Is(err, domain.ErrNoteFieldsEmpty),
		errors.Is(err, domain.ErrInvalidReviewState),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	case errors.Is(err, assist.ErrSettingsUnavailable),
		errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, assist.ErrNotReviewing):
		return "No card is being reviewed"
	case errors.Is(err, assist.ErrBusy):
		return "An answer is already being generated for this note"
	case errors.Is(err, assist.ErrNoteNotFound), errors.Is(err, store.ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, assist.ErrMissingHostField):
		return "Question or answer field not found on note"
	case errors.Is(err, assist.ErrEmptyQuestion):
		return "Question field is empty"
	case errors.Is(err, domain.ErrAPIKeyEmpty):
		return "API key is not configured"
	case errors.Is(err, assist.ErrSettingsUnavailable), errors.Is(err, store.ErrUnavailable):
		return "Settings are unavailable"
	case errors.Is(err, review.ErrNoActiveReview):
		return "No active review"
	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Note already exists"
	case errors.Is(err, domain.ErrNoteFieldsEmpty):
		return "Note must have at least one field"
	case errors.Is(err, domain.ErrInvalidReviewState):
		return "Invalid review state"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, domain.ErrSettingsInvalid):
		return SanitizeValidationError(err)
	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'Settings.max_context' Error:Field validation for 'max_context' failed on the 'lte' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.SplitN(errMsg, "Error:", 2)
		if len(parts) == 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				if len(fieldParts) >= 5 {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fieldParts[3]))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "gte", "min":
		return "too small"
	case "lte", "max":
		return "too large"
	case "oneof":
		return "invalid value"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}
