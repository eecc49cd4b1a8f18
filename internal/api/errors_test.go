package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/review"
	"github.com/phrazzld/scry-assist/internal/service/assist"
	"github.com/phrazzld/scry-assist/internal/store"
	"github.com/phrazzld/scry-assist/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{store.ErrNoteNotFound, http.StatusNotFound},
		{assist.ErrNoteNotFound, http.StatusNotFound},
		{review.ErrNoActiveReview, http.StatusNotFound},
		{task.ErrTaskNotFound, http.StatusNotFound},
		{assist.ErrNotReviewing, http.StatusConflict},
		{fmt.Errorf("wrapped: %w", assist.ErrBusy), http.StatusConflict},
		{store.ErrDuplicate, http.StatusConflict},
		{assist.ErrMissingHostField, http.StatusUnprocessableEntity},
		{domain.ErrAPIKeyEmpty, http.StatusUnprocessableEntity},
		{domain.ErrInvalidReviewState, http.StatusBadRequest},
		{domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{domain.NewValidationError("id", "is required", domain.ErrValidation), http.StatusBadRequest},
		{assist.ErrSettingsUnavailable, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessageHidesDetails(t *testing.T) {
	err := fmt.Errorf("query failed for key=AIzaSecret: %w", errors.New("driver"))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(err))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Question field is empty", GetSafeErrorMessage(assist.ErrEmptyQuestion))
}

func TestSanitizeValidationError(t *testing.T) {
	s := domain.DefaultSettings()
	s.MaxContext = 42
	assert.Equal(t, "Invalid max_context: too large", SanitizeValidationError(s.Validate()))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "", MaskAPIKey(""))
	assert.Equal(t, "***", MaskAPIKey("abc"))
	assert.Equal(t, "****", MaskAPIKey("abcd"))
	assert.Equal(t, "**cdef", MaskAPIKey("abcdef"))
}
