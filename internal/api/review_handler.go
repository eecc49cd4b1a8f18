package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/api/shared"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/review"
)

// ReviewSession tracks the note the host is showing.
type ReviewSession interface {
	Show(noteID uuid.UUID, state domain.ReviewState) error
	End()
	Current() (review.Current, error)
}

// ReviewHandler lets the host report what it is showing.
type ReviewHandler struct {
	session ReviewSession
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(session ReviewSession) *ReviewHandler {
	return &ReviewHandler{session: session}
}

// SetCurrent handles PUT /api/review/current requests.
func (h *ReviewHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.session.Show(req.NoteID, req.State); err != nil {
		handleAPIError(w, r, err, "Failed to update review")
		return
	}

	current, err := h.session.Current()
	if err != nil {
		handleAPIError(w, r, err, "Failed to update review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reviewToResponse(current))
}

// GetCurrent handles GET /api/review/current requests.
func (h *ReviewHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	current, err := h.session.Current()
	if err != nil {
		handleAPIError(w, r, err, "Failed to get review")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reviewToResponse(current))
}

// EndCurrent handles DELETE /api/review/current requests.
func (h *ReviewHandler) EndCurrent(w http.ResponseWriter, r *http.Request) {
	h.session.End()
	w.WriteHeader(http.StatusNoContent)
}
