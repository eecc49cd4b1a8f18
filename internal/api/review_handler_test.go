package api

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewRouter(session *review.Session) http.Handler {
	h := NewReviewHandler(session)
	r := chi.NewRouter()
	r.Put("/api/review/current", h.SetCurrent)
	r.Get("/api/review/current", h.GetCurrent)
	r.Delete("/api/review/current", h.EndCurrent)
	return r
}

func TestReviewHandler_Lifecycle(t *testing.T) {
	session := review.NewSession()
	router := newReviewRouter(session)
	noteID := uuid.New()

	w := serve(t, router, http.MethodGet, "/api/review/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, router, http.MethodPut, "/api/review/current",
		ReviewRequest{NoteID: noteID, State: domain.ReviewStateQuestion})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(t, router, http.MethodPut, "/api/review/current",
		ReviewRequest{NoteID: noteID, State: domain.ReviewStateAnswer})
	require.Equal(t, http.StatusOK, w.Code)

	current, err := session.Current()
	require.NoError(t, err)
	assert.Equal(t, noteID, current.NoteID)
	assert.Equal(t, domain.ReviewStateAnswer, current.State)

	w = serve(t, router, http.MethodGet, "/api/review/current", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ReviewResponse](t, w)
	assert.Equal(t, noteID.String(), resp.NoteID)
	assert.Equal(t, "answer", resp.State)

	w = serve(t, router, http.MethodDelete, "/api/review/current", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, err = session.Current()
	assert.ErrorIs(t, err, review.ErrNoActiveReview)
}

func TestReviewHandler_RejectsBadState(t *testing.T) {
	router := newReviewRouter(review.NewSession())

	w := serve(t, router, http.MethodPut, "/api/review/current",
		map[string]string{"note_id": uuid.NewString(), "state": "editing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, router, http.MethodPut, "/api/review/current",
		map[string]string{"note_id": "not-a-uuid", "state": "answer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, router, http.MethodPut, "/api/review/current",
		map[string]string{"note_id": uuid.Nil.String(), "state": "answer"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
