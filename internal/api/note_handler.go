package api

import (
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/phrazzld/scry-assist/internal/api/shared"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/platform/logger"
	"github.com/phrazzld/scry-assist/internal/store"
)

// NoteHandler mirrors host notes into the note store.
type NoteHandler struct {
	notes  store.NoteStore
	logger *slog.Logger
}

// NewNoteHandler creates a new NoteHandler
func NewNoteHandler(notes store.NoteStore, logger *slog.Logger) *NoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteHandler{
		notes:  notes,
		logger: logger.With("component", "note_handler"),
	}
}

// PutNote handles PUT /api/notes/{id} requests. It creates the note or
// replaces its fields, answering 201 or 200 respectively.
func (h *NoteHandler) PutNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req NoteRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	note, err := h.notes.GetByID(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		note, err = domain.NewNote(maps.Clone(req.Fields))
		if err != nil {
			handleAPIError(w, r, err, "Failed to create note")
			return
		}
		note.ID = id
		if err := h.notes.Create(r.Context(), note); err != nil {
			handleAPIError(w, r, err, "Failed to create note")
			return
		}
		log.Debug("note created", "note_id", id)
		shared.RespondWithJSON(w, r, http.StatusCreated, noteToResponse(note))
		return
	case err != nil:
		handleAPIError(w, r, err, "Failed to get note")
		return
	}

	note.Fields = maps.Clone(req.Fields)
	note.UpdatedAt = time.Now().UTC()
	if err := h.notes.Save(r.Context(), note); err != nil {
		handleAPIError(w, r, err, "Failed to save note")
		return
	}
	log.Debug("note replaced", "note_id", id)
	shared.RespondWithJSON(w, r, http.StatusOK, noteToResponse(note))
}

// GetNote handles GET /api/notes/{id} requests.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	note, err := h.notes.GetByID(r.Context(), id)
	if err != nil {
		handleAPIError(w, r, err, "Failed to get note")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, noteToResponse(note))
}
