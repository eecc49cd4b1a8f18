package assist

import "errors"

// Sentinel errors returned by Service.Generate. Each one has already been
// shown to the user when it is returned.
var (
	// ErrNotReviewing indicates no note is currently under review.
	// API layer should map this to HTTP 409 Conflict.
	ErrNotReviewing = errors.New("not reviewing a card")

	// ErrSettingsUnavailable indicates the settings document could not be read.
	ErrSettingsUnavailable = errors.New("settings unavailable")

	// ErrNoteNotFound indicates the reviewed note is missing from the store.
	ErrNoteNotFound = errors.New("note not found")

	// ErrMissingHostField indicates the question or answer field is absent.
	ErrMissingHostField = errors.New("field not found on note")

	// ErrEmptyQuestion indicates the question field is blank.
	ErrEmptyQuestion = errors.New("question field is empty")

	// ErrBusy indicates an answer is already being generated for the note.
	ErrBusy = errors.New("answer generation already in progress")

	// ErrSaveFailed indicates the answer could not be written to the note.
	ErrSaveFailed = errors.New("failed to save answer")

	// ErrPanic indicates an unexpected fault was recovered.
	ErrPanic = errors.New("unexpected failure during answer generation")
)
