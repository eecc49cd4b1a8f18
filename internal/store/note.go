package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
)

// NoteStore defines the interface for note persistence on behalf of the host.
type NoteStore interface {
	// GetByID retrieves a note by its unique ID.
	// Returns ErrNoteNotFound if the note does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// Create saves a new note.
	// Returns ErrDuplicate if a note with the same ID exists.
	Create(ctx context.Context, note *domain.Note) error

	// Save persists the note's current field values.
	// Returns ErrNoteNotFound if the note does not exist.
	Save(ctx context.Context, note *domain.Note) error
}
