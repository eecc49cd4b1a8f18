package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewState is the side of the card the host is currently showing.
type ReviewState string

// Possible review states
const (
	ReviewStateQuestion ReviewState = "question"
	ReviewStateAnswer   ReviewState = "answer"
)

// Note validation errors
var (
	// ErrNoteIDEmpty is returned when a note ID is empty or nil.
	ErrNoteIDEmpty = errors.New("note ID cannot be empty")

	// ErrNoteFieldsEmpty is returned when a note has no fields.
	ErrNoteFieldsEmpty = errors.New("note must have at least one field")

	// ErrInvalidReviewState is returned for an unknown review state.
	ErrInvalidReviewState = errors.New("invalid review state")
)

// Note is a host-owned flashcard note: a set of named text fields.
type Note struct {
	ID        uuid.UUID         `json:"id"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewNote creates a note with a fresh ID from the given fields.
func NewNote(fields map[string]string) (*Note, error) {
	note := &Note{
		ID:        uuid.New(),
		Fields:    fields,
		UpdatedAt: time.Now().UTC(),
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNoteIDEmpty
	}

	if len(n.Fields) == 0 {
		return ErrNoteFieldsEmpty
	}

	return nil
}

// Has reports whether the note carries a field with the given name.
func (n *Note) Has(field string) bool {
	_, ok := n.Fields[field]
	return ok
}

// Field returns the value of the named field, or "" if it is absent.
func (n *Note) Field(field string) string {
	return n.Fields[field]
}

// SetField replaces the value of an existing field. It reports whether the
// stored value changed.
func (n *Note) SetField(field, value string) bool {
	if current, ok := n.Fields[field]; ok && current == value {
		return false
	}
	n.Fields[field] = value
	n.UpdatedAt = time.Now().UTC()
	return true
}

// Valid reports whether s is a known review state.
func (s ReviewState) Valid() bool {
	return s == ReviewStateQuestion || s == ReviewStateAnswer
}
