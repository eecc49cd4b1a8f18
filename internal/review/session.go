// Package review tracks which note the host is currently reviewing and
// whether the question or the answer side is on screen.
package review

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
)

// ErrNoActiveReview is returned when no note is being reviewed.
var ErrNoActiveReview = errors.New("no active review")

// Current describes the note on screen.
type Current struct {
	NoteID    uuid.UUID          `json:"note_id"`
	State     domain.ReviewState `json:"state"`
	StartedAt time.Time          `json:"started_at"`
}

// Session holds the current review. The zero value is not usable; call NewSession.
type Session struct {
	mu      sync.RWMutex
	current *Current
	now     func() time.Time
}

// NewSession creates a Session with no active review.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// Show records that noteID is on screen in the given state. Showing the same
// note again only updates the state.
func (s *Session) Show(noteID uuid.UUID, state domain.ReviewState) error {
	if noteID == uuid.Nil {
		return domain.ErrNoteIDEmpty
	}
	if !state.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidReviewState, state)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.NoteID == noteID {
		s.current.State = state
		return nil
	}
	s.current = &Current{NoteID: noteID, State: state, StartedAt: s.now().UTC()}
	return nil
}

// End clears the active review.
func (s *Session) End() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns a copy of the active review.
func (s *Session) Current() (Current, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Current{}, ErrNoActiveReview
	}
	return *s.current, nil
}
