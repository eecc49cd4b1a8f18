// Package memstore provides in-memory implementations of the store
// interfaces. The note store backs the file deployment, where the host pushes
// notes to the assistant for the lifetime of the process.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/store"
)

// NoteStore keeps notes in a map guarded by a mutex. Notes are copied on the
// way in and out so callers never share field maps.
type NoteStore struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]*domain.Note
}

// Ensure NoteStore implements store.NoteStore interface
var _ store.NoteStore = (*NoteStore)(nil)

// NewNoteStore creates an empty NoteStore.
func NewNoteStore() *NoteStore {
	return &NoteStore{notes: make(map[uuid.UUID]*domain.Note)}
}

// GetByID implements store.NoteStore.GetByID.
func (s *NoteStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, store.ErrNoteNotFound
	}
	return clone(note), nil
}

// Create implements store.NoteStore.Create.
func (s *NoteStore) Create(_ context.Context, note *domain.Note) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; ok {
		return fmt.Errorf("%w: note %s", store.ErrDuplicate, note.ID)
	}
	s.notes[note.ID] = clone(note)
	return nil
}

// Save implements store.NoteStore.Save.
func (s *NoteStore) Save(_ context.Context, note *domain.Note) error {
	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; !ok {
		return store.ErrNoteNotFound
	}
	s.notes[note.ID] = clone(note)
	return nil
}

func clone(n *domain.Note) *domain.Note {
	c := *n
	c.Fields = maps.Clone(n.Fields)
	return &c
}

// DocumentStore is a store.DocumentStore held in memory.
type DocumentStore struct {
	mu  sync.RWMutex
	doc []byte
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a DocumentStore, optionally seeded with doc.
func NewDocumentStore(doc []byte) *DocumentStore {
	return &DocumentStore{doc: doc}
}

// Get implements store.DocumentStore.Get.
func (s *DocumentStore) Get(context.Context) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, false, nil
	}
	return append([]byte(nil), s.doc...), true, nil
}

// Set implements store.DocumentStore.Set.
func (s *DocumentStore) Set(_ context.Context, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = append([]byte(nil), doc...)
	return nil
}
