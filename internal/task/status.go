package task

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTaskNotFound is returned for an unknown or evicted task ID.
var ErrTaskNotFound = errors.New("task not found")

// Record is a snapshot of a task's lifecycle.
type Record struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Status    TaskStatus `json:"status"`
	Error     string     `json:"error,omitempty"`
	Result    any        `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type entry struct {
	task   Task
	record Record
}

// MemoryStatusStore keeps the most recent task records in memory. Once
// capacity is reached the oldest record is evicted.
type MemoryStatusStore struct {
	mu       sync.RWMutex
	entries  map[uuid.UUID]*entry
	order    []uuid.UUID
	capacity int
	now      func() time.Time
}

// Ensure MemoryStatusStore implements StatusRecorder interface
var _ StatusRecorder = (*MemoryStatusStore)(nil)

// NewMemoryStatusStore creates a store holding up to capacity records.
func NewMemoryStatusStore(capacity int) *MemoryStatusStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &MemoryStatusStore{
		entries:  make(map[uuid.UUID]*entry),
		capacity: capacity,
		now:      time.Now,
	}
}

// SaveTask records a newly submitted task as pending.
func (s *MemoryStatusStore) SaveTask(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	s.entries[task.ID()] = &entry{
		task: task,
		record: Record{
			ID:        task.ID(),
			Type:      task.Type(),
			Status:    TaskStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	s.order = append(s.order, task.ID())

	for len(s.order) > s.capacity {
		delete(s.entries, s.order[0])
		s.order = s.order[1:]
	}
	return nil
}

// UpdateTaskStatus implements StatusRecorder.
func (s *MemoryStatusStore) UpdateTaskStatus(_ context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	e.record.Status = status
	e.record.Error = errorMsg
	e.record.UpdatedAt = s.now().UTC()
	return nil
}

// Get returns the record for taskID, including the task's result when it
// has completed and reports one.
func (s *MemoryStatusStore) Get(_ context.Context, taskID uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[taskID]
	if !ok {
		return Record{}, ErrTaskNotFound
	}
	rec := e.record
	if r, ok := e.task.(Resulter); ok && rec.Status == TaskStatusCompleted {
		rec.Result = r.Result()
	}
	return rec, nil
}
