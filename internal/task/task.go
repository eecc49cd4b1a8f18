package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeAnswer generates an AI answer for the note under review.
	TaskTypeAnswer = "ai_generate"
)

// Task is a unit of background work. Payload is the JSON request that
// created the task and is recorded alongside its status.
type Task interface {
	ID() uuid.UUID
	Type() string
	Payload() []byte
	Status() TaskStatus
	Execute(ctx context.Context) error
}

// Resulter is implemented by tasks that produce a value worth reporting.
type Resulter interface {
	Result() any
}

// TaskQueueReader is the consuming side of a queue, used by workers.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter is the submitting side of a queue. Enqueue must not block;
// it fails with ErrQueueFull or ErrQueueClosed instead.
type TaskQueueWriter interface {
	Enqueue(task Task) error
	Close()
}

// StatusRecorder is notified as tasks move through their lifecycle.
type StatusRecorder interface {
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error
}
