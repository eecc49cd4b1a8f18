package task

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/service/assist"
)

// AnswerGenerator runs one answer generation for the note under review.
type AnswerGenerator interface {
	Generate(ctx context.Context) (*assist.Result, error)
}

// AnswerTask runs an "aiGenerate" command in the background.
type AnswerTask struct {
	id        uuid.UUID
	generator AnswerGenerator

	mu     sync.Mutex
	status TaskStatus
	result *assist.Result
}

// Ensure AnswerTask implements the Task and Resulter interfaces
var (
	_ Task     = (*AnswerTask)(nil)
	_ Resulter = (*AnswerTask)(nil)
)

// NewAnswerTask creates a pending AnswerTask.
func NewAnswerTask(generator AnswerGenerator) *AnswerTask {
	return &AnswerTask{
		id:        uuid.New(),
		generator: generator,
		status:    TaskStatusPending,
	}
}

// ID returns the task's unique identifier
func (t *AnswerTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeAnswer.
func (t *AnswerTask) Type() string { return TaskTypeAnswer }

// Payload returns the command that created the task.
func (t *AnswerTask) Payload() []byte {
	payload, _ := json.Marshal(map[string]string{"command": "aiGenerate"})
	return payload
}

// Status returns the current task status
func (t *AnswerTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Result returns the generation result once the task has completed.
func (t *AnswerTask) Result() any {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.result == nil {
		return nil
	}
	return t.result
}

// Execute runs the generation. Failures have already been shown to the user
// by the generator; the error is returned for the task record.
func (t *AnswerTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)

	result, err := t.generator.Generate(ctx)
	if err != nil {
		t.setStatus(TaskStatusFailed)
		return err
	}

	t.mu.Lock()
	t.result = result
	t.status = TaskStatusCompleted
	t.mu.Unlock()
	return nil
}

func (t *AnswerTask) setStatus(s TaskStatus) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}
