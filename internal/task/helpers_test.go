package task

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// stubTask implements Task for tests.
type stubTask struct {
	id     uuid.UUID
	execFn func(ctx context.Context) error
}

func newStubTask(execFn func(ctx context.Context) error) *stubTask {
	return &stubTask{id: uuid.New(), execFn: execFn}
}

func (s *stubTask) ID() uuid.UUID      { return s.id }
func (s *stubTask) Type() string       { return "stub" }
func (s *stubTask) Payload() []byte    { return nil }
func (s *stubTask) Status() TaskStatus { return TaskStatusPending }

func (s *stubTask) Execute(ctx context.Context) error {
	if s.execFn == nil {
		return nil
	}
	return s.execFn(ctx)
}

// chanQueue implements TaskQueueReader over a plain channel.
type chanQueue chan Task

func (q chanQueue) GetChannel() <-chan Task { return q }

type statusLog struct {
	mu      sync.Mutex
	updates []TaskStatus
}

func (l *statusLog) UpdateTaskStatus(_ context.Context, _ uuid.UUID, status TaskStatus, _ string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updates = append(l.updates, status)
	return nil
}

func (l *statusLog) snapshot() []TaskStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]TaskStatus(nil), l.updates...)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
