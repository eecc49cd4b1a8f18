package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// HistorySize bounds how many task records are kept for status queries
	HistorySize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   16,
		HistorySize: 256,
	}
}

// TaskRunner wires a queue, a worker pool and a status store together.
type TaskRunner struct {
	queue  *TaskQueue
	pool   *WorkerPool
	status *MemoryStatusStore
	logger *slog.Logger
}

// NewTaskRunner creates a new TaskRunner. Call Start before submitting.
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.HistorySize <= 0 {
		config.HistorySize = DefaultTaskRunnerConfig().HistorySize
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	logger = logger.With("component", "task_runner")
	queue := NewTaskQueue(config.QueueSize, logger)
	status := NewMemoryStatusStore(config.HistorySize)

	pool := NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger)
	pool.SetStatusRecorder(status)

	return &TaskRunner{
		queue:  queue,
		pool:   pool,
		status: status,
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit records the task as pending and queues it.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	if err := r.status.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if err := r.queue.Enqueue(task); err != nil {
		_ = r.status.UpdateTaskStatus(ctx, task.ID(), TaskStatusFailed, err.Error())
		return err
	}
	return nil
}

// Status returns the current record of a submitted task.
func (r *TaskRunner) Status(ctx context.Context, id uuid.UUID) (Record, error) {
	return r.status.Get(ctx, id)
}

// Start begins processing tasks.
func (r *TaskRunner) Start() {
	r.pool.Start()
}

// Stop closes the queue, cancels running tasks and waits for the workers.
func (r *TaskRunner) Stop() {
	r.queue.Close()
	r.pool.Stop()
}
