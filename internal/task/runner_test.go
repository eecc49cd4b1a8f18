package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/service/assist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context) (*assist.Result, error)

func (f generatorFunc) Generate(ctx context.Context) (*assist.Result, error) { return f(ctx) }

func TestTaskRunnerCompletesAnswerTask(t *testing.T) {
	runner := NewTaskRunner(DefaultTaskRunnerConfig(), testLogger())
	runner.Start()
	defer runner.Stop()

	noteID := uuid.New()
	task := NewAnswerTask(generatorFunc(func(context.Context) (*assist.Result, error) {
		return &assist.Result{NoteID: noteID, Answer: "R", Stored: true}, nil
	}))
	require.NoError(t, runner.Submit(context.Background(), task))

	var rec Record
	require.Eventually(t, func() bool {
		var err error
		rec, err = runner.Status(context.Background(), task.ID())
		return err == nil && rec.Status == TaskStatusCompleted
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, TaskTypeAnswer, rec.Type)
	result, ok := rec.Result.(*assist.Result)
	require.True(t, ok)
	assert.Equal(t, "R", result.Answer)
	assert.Equal(t, TaskStatusCompleted, task.Status())
}

func TestTaskRunnerRecordsFailure(t *testing.T) {
	runner := NewTaskRunner(DefaultTaskRunnerConfig(), testLogger())
	runner.Start()
	defer runner.Stop()

	task := NewAnswerTask(generatorFunc(func(context.Context) (*assist.Result, error) {
		return nil, assist.ErrNotReviewing
	}))
	require.NoError(t, runner.Submit(context.Background(), task))

	require.Eventually(t, func() bool {
		rec, err := runner.Status(context.Background(), task.ID())
		return err == nil && rec.Status == TaskStatusFailed && rec.Error == assist.ErrNotReviewing.Error()
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, task.Result())
}

func TestTaskRunnerSubmitAfterStop(t *testing.T) {
	runner := NewTaskRunner(DefaultTaskRunnerConfig(), testLogger())
	runner.Start()
	runner.Stop()

	task := newStubTask(nil)
	err := runner.Submit(context.Background(), task)
	assert.ErrorIs(t, err, ErrQueueClosed)

	rec, statusErr := runner.Status(context.Background(), task.ID())
	require.NoError(t, statusErr)
	assert.Equal(t, TaskStatusFailed, rec.Status)
}

func TestTaskRunnerUnknownTask(t *testing.T) {
	runner := NewTaskRunner(DefaultTaskRunnerConfig(), testLogger())
	_, err := runner.Status(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrTaskNotFound))
}

func TestMemoryStatusStoreEvictsOldest(t *testing.T) {
	store := NewMemoryStatusStore(2)
	ctx := context.Background()

	first, second, third := newStubTask(nil), newStubTask(nil), newStubTask(nil)
	for _, task := range []Task{first, second, third} {
		require.NoError(t, store.SaveTask(ctx, task))
	}

	_, err := store.Get(ctx, first.ID())
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.ErrorIs(t, store.UpdateTaskStatus(ctx, first.ID(), TaskStatusCompleted, ""), ErrTaskNotFound)

	rec, err := store.Get(ctx, third.ID())
	require.NoError(t, err)
	assert.Equal(t, TaskStatusPending, rec.Status)
}

func TestAnswerTaskPayload(t *testing.T) {
	task := NewAnswerTask(nil)
	assert.JSONEq(t, `{"command":"aiGenerate"}`, string(task.Payload()))
	assert.Equal(t, TaskStatusPending, task.Status())
}
