package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkerPoolDefaultsWorkerCount(t *testing.T) {
	for _, count := range []int{0, -3} {
		pool := NewWorkerPool(make(chanQueue), WorkerPoolConfig{WorkerCount: count}, testLogger())
		assert.Equal(t, 1, pool.workerCount)
	}
	assert.Equal(t, 1, DefaultWorkerPoolConfig().WorkerCount)
}

func TestWorkerPoolRecordsLifecycle(t *testing.T) {
	queue := make(chanQueue, 1)
	pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), testLogger())
	statuses := &statusLog{}
	pool.SetStatusRecorder(statuses)
	pool.Start()
	defer pool.Stop()

	done := make(chan struct{})
	queue <- newStubTask(func(context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for task")
	}

	require.Eventually(t, func() bool { return len(statuses.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []TaskStatus{TaskStatusProcessing, TaskStatusCompleted}, statuses.snapshot())
}

func TestWorkerPoolErrorHandler(t *testing.T) {
	testCases := []struct {
		name    string
		execFn  func(context.Context) error
		wantMsg string
	}{
		{
			name:    "returned error",
			execFn:  func(context.Context) error { return errors.New("boom") },
			wantMsg: "boom",
		},
		{
			name:    "panic",
			execFn:  func(context.Context) error { panic("kaboom") },
			wantMsg: "task panic: kaboom",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			queue := make(chanQueue, 1)
			pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), testLogger())
			statuses := &statusLog{}
			pool.SetStatusRecorder(statuses)

			handled := make(chan error, 1)
			pool.SetErrorHandler(func(_ Task, err error) { handled <- err })
			pool.Start()
			defer pool.Stop()

			queue <- newStubTask(tc.execFn)

			select {
			case err := <-handled:
				assert.EqualError(t, err, tc.wantMsg)
			case <-time.After(time.Second):
				t.Fatal("timed out waiting for error handler")
			}
			assert.Equal(t, []TaskStatus{TaskStatusProcessing, TaskStatusFailed}, statuses.snapshot())
		})
	}
}

func TestWorkerPoolStopCancelsRunningTask(t *testing.T) {
	queue := make(chanQueue, 1)
	pool := NewWorkerPool(queue, DefaultWorkerPoolConfig(), testLogger())
	pool.Start()

	started := make(chan struct{})
	cancelled := make(chan struct{})
	queue <- newStubTask(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	<-started
	stopped := make(chan struct{})
	go func() {
		pool.Stop()
		close(stopped)
	}()

	for _, ch := range []chan struct{}{cancelled, stopped} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for shutdown")
		}
	}
}
