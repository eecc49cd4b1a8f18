package api

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/api/shared"
	"github.com/phrazzld/scry-assist/internal/service/assist"
	"github.com/phrazzld/scry-assist/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	result *assist.Result
	err    error
	calls  int
}

func (g *stubGenerator) Generate(context.Context) (*assist.Result, error) {
	g.calls++
	return g.result, g.err
}

type recordingSubmitter struct {
	submitted []task.Task
	err       error
}

func (s *recordingSubmitter) Submit(_ context.Context, t task.Task) error {
	if s.err != nil {
		return s.err
	}
	s.submitted = append(s.submitted, t)
	return nil
}

type commandCount struct {
	command string
	handled bool
}

type recordingObserver struct {
	mu       sync.Mutex
	commands []commandCount
}

func (o *recordingObserver) ObserveCommand(command string, handled bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.commands = append(o.commands, commandCount{command, handled})
}

func newCommandRouter(h *CommandHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/commands", h.HandleCommand)
	return r
}

func TestCommandHandler_QueuesAIGenerate(t *testing.T) {
	gen := &stubGenerator{}
	tasks := &recordingSubmitter{}
	observer := &recordingObserver{}
	router := newCommandRouter(NewCommandHandler(gen, tasks, observer, testLogger()))

	w := serve(t, router, http.MethodPost, "/api/commands", CommandRequest{Command: CommandAIGenerate})

	require.Equal(t, http.StatusAccepted, w.Code)
	resp := decode[CommandResponse](t, w)
	assert.True(t, resp.Handled)
	require.Len(t, tasks.submitted, 1)
	assert.Equal(t, tasks.submitted[0].ID().String(), resp.TaskID)
	assert.Equal(t, task.TaskTypeAnswer, tasks.submitted[0].Type())
	assert.Zero(t, gen.calls, "queued command must not run on the request goroutine")
	assert.Equal(t, []commandCount{{CommandAIGenerate, true}}, observer.commands)
}

func TestCommandHandler_WaitRunsInline(t *testing.T) {
	noteID := uuid.New()
	gen := &stubGenerator{result: &assist.Result{NoteID: noteID, Answer: "a<br>b", Stored: true}}
	tasks := &recordingSubmitter{}
	router := newCommandRouter(NewCommandHandler(gen, tasks, &recordingObserver{}, testLogger()))

	w := serve(t, router, http.MethodPost, "/api/commands?wait=true", CommandRequest{Command: CommandAIGenerate})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"answer":"a<br>b"`)
	resp := decode[CommandResponse](t, w)
	require.NotNil(t, resp.Result)
	assert.Equal(t, noteID, resp.Result.NoteID)
	assert.Empty(t, tasks.submitted)
	assert.Equal(t, 1, gen.calls)
}

func TestCommandHandler_WaitMapsServiceErrors(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not reviewing", err: assist.ErrNotReviewing, wantStatus: http.StatusConflict},
		{name: "busy", err: assist.ErrBusy, wantStatus: http.StatusConflict},
		{name: "empty question", err: assist.ErrEmptyQuestion, wantStatus: http.StatusUnprocessableEntity},
		{name: "settings", err: assist.ErrSettingsUnavailable, wantStatus: http.StatusServiceUnavailable},
		{name: "panic", err: assist.ErrPanic, wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := newCommandRouter(NewCommandHandler(
				&stubGenerator{err: tc.err}, &recordingSubmitter{}, &recordingObserver{}, testLogger()))

			w := serve(t, router, http.MethodPost, "/api/commands?wait=1", CommandRequest{Command: CommandAIGenerate})

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decode[shared.ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestCommandHandler_UnknownCommandNotHandled(t *testing.T) {
	tasks := &recordingSubmitter{}
	observer := &recordingObserver{}
	router := newCommandRouter(NewCommandHandler(&stubGenerator{}, tasks, observer, testLogger()))

	w := serve(t, router, http.MethodPost, "/api/commands", CommandRequest{Command: "reviewNext"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"handled":false}`, w.Body.String())
	assert.Empty(t, tasks.submitted)
	assert.Equal(t, []commandCount{{"reviewNext", false}}, observer.commands)
}

func TestCommandHandler_BadRequests(t *testing.T) {
	router := newCommandRouter(NewCommandHandler(
		&stubGenerator{}, &recordingSubmitter{}, &recordingObserver{}, testLogger()))

	for _, body := range []string{``, `{`, `{"command":""}`, `{"command":"aiGenerate","x":1}`} {
		w := serve(t, router, http.MethodPost, "/api/commands", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestCommandHandler_QueueFull(t *testing.T) {
	tasks := &recordingSubmitter{err: task.ErrQueueFull}
	router := newCommandRouter(NewCommandHandler(&stubGenerator{}, tasks, &recordingObserver{}, testLogger()))

	w := serve(t, router, http.MethodPost, "/api/commands", CommandRequest{Command: CommandAIGenerate})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
