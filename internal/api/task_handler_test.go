package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStatusReader map[uuid.UUID]task.Record

func (s stubStatusReader) Status(_ context.Context, id uuid.UUID) (task.Record, error) {
	record, ok := s[id]
	if !ok {
		return task.Record{}, task.ErrTaskNotFound
	}
	return record, nil
}

func TestTaskHandler_GetTask(t *testing.T) {
	id := uuid.New()
	reader := stubStatusReader{id: {
		ID:     id,
		Type:   task.TaskTypeAnswer,
		Status: task.TaskStatusFailed,
		Error:  "not reviewing a card",
	}}

	r := chi.NewRouter()
	r.Get("/api/tasks/{id}", NewTaskHandler(reader).GetTask)

	w := serve(t, r, http.MethodGet, "/api/tasks/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	record := decode[task.Record](t, w)
	assert.Equal(t, task.TaskStatusFailed, record.Status)
	assert.Equal(t, "not reviewing a card", record.Error)

	w = serve(t, r, http.MethodGet, "/api/tasks/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(t, r, http.MethodGet, "/api/tasks/123", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
