package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/api/shared"
	"github.com/phrazzld/scry-assist/internal/task"
)

// TaskStatusReader looks up task records.
type TaskStatusReader interface {
	Status(ctx context.Context, id uuid.UUID) (task.Record, error)
}

// TaskHandler reports the status of queued commands.
type TaskHandler struct {
	tasks TaskStatusReader
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(tasks TaskStatusReader) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// GetTask handles GET /api/tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id")
	if !ok {
		return
	}

	record, err := h.tasks.Status(r.Context(), id)
	if err != nil {
		handleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, record)
}
