package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/scry-assist/internal/api/shared"
	"github.com/phrazzld/scry-assist/internal/platform/logger"
	"github.com/phrazzld/scry-assist/internal/task"
)

// TaskSubmitter queues background tasks.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// CommandObserver records handled and unhandled commands.
type CommandObserver interface {
	ObserveCommand(command string, handled bool)
}

// CommandHandler dispatches host commands.
type CommandHandler struct {
	generator task.AnswerGenerator
	tasks     TaskSubmitter
	observer  CommandObserver
	logger    *slog.Logger
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(
	generator task.AnswerGenerator,
	tasks TaskSubmitter,
	observer CommandObserver,
	logger *slog.Logger,
) *CommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandHandler{
		generator: generator,
		tasks:     tasks,
		observer:  observer,
		logger:    logger.With("component", "command_handler"),
	}
}

// HandleCommand handles POST /api/commands requests.
//
// aiGenerate is queued on the worker pool and answered with 202 and the task
// ID, or run inline when the query carries wait=true. Any other command is
// reported as not handled.
func (h *CommandHandler) HandleCommand(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CommandRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if req.Command != CommandAIGenerate {
		log.Debug("ignoring unknown command", "command", req.Command)
		h.observer.ObserveCommand(req.Command, false)
		shared.RespondWithJSON(w, r, http.StatusNotFound, CommandResponse{Handled: false})
		return
	}
	h.observer.ObserveCommand(req.Command, true)

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if wait {
		result, err := h.generator.Generate(r.Context())
		if err != nil {
			handleAPIError(w, r, err, "Failed to generate answer")
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, CommandResponse{Handled: true, Result: result})
		return
	}

	t := task.NewAnswerTask(h.generator)
	if err := h.tasks.Submit(r.Context(), t); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Command queue is full", err)
		return
	}

	log.Info("answer generation queued", "task_id", t.ID())
	shared.RespondWithJSON(w, r, http.StatusAccepted, CommandResponse{
		Handled: true,
		TaskID:  t.ID().String(),
	})
}
