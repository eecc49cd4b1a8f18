package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/phrazzld/scry-assist/internal/api/shared"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/platform/logger"
)

// SettingsResolver loads and replaces the settings document.
type SettingsResolver interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, s domain.Settings) error
}

// SettingsHandler serves the settings form.
type SettingsHandler struct {
	resolver SettingsResolver
	logger   *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(resolver SettingsResolver, logger *slog.Logger) *SettingsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsHandler{
		resolver: resolver,
		logger:   logger.With("component", "settings_handler"),
	}
}

// GetSettings handles GET /api/settings requests. The API key is masked
// unless the query carries reveal=true.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.resolver.Load(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Settings are unavailable", err)
		return
	}

	reveal, _ := strconv.ParseBool(r.URL.Query().Get("reveal"))
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(s, reveal))
}

// UpdateSettings handles PUT /api/settings requests.
//
// The request replaces the whole document. Context pairs with an empty
// question are dropped, and sending back the masked key keeps the stored one.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SettingsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	current, err := h.resolver.Load(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Settings are unavailable", err)
		return
	}

	updated := req.toSettings(current.APIKey)
	if err := updated.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.resolver.Save(r.Context(), updated); err != nil {
		handleAPIError(w, r, err, "Failed to save settings")
		return
	}

	log.Info("settings updated",
		"model", updated.Model,
		"context_pairs", len(updated.ContextMessages)/2)
	shared.RespondWithJSON(w, r, http.StatusOK, settingsToResponse(updated, false))
}
