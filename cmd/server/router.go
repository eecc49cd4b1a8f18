package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-assist/internal/api"
	apiMiddleware "github.com/phrazzld/scry-assist/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	commandHandler := api.NewCommandHandler(app.assist, app.taskRunner, app.metrics, app.logger)
	taskHandler := api.NewTaskHandler(app.taskRunner)
	settingsHandler := api.NewSettingsHandler(app.settings, app.logger)
	reviewHandler := api.NewReviewHandler(app.session)
	noteHandler := api.NewNoteHandler(app.notes, app.logger)

	limiter := rate.NewLimiter(rate.Limit(app.config.Command.RatePerSecond), app.config.Command.Burst)

	r.Route("/api", func(r chi.Router) {
		r.With(apiMiddleware.NewRateLimitMiddleware(limiter)).
			Post("/commands", commandHandler.HandleCommand)
		r.Get("/tasks/{id}", taskHandler.GetTask)

		r.Get("/settings", settingsHandler.GetSettings)
		r.Put("/settings", settingsHandler.UpdateSettings)

		r.Get("/review/current", reviewHandler.GetCurrent)
		r.Put("/review/current", reviewHandler.SetCurrent)
		r.Delete("/review/current", reviewHandler.EndCurrent)

		r.Get("/notes/{id}", noteHandler.GetNote)
		r.Put("/notes/{id}", noteHandler.PutNote)
	})

	r.Handle("/ws", app.hub)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
