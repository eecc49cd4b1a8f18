package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-assist/internal/config"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/platform/filestore"
	"github.com/phrazzld/scry-assist/internal/platform/gemini"
	"github.com/phrazzld/scry-assist/internal/platform/liveview"
	"github.com/phrazzld/scry-assist/internal/platform/memstore"
	"github.com/phrazzld/scry-assist/internal/platform/metrics"
	"github.com/phrazzld/scry-assist/internal/platform/postgres"
	"github.com/phrazzld/scry-assist/internal/review"
	"github.com/phrazzld/scry-assist/internal/service/assist"
	"github.com/phrazzld/scry-assist/internal/settings"
	"github.com/phrazzld/scry-assist/internal/store"
	"github.com/phrazzld/scry-assist/internal/task"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	documents store.DocumentStore
	notes     store.NoteStore

	settings   *settings.Resolver
	engine     *gemini.Engine
	hub        *liveview.Hub
	session    *review.Session
	assist     *assist.Service
	taskRunner *task.TaskRunner
}

// newApplication creates a new application instance with all dependencies
// initialized and the task runner started.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	app.settings = settings.NewResolver(app.documents, logger).WithDefaults(settingsDefaults(cfg.Settings))

	var err error
	app.engine, err = gemini.NewEngine(
		logger.With("component", "response_engine"),
		cfg.LLM,
		gemini.WithObserver(app.metrics),
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize response engine: %w", err)
	}

	app.hub = liveview.NewHub(logger)
	app.session = review.NewSession()

	app.assist, err = assist.NewService(assist.Dependencies{
		Settings: app.settings,
		Notes:    app.notes,
		Answerer: app.engine,
		Review:   app.session,
		View:     app.hub,
		Notifier: app.hub,
	}, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create assist service: %w", err)
	}

	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Worker.Count,
		QueueSize:   cfg.Worker.QueueSize,
	}, logger)
	app.taskRunner.SetErrorHandler(func(t task.Task, err error) {
		logger.Warn("background command failed",
			slog.String("task_id", t.ID().String()),
			slog.String("task_type", t.Type()),
			slog.String("error", err.Error()))
	})
	app.taskRunner.Start()

	logger.Info("application initialized",
		slog.Int("workers", cfg.Worker.Count),
		slog.Int("max_attempts", app.engine.Policy().MaxAttempts))
	return app, nil
}

// setupStores selects the settings document and note stores for the
// configured backend, connecting and migrating the database if needed.
func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Settings.Backend {
	case "postgres":
		db, err := postgres.Open(ctx, app.config.Database.URL, app.logger)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(ctx, db, app.logger); err != nil {
			_ = db.Close()
			return err
		}
		app.db = db
		app.documents = postgres.NewPostgresSettingsStore(db, app.logger)
		app.notes = postgres.NewPostgresNoteStore(db, app.logger)
	default:
		docs := filestore.New(app.config.Settings.Path, app.logger)
		app.logger.Info("using settings file", slog.String("path", docs.Path()))
		app.documents = docs
		app.notes = memstore.NewNoteStore()
	}

	app.logger.Info("stores ready", slog.String("backend", app.config.Settings.Backend))
	return nil
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

// settingsDefaults returns the built-in settings with the configured
// overrides applied.
func settingsDefaults(cfg config.SettingsConfig) domain.Settings {
	d := domain.DefaultSettings()
	if cfg.DefaultAPIURL != "" {
		d.APIURL = cfg.DefaultAPIURL
	}
	if cfg.DefaultModel != "" {
		d.Model = cfg.DefaultModel
	}
	return d
}
