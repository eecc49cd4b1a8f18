package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/scry-assist/internal/platform/logger"
	"github.com/phrazzld/scry-assist/internal/store"
)

// PostgresSettingsStore keeps the settings document in the single row of
// assistant_settings.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresSettingsStore implements store.DocumentStore interface
var _ store.DocumentStore = (*PostgresSettingsStore)(nil)

// NewPostgresSettingsStore creates a PostgresSettingsStore.
// If logger is nil, a default logger will be used.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Get implements store.DocumentStore.Get.
func (s *PostgresSettingsStore) Get(ctx context.Context) ([]byte, bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT document FROM assistant_settings WHERE id = 1`).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("settings document not stored yet")
		return nil, false, nil
	}
	if err != nil {
		log.Error("failed to read settings document", slog.String("error", err.Error()))
		return nil, false, store.NewStoreError("settings", "get", "failed to read document",
			errors.Join(store.ErrUnavailable, MapError(err)))
	}
	return doc, true, nil
}

// Set implements store.DocumentStore.Set. The row is replaced as a whole.
func (s *PostgresSettingsStore) Set(ctx context.Context, doc []byte) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO assistant_settings (id, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE
		SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, doc); err != nil {
		log.Error("failed to write settings document", slog.String("error", err.Error()))
		return store.NewStoreError("settings", "set", "failed to write document", MapError(err))
	}

	log.Debug("settings document written", slog.Int("bytes", len(doc)))
	return nil
}
