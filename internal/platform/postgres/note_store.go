package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/platform/logger"
	"github.com/phrazzld/scry-assist/internal/store"
)

// PostgresNoteStore implements the store.NoteStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresNoteStore implements store.NoteStore interface
var _ store.NoteStore = (*PostgresNoteStore)(nil)

// NewPostgresNoteStore creates a new PostgreSQL implementation of the NoteStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresNoteStore(db store.DBTX, logger *slog.Logger) *PostgresNoteStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// GetByID implements store.NoteStore.GetByID.
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *PostgresNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		note   domain.Note
		fields []byte
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, fields, updated_at FROM notes WHERE id = $1`, id,
	).Scan(&note.ID, &fields, &note.UpdatedAt)
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to get note", slog.String("error", err.Error()), slog.String("note_id", id.String()))
		return nil, MapError(err)
	}

	if err := json.Unmarshal(fields, &note.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode fields of note %s: %w", id, err)
	}
	return &note, nil
}

// Create implements store.NoteStore.Create.
// Returns store.ErrDuplicate if a note with the same ID exists.
func (s *PostgresNoteStore) Create(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	fields, err := json.Marshal(note.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode note fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO notes (id, fields, updated_at) VALUES ($1, $2, $3)`,
		note.ID, fields, note.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("note already exists", slog.String("note_id", note.ID.String()))
		} else {
			log.Warn("failed to create note", slog.String("error", err.Error()), slog.String("note_id", note.ID.String()))
		}
		return MapError(err)
	}

	log.Info("note created", slog.String("note_id", note.ID.String()))
	return nil
}

// Save implements store.NoteStore.Save.
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *PostgresNoteStore) Save(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	fields, err := json.Marshal(note.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode note fields: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE notes SET fields = $2, updated_at = $3 WHERE id = $1`,
		note.ID, fields, note.UpdatedAt)
	if err != nil {
		log.Error("failed to save note", slog.String("error", err.Error()), slog.String("note_id", note.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "note"); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNoteNotFound
		}
		return err
	}

	log.Debug("note saved", slog.String("note_id", note.ID.String()))
	return nil
}
