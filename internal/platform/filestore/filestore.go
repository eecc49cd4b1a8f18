// Package filestore implements store.DocumentStore as a JSON file, the layout
// the review host keeps next to its add-ons. Writes go to a temporary file in
// the same directory and are renamed into place so a crash never leaves a
// half-written document behind.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/phrazzld/scry-assist/internal/store"
	"github.com/spf13/afero"
)

// DocumentStore stores the settings document at a fixed path.
type DocumentStore struct {
	fs     afero.Fs
	path   string
	logger *slog.Logger
}

// Ensure DocumentStore implements store.DocumentStore interface
var _ store.DocumentStore = (*DocumentStore)(nil)

// New creates a DocumentStore on the OS filesystem.
func New(path string, logger *slog.Logger) *DocumentStore {
	return NewWithFs(afero.NewOsFs(), path, logger)
}

// NewWithFs creates a DocumentStore on an arbitrary afero filesystem.
func NewWithFs(fsys afero.Fs, path string, logger *slog.Logger) *DocumentStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStore{
		fs:     fsys,
		path:   path,
		logger: logger.With(slog.String("component", "settings_file")),
	}
}

// Path returns the location of the document.
func (s *DocumentStore) Path() string {
	return s.path
}

// Get implements store.DocumentStore.Get.
func (s *DocumentStore) Get(ctx context.Context) ([]byte, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.DebugContext(ctx, "settings document does not exist", slog.String("path", s.path))
			return nil, false, nil
		}
		return nil, false, store.NewStoreError("settings", "get", "failed to read document", err)
	}
	return data, true, nil
}

// Set implements store.DocumentStore.Set.
func (s *DocumentStore) Set(ctx context.Context, doc []byte) error {
	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return store.NewStoreError("settings", "set", "failed to create directory", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return store.NewStoreError("settings", "set", "failed to create temporary file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return store.NewStoreError("settings", "set", "failed to write document", err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return store.NewStoreError("settings", "set", "failed to close document", err)
	}

	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return store.NewStoreError("settings", "set", fmt.Sprintf("failed to replace %s", s.path), err)
	}

	s.logger.DebugContext(ctx, "settings document written",
		slog.String("path", s.path),
		slog.Int("bytes", len(doc)))
	return nil
}
