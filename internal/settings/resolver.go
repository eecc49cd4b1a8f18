package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/platform/logger"
	"github.com/phrazzld/scry-assist/internal/redact"
	"github.com/phrazzld/scry-assist/internal/store"
)

// Resolver errors
var (
	// ErrConfigUnavailable is returned when the settings document cannot be
	// read or decoded. No network call may be made after this error.
	ErrConfigUnavailable = errors.New("settings unavailable")

	// ErrConfigWrite is returned when the settings document cannot be persisted.
	ErrConfigWrite = errors.New("failed to save settings")
)

// Resolver loads and saves the settings document through a DocumentStore.
type Resolver struct {
	store    store.DocumentStore
	defaults domain.Settings
	logger   *slog.Logger
}

// NewResolver creates a Resolver backed by the given store, seeded with
// domain.DefaultSettings.
func NewResolver(docs store.DocumentStore, logger *slog.Logger) *Resolver {
	if docs == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("document store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Resolver{
		store:    docs,
		defaults: domain.DefaultSettings(),
		logger:   logger.With(slog.String("component", "settings_resolver")),
	}
}

// WithDefaults returns a copy of the resolver that seeds and back-fills from d.
func (r *Resolver) WithDefaults(d domain.Settings) *Resolver {
	clone := *r
	clone.defaults = d
	return &clone
}

// Load returns the resolved settings snapshot for one invocation.
//
// An absent document is replaced by the defaults, which are persisted and
// returned verbatim. A present document gets every missing default key
// inserted; when anything was inserted the merged document is written back
// exactly once.
func (r *Resolver) Load(ctx context.Context) (domain.Settings, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	raw, found, err := r.store.Get(ctx)
	if err != nil {
		log.Error("failed to read settings document", slog.String("error", redact.Error(err)))
		return domain.Settings{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	if !found {
		log.Info("no settings document found, writing defaults")
		doc, err := marshalDocument(r.defaults)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
		}
		if err := r.store.Set(ctx, doc); err != nil {
			log.Warn("failed to persist default settings", slog.String("error", redact.Error(err)))
		}
		return r.defaults, nil
	}

	merged, inserted, err := r.backfill(raw)
	if err != nil {
		log.Error("stored settings document is not a JSON object", slog.String("error", err.Error()))
		return domain.Settings{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	if len(inserted) > 0 {
		log.Info("back-filled missing settings keys", slog.Any("keys", inserted))
		if err := r.store.Set(ctx, merged); err != nil {
			// The merged snapshot is still usable for this invocation.
			log.Warn("failed to persist merged settings", slog.String("error", redact.Error(err)))
		}
	}

	var s domain.Settings
	if err := json.Unmarshal(merged, &s); err != nil {
		log.Error("failed to decode settings document", slog.String("error", err.Error()))
		return domain.Settings{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	return s, nil
}

// Save replaces the stored document with s. There is no partial merge.
func (r *Resolver) Save(ctx context.Context, s domain.Settings) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	if s.ContextMessages == nil {
		s.ContextMessages = []domain.ContextMessage{}
	}

	doc, err := marshalDocument(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfigWrite, err)
	}

	if err := r.store.Set(ctx, doc); err != nil {
		log.Error("failed to save settings document", slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %v", ErrConfigWrite, err)
	}

	log.Info("settings saved",
		slog.String("model", s.Model),
		slog.Int("context_messages", len(s.ContextMessages)))
	return nil
}

// backfill inserts every default key missing from raw. Keys the defaults do
// not know about are preserved untouched.
func (r *Resolver) backfill(raw []byte) ([]byte, []string, error) {
	var stored map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, nil, err
	}
	if stored == nil {
		return nil, nil, errors.New("settings document is null")
	}

	defaultDoc, err := marshalDocument(r.defaults)
	if err != nil {
		return nil, nil, err
	}
	var defaults map[string]json.RawMessage
	if err := json.Unmarshal(defaultDoc, &defaults); err != nil {
		return nil, nil, err
	}

	var inserted []string
	for key, value := range defaults {
		if _, ok := stored[key]; !ok {
			stored[key] = value
			inserted = append(inserted, key)
		}
	}

	if len(inserted) == 0 {
		return raw, nil, nil
	}

	merged, err := marshalDocument(stored)
	if err != nil {
		return nil, nil, err
	}
	return merged, inserted, nil
}

// marshalDocument writes indented JSON without HTML escaping so prompts
// containing <, > or & stay readable in the stored file.
func marshalDocument(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
