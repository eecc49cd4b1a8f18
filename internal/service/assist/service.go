package assist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/generation"
	"github.com/phrazzld/scry-assist/internal/platform/logger"
	"github.com/phrazzld/scry-assist/internal/redact"
	"github.com/phrazzld/scry-assist/internal/review"
	"github.com/phrazzld/scry-assist/internal/store"
)

// SettingsLoader resolves the settings snapshot for one invocation.
type SettingsLoader interface {
	Load(ctx context.Context) (domain.Settings, error)
}

// ReviewTracker reports the note currently on screen.
type ReviewTracker interface {
	Current() (review.Current, error)
}

// LiveView refreshes a field on the review page. RefreshField reports false
// when no page is showing.
type LiveView interface {
	RefreshField(ctx context.Context, field, html string) bool
}

// Notifier shows messages to the user.
type Notifier interface {
	// Tooltip shows a transient status message.
	Tooltip(ctx context.Context, message string)
	// Inform shows a blocking informational dialog.
	Inform(ctx context.Context, message string)
}

// Result describes a completed generation.
type Result struct {
	NoteID uuid.UUID `json:"note_id"`
	// Answer is the HTML written into the answer field.
	Answer string `json:"answer"`
	// Stored is false when the field already held the same answer.
	Stored bool `json:"stored"`
	// Refreshed is true when a review page received the new answer.
	Refreshed bool `json:"refreshed"`
}

// Dependencies groups the collaborators of a Service.
type Dependencies struct {
	Settings SettingsLoader
	Notes    store.NoteStore
	Answerer generation.Answerer
	Review   ReviewTracker
	View     LiveView
	Notifier Notifier
}

// Service generates answers for the note under review.
type Service struct {
	deps   Dependencies
	logger *slog.Logger

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewService creates a Service.
// It returns an error if any dependency is nil.
func NewService(deps Dependencies, log *slog.Logger) (*Service, error) {
	switch {
	case log == nil:
		return nil, errors.New("logger cannot be nil")
	case deps.Settings == nil:
		return nil, errors.New("settings loader cannot be nil")
	case deps.Notes == nil:
		return nil, errors.New("note store cannot be nil")
	case deps.Answerer == nil:
		return nil, errors.New("answerer cannot be nil")
	case deps.Review == nil:
		return nil, errors.New("review tracker cannot be nil")
	case deps.View == nil:
		return nil, errors.New("live view cannot be nil")
	case deps.Notifier == nil:
		return nil, errors.New("notifier cannot be nil")
	}

	return &Service{
		deps:     deps,
		logger:   log.With("component", "assist_service"),
		inFlight: make(map[uuid.UUID]struct{}),
	}, nil
}

// Generate answers the question of the note under review.
//
// The answer, or a diagnostic produced by the Answerer, is converted to HTML
// line breaks and written to the answer field when it differs from the stored
// value. If the answer side is on screen the page is refreshed as well; with
// no page connected that step is skipped silently.
//
// A second call for a note whose answer is still being generated fails with
// ErrBusy. Any panic is recovered and reported as ErrPanic.
func (s *Service) Generate(ctx context.Context) (result *Result, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "recovered from panic during answer generation",
				"panic", redact.String(fmt.Sprint(r)),
				"stack", string(debug.Stack()))
			s.deps.Notifier.Inform(ctx, fmt.Sprintf(msgUnexpected, r))
			result = nil
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	current, err := s.deps.Review.Current()
	if err != nil {
		s.deps.Notifier.Inform(ctx, msgNotReviewing)
		return nil, fmt.Errorf("%w: %v", ErrNotReviewing, err)
	}

	if !s.acquire(current.NoteID) {
		s.deps.Notifier.Tooltip(ctx, msgBusy)
		return nil, fmt.Errorf("%w: note %s", ErrBusy, current.NoteID)
	}
	defer s.release(current.NoteID)

	log = log.With("note_id", current.NoteID)

	settings, err := s.deps.Settings.Load(ctx)
	if err != nil {
		log.ErrorContext(ctx, "failed to load settings", "error", redact.Error(err))
		s.deps.Notifier.Inform(ctx, fmt.Sprintf(msgSettingsFailed, redact.Error(err)))
		return nil, fmt.Errorf("%w: %v", ErrSettingsUnavailable, err)
	}

	note, err := s.deps.Notes.GetByID(ctx, current.NoteID)
	if err != nil {
		log.ErrorContext(ctx, "failed to load note", "error", redact.Error(err))
		s.deps.Notifier.Inform(ctx, fmt.Sprintf(msgNoteNotFound, redact.Error(err)))
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoteNotFound, current.NoteID)
		}
		return nil, fmt.Errorf("failed to load note %s: %w", current.NoteID, err)
	}

	for _, field := range []string{settings.QuestionField, settings.AnswerField} {
		if !note.Has(field) {
			s.deps.Notifier.Inform(ctx, fmt.Sprintf(msgMissingField, field))
			return nil, fmt.Errorf("%w: %q", ErrMissingHostField, field)
		}
	}

	question := note.Field(settings.QuestionField)
	if strings.TrimSpace(question) == "" {
		s.deps.Notifier.Inform(ctx, fmt.Sprintf(msgEmptyQuestion, settings.QuestionField))
		return nil, fmt.Errorf("%w: %q", ErrEmptyQuestion, settings.QuestionField)
	}

	if settings.APIKey == "" {
		s.deps.Notifier.Inform(ctx, msgNoAPIKey)
		return nil, domain.ErrAPIKeyEmpty
	}

	s.deps.Notifier.Tooltip(ctx, msgAsking)

	answer := ToHTML(s.deps.Answerer.Answer(ctx, question, settings))

	result = &Result{NoteID: note.ID, Answer: answer}
	if note.SetField(settings.AnswerField, answer) {
		if err := s.deps.Notes.Save(ctx, note); err != nil {
			log.ErrorContext(ctx, "failed to save answer", "error", redact.Error(err))
			s.deps.Notifier.Inform(ctx, fmt.Sprintf(msgSaveFailed, redact.Error(err)))
			return nil, fmt.Errorf("%w: %v", ErrSaveFailed, err)
		}
		result.Stored = true
	}

	// the user may have flipped the card while the request was running
	if now, err := s.deps.Review.Current(); err == nil &&
		now.NoteID == note.ID && now.State == domain.ReviewStateAnswer {
		result.Refreshed = s.deps.View.RefreshField(ctx, settings.AnswerField, answer)
	}

	log.InfoContext(ctx, "answer written",
		"stored", result.Stored,
		"refreshed", result.Refreshed,
		"answer_length", len(answer))
	s.deps.Notifier.Tooltip(ctx, msgDone)

	return result, nil
}

func (s *Service) acquire(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *Service) release(id uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, id)
	s.mu.Unlock()
}

var lineBreaks = strings.NewReplacer("\r\n", "<br>", "\n", "<br>")

// ToHTML converts CRLF and LF line endings to <br>.
func ToHTML(text string) string {
	return lineBreaks.Replace(text)
}
