package api

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/review"
	"github.com/phrazzld/scry-assist/internal/service/assist"
)

// CommandAIGenerate is the command that generates an answer for the note
// under review.
const CommandAIGenerate = "aiGenerate"

// CommandRequest is the body of POST /api/commands.
type CommandRequest struct {
	Command string `json:"command" validate:"required"`
}

// CommandResponse reports whether a command was handled. TaskID is set for
// commands running in the background; Result for commands run with wait=true.
type CommandResponse struct {
	Handled bool           `json:"handled"`
	TaskID  string         `json:"task_id,omitempty"`
	Result  *assist.Result `json:"result,omitempty"`
}

// ContextPair is one priming exchange as edited in the settings form.
type ContextPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SettingsRequest is the body of PUT /api/settings. It replaces the whole
// settings document.
type SettingsRequest struct {
	APIKey        string        `json:"apikey"`
	APIURL        string        `json:"apiurl" validate:"required,url"`
	Model         string        `json:"model" validate:"required"`
	MaxContext    int           `json:"max_context" validate:"gte=1,lte=20"`
	Temperature   float64       `json:"temperature" validate:"gte=0,lte=2"`
	TopP          float64       `json:"top_p" validate:"gte=0,lte=1"`
	MaxTokens     int           `json:"max_tokens" validate:"gte=100,lte=4000"`
	SystemPrompt  string        `json:"system_prompt"`
	QuestionField string        `json:"question_field" validate:"required"`
	AnswerField   string        `json:"answer_field" validate:"required"`
	ContextPairs  []ContextPair `json:"context_pairs"`
}

// SettingsResponse is the settings document as shown in the settings form.
type SettingsResponse struct {
	APIKey        string        `json:"apikey"`
	APIKeySet     bool          `json:"apikey_set"`
	APIURL        string        `json:"apiurl"`
	Model         string        `json:"model"`
	MaxContext    int           `json:"max_context"`
	Temperature   float64       `json:"temperature"`
	TopP          float64       `json:"top_p"`
	MaxTokens     int           `json:"max_tokens"`
	SystemPrompt  string        `json:"system_prompt"`
	QuestionField string        `json:"question_field"`
	AnswerField   string        `json:"answer_field"`
	ContextPairs  []ContextPair `json:"context_pairs"`
}

// ReviewRequest is the body of PUT /api/review/current.
type ReviewRequest struct {
	NoteID uuid.UUID          `json:"note_id" validate:"required"`
	State  domain.ReviewState `json:"state" validate:"required,oneof=question answer"`
}

// ReviewResponse describes the note on screen.
type ReviewResponse struct {
	NoteID    string    `json:"note_id"`
	State     string    `json:"state"`
	StartedAt time.Time `json:"started_at"`
}

// NoteRequest is the body of PUT /api/notes/{id}.
type NoteRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

// NoteResponse represents a mirrored note.
type NoteResponse struct {
	ID        string            `json:"id"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// MaskAPIKey hides all but the last four characters of key.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// settingsToResponse converts a settings document to its form representation.
func settingsToResponse(s domain.Settings, reveal bool) SettingsResponse {
	key := MaskAPIKey(s.APIKey)
	if reveal {
		key = s.APIKey
	}

	pairs := make([]ContextPair, 0, len(s.ContextMessages)/2)
	for _, p := range s.Pairs() {
		pairs = append(pairs, ContextPair{Question: p[0].Content, Answer: p[1].Content})
	}

	return SettingsResponse{
		APIKey:        key,
		APIKeySet:     s.APIKey != "",
		APIURL:        s.APIURL,
		Model:         s.Model,
		MaxContext:    s.MaxContext,
		Temperature:   s.Temperature,
		TopP:          s.TopP,
		MaxTokens:     s.MaxTokens,
		SystemPrompt:  s.SystemPrompt,
		QuestionField: s.QuestionField,
		AnswerField:   s.AnswerField,
		ContextPairs:  pairs,
	}
}

// toSettings builds the document to store. A key equal to the mask of
// storedKey keeps storedKey.
func (req SettingsRequest) toSettings(storedKey string) domain.Settings {
	key := strings.TrimSpace(req.APIKey)
	if storedKey != "" && key == MaskAPIKey(storedKey) {
		key = storedKey
	}

	pairs := make([][2]string, 0, len(req.ContextPairs))
	for _, p := range req.ContextPairs {
		pairs = append(pairs, [2]string{p.Question, p.Answer})
	}

	return domain.Settings{
		APIKey:          key,
		APIURL:          strings.TrimSpace(req.APIURL),
		Model:           strings.TrimSpace(req.Model),
		MaxContext:      req.MaxContext,
		Temperature:     req.Temperature,
		TopP:            req.TopP,
		MaxTokens:       req.MaxTokens,
		SystemPrompt:    req.SystemPrompt,
		QuestionField:   strings.TrimSpace(req.QuestionField),
		AnswerField:     strings.TrimSpace(req.AnswerField),
		ContextMessages: domain.ContextFromPairs(pairs),
	}
}

func reviewToResponse(c review.Current) ReviewResponse {
	return ReviewResponse{
		NoteID:    c.NoteID.String(),
		State:     string(c.State),
		StartedAt: c.StartedAt,
	}
}

func noteToResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID.String(),
		Fields:    n.Fields,
		UpdatedAt: n.UpdatedAt,
	}
}
