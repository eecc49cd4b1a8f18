package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Role identifies the author of a stored context message.
type Role string

// Possible context message roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Settings validation errors
var (
	// ErrSettingsInvalid is returned when a settings document violates the
	// ranges enforced by the editing surface.
	ErrSettingsInvalid = errors.New("invalid settings")

	// ErrAPIKeyEmpty is returned when a call is attempted without an API key.
	ErrAPIKeyEmpty = errors.New("api key cannot be empty")
)

var settingsValidator = newSettingsValidator()

// newSettingsValidator reports fields by their document key.
func newSettingsValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ContextMessage is one stored priming message. Messages are kept in
// (user, assistant) pairs.
type ContextMessage struct {
	Role    Role   `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content"`
}

// Settings is the persisted assistant configuration document. The JSON keys
// are the on-disk keys of the document and must not change.
type Settings struct {
	APIKey          string           `json:"apikey"`
	APIURL          string           `json:"apiurl" validate:"required"`
	Model           string           `json:"model" validate:"required"`
	MaxContext      int              `json:"max_context" validate:"gte=1,lte=20"`
	Temperature     float64          `json:"temperature" validate:"gte=0,lte=2"`
	TopP            float64          `json:"top_p" validate:"gte=0,lte=1"`
	MaxTokens       int              `json:"max_tokens" validate:"gte=100,lte=4000"`
	SystemPrompt    string           `json:"system_prompt"`
	QuestionField   string           `json:"question_field" validate:"required"`
	AnswerField     string           `json:"answer_field" validate:"required"`
	ContextMessages []ContextMessage `json:"context_messages" validate:"dive"`
}

// DefaultSettings returns the built-in document written on first use.
func DefaultSettings() Settings {
	return Settings{
		APIKey:      "",
		APIURL:      "https://generativelanguage.googleapis.com",
		Model:       "gemini-2.0-flash",
		MaxContext:  5,
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   1000,
		SystemPrompt: "You are a study assistant. Answer the flashcard question " +
			"concisely and accurately. Reply with the answer only.",
		QuestionField:   "Front",
		AnswerField:     "Back",
		ContextMessages: []ContextMessage{},
	}
}

// Validate checks the document against the ranges the settings form enforces.
// The resolver never calls this; stored values pass through unmodified.
func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsInvalid, err)
	}
	return nil
}

// Pairs returns the context messages grouped as (user, assistant) pairs.
// A trailing unpaired message is ignored.
func (s Settings) Pairs() [][2]ContextMessage {
	pairs := make([][2]ContextMessage, 0, len(s.ContextMessages)/2)
	for i := 0; i+1 < len(s.ContextMessages); i += 2 {
		pairs = append(pairs, [2]ContextMessage{s.ContextMessages[i], s.ContextMessages[i+1]})
	}
	return pairs
}

// ContextFromPairs rebuilds the flat context message list from edited pairs.
// Both sides are trimmed and a pair whose user text is empty is dropped.
func ContextFromPairs(pairs [][2]string) []ContextMessage {
	messages := make([]ContextMessage, 0, len(pairs)*2)
	for _, p := range pairs {
		user := strings.TrimSpace(p[0])
		if user == "" {
			continue
		}
		messages = append(messages,
			ContextMessage{Role: RoleUser, Content: user},
			ContextMessage{Role: RoleAssistant, Content: strings.TrimSpace(p[1])},
		)
	}
	return messages
}
