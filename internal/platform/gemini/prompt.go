package gemini

import (
	"fmt"

	"github.com/phrazzld/scry-assist/internal/domain"
	"google.golang.org/genai"
)

// apiVersion is the fixed version segment of the endpoint path.
const apiVersion = "v1beta"

// Request is the generateContent request body.
type Request struct {
	Contents         []*genai.Content        `json:"contents"`
	GenerationConfig *genai.GenerationConfig `json:"generationConfig"`
}

// BuildTurns assembles the ordered prompt for one question.
//
// The sequence is the system prompt as a user turn, the acknowledgement as a
// model turn, every stored context message in stored order, and finally the
// question. Context messages are not truncated against MaxContext.
//
// Parameters:
//   - settings: The settings snapshot for this invocation
//   - question: The question field's text
//   - acknowledgement: The fixed model reply to the system prompt
//
// Returns:
//   - A slice of exactly len(settings.ContextMessages)+3 turns
func BuildTurns(settings domain.Settings, question, acknowledgement string) []domain.Turn {
	turns := make([]domain.Turn, 0, len(settings.ContextMessages)+3)
	turns = append(turns,
		domain.Turn{Speaker: domain.SpeakerUser, Text: settings.SystemPrompt},
		domain.Turn{Speaker: domain.SpeakerModel, Text: acknowledgement},
	)
	for _, msg := range settings.ContextMessages {
		turns = append(turns, domain.Turn{Speaker: domain.SpeakerFor(msg.Role), Text: msg.Content})
	}
	return append(turns, domain.Turn{Speaker: domain.SpeakerUser, Text: question})
}

// BuildRequest wraps turns and the sampling parameters of settings into a
// request body. Values outside the documented ranges are passed through.
func BuildRequest(settings domain.Settings, turns []domain.Turn) *Request {
	contents := make([]*genai.Content, 0, len(turns))
	for _, turn := range turns {
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(turn.Speaker)))
	}

	return &Request{
		Contents: contents,
		GenerationConfig: &genai.GenerationConfig{
			Temperature:     genai.Ptr(float32(settings.Temperature)),
			TopP:            genai.Ptr(float32(settings.TopP)),
			MaxOutputTokens: int32(settings.MaxTokens),
		},
	}
}

// Endpoint composes the generateContent URL for settings. The base URL is
// used as stored, so it must not end with a slash.
func Endpoint(settings domain.Settings) string {
	return fmt.Sprintf("%s/%s/models/%s:generateContent?key=%s",
		settings.APIURL, apiVersion, settings.Model, settings.APIKey)
}
