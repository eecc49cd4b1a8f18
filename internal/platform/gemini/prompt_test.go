package gemini

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.APIKey = "AIzaTestKey0123456789abcdefghijklmnopq"
	s.Model = "gemini-test"
	s.SystemPrompt = "S"
	s.ContextMessages = []domain.ContextMessage{
		{Role: domain.RoleUser, Content: "A"},
		{Role: domain.RoleAssistant, Content: "B"},
	}
	return s
}

func TestBuildTurns(t *testing.T) {
	t.Parallel()

	turns := BuildTurns(sampleSettings(), "Q", "ack")

	assert.Equal(t, []domain.Turn{
		{Speaker: domain.SpeakerUser, Text: "S"},
		{Speaker: domain.SpeakerModel, Text: "ack"},
		{Speaker: domain.SpeakerUser, Text: "A"},
		{Speaker: domain.SpeakerModel, Text: "B"},
		{Speaker: domain.SpeakerUser, Text: "Q"},
	}, turns)
}

func TestBuildTurnsIsDeterministic(t *testing.T) {
	t.Parallel()

	s := sampleSettings()
	first := BuildTurns(s, "Q", "ack")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildTurns(s, "Q", "ack"))
	}
}

func TestBuildTurnsLengthAndRoles(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 20; n++ {
		s := domain.DefaultSettings()
		s.ContextMessages = nil
		for i := 0; i < n; i++ {
			role := domain.RoleUser
			if i%2 == 1 {
				role = domain.RoleAssistant
			}
			s.ContextMessages = append(s.ContextMessages, domain.ContextMessage{Role: role, Content: "m"})
		}

		turns := BuildTurns(s, "Q", "ack")
		require.Len(t, turns, 2+n+1)
		for i, msg := range s.ContextMessages {
			assert.Equal(t, domain.SpeakerFor(msg.Role), turns[i+2].Speaker)
		}
	}
}

func TestBuildTurnsIgnoresMaxContext(t *testing.T) {
	t.Parallel()

	s := sampleSettings()
	s.MaxContext = 1
	s.ContextMessages = append(s.ContextMessages, s.ContextMessages...)
	assert.Len(t, BuildTurns(s, "Q", "ack"), 7)
}

func TestBuildRequestWireShape(t *testing.T) {
	t.Parallel()

	s := sampleSettings()
	s.Temperature = 0.5
	s.TopP = 0.25
	s.MaxTokens = 321

	raw, err := json.Marshal(BuildRequest(s, BuildTurns(s, "Q", "ack")))
	require.NoError(t, err)

	var decoded struct {
		Contents []struct {
			Role  string `json:"role"`
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
		GenerationConfig map[string]any `json:"generationConfig"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	require.Len(t, decoded.Contents, 5)
	assert.Equal(t, "model", decoded.Contents[1].Role)
	assert.Equal(t, "ack", decoded.Contents[1].Parts[0].Text)
	assert.Equal(t, map[string]any{
		"temperature":     0.5,
		"topP":            0.25,
		"maxOutputTokens": float64(321),
	}, decoded.GenerationConfig)
}

func TestEndpoint(t *testing.T) {
	t.Parallel()

	s := sampleSettings()
	s.APIURL = "https://example.test"
	s.APIKey = "k3y"
	assert.Equal(t,
		"https://example.test/v1beta/models/gemini-test:generateContent?key=k3y",
		Endpoint(s))
}
