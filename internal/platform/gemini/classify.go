package gemini

import (
	"strings"

	"github.com/phrazzld/scry-assist/internal/generation"
	"google.golang.org/genai"
)

// RetryPredicate reports whether answer text asks for the request to be sent
// again instead of being a final answer.
type RetryPredicate func(text string) bool

// MarkerPredicate matches text containing marker. An empty marker never matches.
func MarkerPredicate(marker string) RetryPredicate {
	return func(text string) bool {
		return marker != "" && strings.Contains(text, marker)
	}
}

// Classify maps a decoded generateContent response onto an outcome.
//
// Only the first candidate is consulted. Its text is the concatenation of
// its non-thought text parts.
//
// Parameters:
//   - resp: The decoded response body, nil is treated as malformed
//   - retry: Predicate that recognizes a retry request in the answer text
//
// Returns:
//   - The classified outcome of the round
func Classify(resp *genai.GenerateContentResponse, retry RetryPredicate) generation.Outcome {
	if resp == nil {
		return generation.Malformed()
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return generation.Blocked(string(resp.PromptFeedback.BlockReason))
		}
		return generation.Malformed()
	}

	candidate := resp.Candidates[0]
	if candidate == nil {
		return generation.Malformed()
	}

	text, ok := candidateText(candidate)
	if !ok {
		if candidate.FinishReason == genai.FinishReasonSafety {
			return generation.Filtered(string(candidate.FinishReason))
		}
		return generation.Empty(string(candidate.FinishReason))
	}

	if retry != nil && retry(text) {
		return generation.RetrySignal()
	}

	return generation.Success(text)
}

func candidateText(c *genai.Candidate) (string, bool) {
	if c.Content == nil || len(c.Content.Parts) == 0 {
		return "", false
	}

	var b strings.Builder
	found := false
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		b.WriteString(part.Text)
		found = true
	}
	return b.String(), found
}
