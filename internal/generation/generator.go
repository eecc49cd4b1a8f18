package generation

import (
	"context"

	"github.com/phrazzld/scry-assist/internal/domain"
)

// Answerer defines the interface for answering a flashcard question.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Answerer interface {
	// Answer returns the text to write into the answer field. It never fails:
	// every failure is rendered as a human-readable diagnostic string.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - question: The question field's text
	//   - settings: The settings snapshot resolved for this invocation
	Answer(ctx context.Context, question string, settings domain.Settings) string
}
