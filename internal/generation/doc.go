// Package generation defines the boundary between the review assistant and
// an external generative-language (LLM) backend such as Gemini. It holds the
// Answerer interface, the discriminated Outcome of one backend round, and the
// sentinel errors used to classify failures. Implementations live under
// internal/platform.
package generation
