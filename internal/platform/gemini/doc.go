// Package gemini implements the generation.Answerer interface against the
// Gemini generateContent HTTP endpoint.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the review assistant to Google's generative-language service.
// It speaks the wire format through the request and response types of the
// google.golang.org/genai module but owns the HTTP exchange itself, since the
// endpoint is addressed through the user-configured base URL and API key.
//
// Key components:
//
// 1. Prompt assembly (prompt.go):
//   - Builds the turn sequence: system prompt, acknowledgement, context pairs, question
//   - Wraps the turns and sampling parameters into a request body
//   - Composes the model endpoint URL
//
// 2. Classification (classify.go):
//   - Maps a decoded response onto a generation.Outcome
//   - Detects the retry marker through a pluggable predicate
//
// 3. Engine (engine.go):
//   - Performs the HTTP exchange with a bounded timeout
//   - Retries on the marker with a constant delay and a hard attempt cap
//   - Redacts the API key from every transport diagnostic
package gemini
