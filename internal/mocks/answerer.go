package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-assist/internal/domain"
	"github.com/phrazzld/scry-assist/internal/generation"
)

// Ensure MockAnswerer implements generation.Answerer
var _ generation.Answerer = (*MockAnswerer)(nil)

// MockAnswerer implements generation.Answerer for testing.
type MockAnswerer struct {
	// AnswerFn overrides the Answer behavior when set
	AnswerFn func(ctx context.Context, question string, settings domain.Settings) string

	// Response is returned when AnswerFn is nil
	Response string

	mu        sync.Mutex
	questions []string
	settings  []domain.Settings
}

// Answer implements generation.Answerer.
func (m *MockAnswerer) Answer(ctx context.Context, question string, settings domain.Settings) string {
	m.mu.Lock()
	m.questions = append(m.questions, question)
	m.settings = append(m.settings, settings)
	fn, response := m.AnswerFn, m.Response
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, question, settings)
	}
	return response
}

// SetAnswerFn replaces AnswerFn while calls may be in progress.
func (m *MockAnswerer) SetAnswerFn(fn func(ctx context.Context, question string, settings domain.Settings) string) {
	m.mu.Lock()
	m.AnswerFn = fn
	m.mu.Unlock()
}

// Questions returns the questions passed to Answer, in call order.
func (m *MockAnswerer) Questions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.questions...)
}

// Settings returns the settings snapshots passed to Answer, in call order.
func (m *MockAnswerer) Settings() []domain.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Settings(nil), m.settings...)
}

// CallCount returns how many times Answer was called.
func (m *MockAnswerer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.questions)
}
