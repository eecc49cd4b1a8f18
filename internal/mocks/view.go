package mocks

import (
	"context"
	"sync"
)

// Refresh is one recorded field refresh.
type Refresh struct {
	Field string
	HTML  string
}

// MockLiveView records field refreshes. RefreshField reports Connected.
type MockLiveView struct {
	Connected bool

	mu        sync.Mutex
	refreshes []Refresh
}

// NewMockLiveView creates a MockLiveView with a page connected.
func NewMockLiveView() *MockLiveView {
	return &MockLiveView{Connected: true}
}

// RefreshField records the refresh if a page is connected.
func (m *MockLiveView) RefreshField(_ context.Context, field, html string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.Connected {
		return false
	}
	m.refreshes = append(m.refreshes, Refresh{Field: field, HTML: html})
	return true
}

// Refreshes returns the recorded refreshes.
func (m *MockLiveView) Refreshes() []Refresh {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Refresh(nil), m.refreshes...)
}

// Fields returns the names of the refreshed fields.
func (m *MockLiveView) Fields() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := make([]string, 0, len(m.refreshes))
	for _, r := range m.refreshes {
		fields = append(fields, r.Field)
	}
	return fields
}

// MockNotifier records tooltips and blocking messages.
type MockNotifier struct {
	mu       sync.Mutex
	tooltips []string
	infos    []string
}

// Tooltip records a transient message.
func (m *MockNotifier) Tooltip(_ context.Context, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tooltips = append(m.tooltips, message)
}

// Inform records a blocking message.
func (m *MockNotifier) Inform(_ context.Context, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, message)
}

// Tooltips returns the recorded transient messages.
func (m *MockNotifier) Tooltips() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tooltips...)
}

// Infos returns the recorded blocking messages.
func (m *MockNotifier) Infos() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.infos...)
}
