package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/ZaguanLabs/transly"
)

// MockProvider is an offline provider for tests and dry experiments.
// Unknown texts are returned as "[<target>] <text>".
type MockProvider struct {
	mu           sync.Mutex
	Translations map[string]string // Map of source text to translation
	Failing      map[string]bool   // Texts that fail with a ProviderError
	FailAll      bool              // Fail every call
	calls        int
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":       "Bonjour",
			"World":       "Monde",
			"Hello World": "Bonjour le monde",
		},
		Failing: make(map[string]bool),
	}
}

// Name implements transly.Named.
func (m *MockProvider) Name() string {
	return "mock"
}

// Translate returns the configured translation or a bracketed echo.
func (m *MockProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	if err := ctx.Err(); err != nil {
		return "", &transly.ProviderError{Message: "request aborted", Cause: err}
	}
	if m.FailAll || m.Failing[text] {
		return "", &transly.ProviderError{Message: "mock failure", StatusCode: 500}
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s] %s", targetLang, text), nil
}

// CallCount returns the number of Translate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Reset resets the call count.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = 0
}

var (
	_ Provider      = (*MockProvider)(nil)
	_ transly.Named = (*MockProvider)(nil)
)
