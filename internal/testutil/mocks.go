package testutil

import (
	"context"
	"errors"
	"fmt"
)

// ErrMockTranslation is returned by MockTranslator for configured failures
var ErrMockTranslation = errors.New("mock translation failure")

// MockTranslator mocks a translation provider
type MockTranslator struct {
	Translations map[string]string
	Errors       map[string]error
	// FailAll makes every call fail
	FailAll bool
	// Format renders the default translation; it receives the target
	// language and the source text. Defaults to "<target>:<text>".
	Format func(target, text string) string
	Calls  []string
}

// Translate mocks translating text
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	call := fmt.Sprintf("Translate: %s (%s->%s)", text, fromLang, toLang)
	m.Calls = append(m.Calls, call)

	if m.FailAll {
		return "", ErrMockTranslation
	}

	if err, ok := m.Errors[text]; ok {
		return "", err
	}

	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	if m.Format != nil {
		return m.Format(toLang, text), nil
	}
	return fmt.Sprintf("%s:%s", toLang, text), nil
}

// Name returns the mock provider name
func (m *MockTranslator) Name() string {
	return "mock"
}

// IsAvailable always succeeds
func (m *MockTranslator) IsAvailable() error {
	return nil
}
