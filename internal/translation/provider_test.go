package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/langsync/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider != "openai" {
		t.Errorf("Expected default provider 'openai', got '%s'", config.Provider)
	}
	if config.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Expected default model 'gpt-4o-mini', got '%s'", config.OpenAIModel)
	}
	if config.Timeout != 30*time.Second {
		t.Errorf("Expected default timeout 30s, got %v", config.Timeout)
	}
	if config.BreakerFailures == 0 {
		t.Error("Expected circuit breaker to be enabled by default")
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		wantErr  string
		wantName string
		wantType string
	}{
		{
			name:    "unknown provider",
			config:  &Config{Provider: "babelfish"},
			wantErr: "unknown translation provider: babelfish",
		},
		{
			name:    "openai without key",
			config:  &Config{Provider: "openai"},
			wantErr: "OpenAI API key is required",
		},
		{
			name:    "gemini without key",
			config:  &Config{Provider: "gemini"},
			wantErr: "Gemini API key is required",
		},
		{
			name:     "openai without breaker",
			config:   &Config{Provider: "openai", OpenAIKey: "test-key"},
			wantName: "openai",
			wantType: "*translation.OpenAIProvider",
		},
		{
			name:     "openai with breaker",
			config:   &Config{Provider: "openai", OpenAIKey: "test-key", BreakerFailures: 3, BreakerCooldown: time.Second},
			wantName: "openai",
			wantType: "*translation.BreakerProvider",
		},
		{
			name:    "broken fallback",
			config:  &Config{Provider: "openai", OpenAIKey: "test-key", Fallback: "gemini"},
			wantErr: "fallback provider: Gemini API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantErr != "" {
				if err == nil || err.Error() != tt.wantErr {
					t.Fatalf("Expected error %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected name %q, got %q", tt.wantName, p.Name())
			}
			if got := fmt.Sprintf("%T", p); got != tt.wantType {
				t.Errorf("Expected type %s, got %s", tt.wantType, got)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	mock := &testutil.MockTranslator{}
	fn := Func(mock)

	out, err := fn(context.Background(), "hi", "English", "German")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "German:hi" {
		t.Errorf("Expected 'German:hi', got %q", out)
	}
}

func TestProviderWithFallback(t *testing.T) {
	primary := &testutil.MockTranslator{FailAll: true}
	fallback := &testutil.MockTranslator{Translations: map[string]string{"hello": "hallo"}}

	p := NewProviderWithFallback(primary, fallback)

	out, err := p.Translate(context.Background(), "hello", "English", "German")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "hallo" {
		t.Errorf("Expected 'hallo', got %q", out)
	}
	if len(primary.Calls) != 1 || len(fallback.Calls) != 1 {
		t.Errorf("Expected one call on each provider, got %d and %d", len(primary.Calls), len(fallback.Calls))
	}
	if !strings.Contains(p.Name(), "fallback") {
		t.Errorf("Unexpected name %q", p.Name())
	}
	if err := p.IsAvailable(); err != nil {
		t.Errorf("Expected fallback chain to be available, got %v", err)
	}
}

func TestProviderWithFallback_PrimarySucceeds(t *testing.T) {
	primary := &testutil.MockTranslator{}
	fallback := &testutil.MockTranslator{}

	p := NewProviderWithFallback(primary, fallback)
	if _, err := p.Translate(context.Background(), "x", "English", "German"); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(fallback.Calls) != 0 {
		t.Error("Fallback should not be called when primary succeeds")
	}
}

func TestBreakerProvider_OpensAfterFailures(t *testing.T) {
	failing := &testutil.MockTranslator{FailAll: true}
	p := NewBreakerProvider(failing, 2, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := p.Translate(context.Background(), "x", "English", "German")
		if !errors.Is(err, testutil.ErrMockTranslation) {
			t.Fatalf("call %d: expected mock failure, got %v", i, err)
		}
	}

	if p.State() != gobreaker.StateOpen {
		t.Fatalf("Expected breaker to be open, got %s", p.State())
	}

	_, err := p.Translate(context.Background(), "x", "English", "German")
	if !errors.Is(err, ErrTranslationProvider) || !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected open state error, got %v", err)
	}
	if len(failing.Calls) != 2 {
		t.Errorf("Expected the open breaker to skip the provider, got %d calls", len(failing.Calls))
	}
}

func TestBreakerProvider_PassesThrough(t *testing.T) {
	p := NewBreakerProvider(&testutil.MockTranslator{}, 2, time.Minute)

	out, err := p.Translate(context.Background(), "x", "English", "German")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "German:x" {
		t.Errorf("Expected 'German:x', got %q", out)
	}
	if p.Name() != "mock" {
		t.Errorf("Expected wrapped name, got %q", p.Name())
	}
}

func TestCleanResponse(t *testing.T) {
	tests := map[string]string{
		"  Hallo  \n":          "Hallo",
		"```\nHallo Welt\n```": "Hallo Welt",
		"":                     "",
	}
	for in, want := range tests {
		if got := cleanResponse(in); got != want {
			t.Errorf("cleanResponse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSystemPrompt(t *testing.T) {
	prompt := systemPrompt("English", "German")
	for _, want := range []string{"from English to German", ":name", "%s"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
}
