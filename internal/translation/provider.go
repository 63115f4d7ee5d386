package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrTranslationProvider wraps every failure of a translation call:
// transport errors, API errors and empty or malformed responses.
var ErrTranslationProvider = errors.New("translation provider error")

// Provider translates a single string between two languages named in
// natural language (e.g. "English", "German").
type Provider interface {
	// Translate returns the translation of text or an error wrapping
	// ErrTranslationProvider
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured
	IsAvailable() error
}

// TranslateFunc is the function shape the repair engine calls
type TranslateFunc func(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)

// Func adapts a provider to a TranslateFunc
func Func(p Provider) TranslateFunc {
	return p.Translate
}

// Config holds the settings for building providers
type Config struct {
	Provider string // "openai" or "gemini"
	Fallback string // optional second provider

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string // override for proxies and tests

	GeminiKey   string
	GeminiModel string

	Temperature float32
	Timeout     time.Duration // per call

	// BreakerFailures is the number of consecutive failures after which
	// calls fail fast; zero disables the breaker
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:        "openai",
		OpenAIModel:     "gpt-4o-mini",
		GeminiModel:     "gemini-2.0-flash",
		Temperature:     0.2,
		Timeout:         30 * time.Second,
		BreakerFailures: 5,
		BreakerCooldown: 30 * time.Second,
	}
}

// NewProvider builds the configured provider chain: the primary provider,
// optionally followed by a fallback, guarded by a circuit breaker.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	p, err := newNamedProvider(config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback != "" && config.Fallback != config.Provider {
		fb, err := newNamedProvider(config.Fallback, config)
		if err != nil {
			return nil, fmt.Errorf("fallback provider: %w", err)
		}
		p = NewProviderWithFallback(p, fb)
	}

	if config.BreakerFailures > 0 {
		p = NewBreakerProvider(p, config.BreakerFailures, config.BreakerCooldown)
	}

	return p, nil
}

func newNamedProvider(name string, config *Config) (Provider, error) {
	switch name {
	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config), nil
	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		p, err := NewGeminiProvider(config)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", name)
	}
}

// ProviderWithFallback wraps a primary provider with a fallback option
type ProviderWithFallback struct {
	primary  Provider
	fallback Provider
}

// NewProviderWithFallback creates a provider that falls back to secondary if primary fails
func NewProviderWithFallback(primary, fallback Provider) Provider {
	return &ProviderWithFallback{
		primary:  primary,
		fallback: fallback,
	}
}

// Translate tries the primary provider first, falls back to secondary on error
func (p *ProviderWithFallback) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	out, err := p.primary.Translate(ctx, text, sourceLanguage, targetLanguage)
	if err == nil {
		return out, nil
	}

	slog.Warn("primary translation provider failed, using fallback",
		"primary", p.primary.Name(), "fallback", p.fallback.Name(), "error", err)

	return p.fallback.Translate(ctx, text, sourceLanguage, targetLanguage)
}

// Name returns the provider name
func (p *ProviderWithFallback) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", p.primary.Name(), p.fallback.Name())
}

// IsAvailable checks if at least one provider is available
func (p *ProviderWithFallback) IsAvailable() error {
	primaryErr := p.primary.IsAvailable()
	if primaryErr == nil {
		return nil
	}

	fallbackErr := p.fallback.IsAvailable()
	if fallbackErr == nil {
		return nil
	}

	return fmt.Errorf("both providers unavailable: primary=%v, fallback=%v",
		primaryErr, fallbackErr)
}
