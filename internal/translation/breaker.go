package translation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerProvider stops calling a provider after repeated failures. While
// the breaker is open every call fails immediately; after the cooldown a
// single trial call decides whether to close it again.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerProvider wraps next with a circuit breaker that opens after
// maxFailures consecutive failures.
func NewBreakerProvider(next Provider, maxFailures uint32, cooldown time.Duration) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        next.Name(),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("translation provider circuit breaker changed state",
				"provider", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerProvider{
		next: next,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Translate calls the wrapped provider unless the breaker is open
func (p *BreakerProvider) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.next.Translate(ctx, text, sourceLanguage, targetLanguage)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: %s: %w", ErrTranslationProvider, p.next.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}

// Name returns the wrapped provider name
func (p *BreakerProvider) Name() string {
	return p.next.Name()
}

// IsAvailable reports the wrapped provider's availability
func (p *BreakerProvider) IsAvailable() error {
	return p.next.IsAvailable()
}

// State returns the current breaker state
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
