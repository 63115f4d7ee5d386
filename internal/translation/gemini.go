package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiProvider translates with a Google Gemini model
type GeminiProvider struct {
	apiKey string
	client *genai.Client
	config *Config
}

// NewGeminiProvider creates a new Gemini translation provider
func NewGeminiProvider(config *Config) (*GeminiProvider, error) {
	p := &GeminiProvider{apiKey: config.GeminiKey, config: config}
	if p.apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	p.client = client
	return p, nil
}

// Translate translates text from sourceLanguage to targetLanguage
func (p *GeminiProvider) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	if err := p.IsAvailable(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslationProvider, err)
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	model := p.config.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}

	temperature := p.config.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt(sourceLanguage, targetLanguage)}},
		},
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, genai.Text(text), config)
	if err != nil {
		return "", fmt.Errorf("%w: Gemini API error: %w", ErrTranslationProvider, err)
	}

	translation := cleanResponse(responseText(resp))
	if translation == "" {
		return "", fmt.Errorf("%w: empty translation returned", ErrTranslationProvider)
	}
	return translation, nil
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks that an API key is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.apiKey == "" || p.client == nil {
		return fmt.Errorf("Gemini API key not found")
	}
	return nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
