package translation

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates with an OpenAI chat model
type OpenAIProvider struct {
	apiKey string
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI translation provider
func NewOpenAIProvider(config *Config) *OpenAIProvider {
	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}

	return &OpenAIProvider{
		apiKey: config.OpenAIKey,
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}
}

// Translate translates text from sourceLanguage to targetLanguage
func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error) {
	if err := p.IsAvailable(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTranslationProvider, err)
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	model := p.config.OpenAIModel
	if model == "" {
		model = openai.GPT4oMini
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt(sourceLanguage, targetLanguage),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: p.config.Temperature,
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: OpenAI API error: %w", ErrTranslationProvider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no translation returned", ErrTranslationProvider)
	}

	translation := cleanResponse(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("%w: empty translation returned", ErrTranslationProvider)
	}
	return translation, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks that an API key is configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found")
	}
	return nil
}
