package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL overrides the API endpoint
// when set.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// nonTextMarkers identify model ids that do not produce plain chat text
var nonTextMarkers = []string{"tts", "audio", "realtime", "transcribe", "image", "dall-e", "embedding", "search", "moderation"}

// IsTranslationModel reports whether a model id names a chat model
// suitable for translating text
func IsTranslationModel(id string) bool {
	id = strings.ToLower(id)
	for _, m := range nonTextMarkers {
		if strings.Contains(id, m) {
			return false
		}
	}
	for _, prefix := range []string{"gpt-", "chatgpt-", "o1", "o3", "o4"} {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}
	return false
}

// TranslationModels returns the sorted ids of the chat models usable for
// translation
func (l *Lister) TranslationModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .langsync.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var ids []string
	for _, model := range models.Models {
		if IsTranslationModel(model.ID) {
			ids = append(ids, model.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}
