package models

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("test-api-key", "")

	if lister == nil {
		t.Fatal("NewLister returned nil")
	}

	if lister.apiKey != "test-api-key" {
		t.Errorf("Expected API key 'test-api-key', got '%s'", lister.apiKey)
	}

	if lister.client == nil {
		t.Error("OpenAI client not initialized")
	}
}

func TestTranslationModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	_, err := lister.TranslationModels(context.Background())
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}

	expectedError := "OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .langsync.yaml"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got: %v", expectedError, err)
	}
}

func TestIsTranslationModel(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"gpt-4o-mini", true},
		{"gpt-4.1", true},
		{"o3-mini", true},
		{"chatgpt-4o-latest", true},
		{"gpt-4o-mini-tts", false},
		{"gpt-4o-audio-preview", false},
		{"gpt-4o-realtime-preview", false},
		{"gpt-image-1", false},
		{"dall-e-3", false},
		{"text-embedding-3-small", false},
		{"whisper-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsTranslationModel(tt.id); got != tt.want {
				t.Errorf("IsTranslationModel(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestTranslationModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": [
			{"id": "gpt-4o", "object": "model"},
			{"id": "dall-e-3", "object": "model"},
			{"id": "gpt-4o-mini", "object": "model"},
			{"id": "tts-1", "object": "model"}
		]}`))
	}))
	defer srv.Close()

	ids, err := NewLister("test-key", srv.URL).TranslationModels(context.Background())
	if err != nil {
		t.Fatalf("TranslationModels failed: %v", err)
	}

	want := []string{"gpt-4o", "gpt-4o-mini"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Expected %v, got %v", want, ids)
	}
}

func TestTranslationModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: OPENAI_API_KEY not set")
	}

	ids, err := NewLister(apiKey, "").TranslationModels(context.Background())
	if err != nil {
		t.Errorf("TranslationModels failed: %v", err)
	}
	t.Logf("Found %d translation models", len(ids))
}
