package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"LangDir", flags.LangDir, "resources/lang"},
		{"Ext", flags.Ext, "php"},
		{"Registry", flags.Registry, "lang"},
		{"LogLevel", flags.LogLevel, "warn"},
		{"Format", flags.Format, "text"},
		{"Provider", flags.Provider, "openai"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini"},
		{"GeminiModel", flags.GeminiModel, "gemini-2.0-flash"},
		{"Timeout", flags.Timeout, 30 * time.Second},
		{"Limit", flags.Limit, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"NoColor", flags.NoColor},
		{"NoJournal", flags.NoJournal},
		{"FailOnDiff", flags.FailOnDiff},
		{"DryRun", flags.DryRun},
		{"Backup", flags.Backup},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	// Test string defaults (should be empty)
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"LogFile", flags.LogFile},
		{"JournalPath", flags.JournalPath},
		{"FallbackProvider", flags.FallbackProvider},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %q, want empty string", tt.name, tt.value)
			}
		})
	}
}
