package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/langsync/internal/diff"
	"codeberg.org/snonux/langsync/internal/registry"
	"codeberg.org/snonux/langsync/internal/table"
	"codeberg.org/snonux/langsync/internal/translation"
)

type recordingActions struct {
	calls []string
	err   error
}

func (r *recordingActions) record(call string) error {
	r.calls = append(r.calls, call)
	return r.err
}

func (r *recordingActions) Show(ctx context.Context, lang string) error {
	return r.record("show " + lang)
}

func (r *recordingActions) Compare(ctx context.Context, source, target string) error {
	return r.record("compare " + source + " " + target)
}

func (r *recordingActions) Translate(ctx context.Context, source, target string) error {
	return r.record("translate " + source + " " + target)
}

func (r *recordingActions) Repair(ctx context.Context, source, target string) error {
	return r.record("repair " + source + " " + target)
}

func (r *recordingActions) History(ctx context.Context) error {
	return r.record("history")
}

func (r *recordingActions) Models(ctx context.Context) error {
	return r.record("models")
}

// saveViper restores the global viper state after the test
func saveViper(t *testing.T) {
	t.Helper()
	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	t.Cleanup(func() {
		*viper.GetViper() = *originalConfig
	})
	viper.Reset()
}

func execute(t *testing.T, flags *Flags, actions Actions, args ...string) error {
	t.Helper()
	cmd := CreateRootCommand(flags, actions)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestCreateRootCommand(t *testing.T) {
	flags := NewFlags()
	cmd := CreateRootCommand(flags, &recordingActions{})

	// Test basic command properties
	if cmd.Use != "langsync" {
		t.Errorf("Expected Use to be 'langsync', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "translation files") {
		t.Errorf("Expected Short description to mention translation files")
	}

	for _, name := range []string{"show", "compare", "translate", "repair", "history", "models"} {
		t.Run("command_"+name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			if err != nil || sub.Name() != name {
				t.Errorf("Expected subcommand %s to exist", name)
			}
		})
	}

	persistent := []string{"config", "lang-dir", "ext", "registry", "log-level", "log-file", "no-color", "no-journal", "journal"}
	for _, name := range persistent {
		t.Run("flag_"+name, func(t *testing.T) {
			if cmd.PersistentFlags().Lookup(name) == nil {
				t.Errorf("Expected persistent flag %s to exist", name)
			}
		})
	}
}

func TestSyncCommandFlags(t *testing.T) {
	cmd := CreateRootCommand(NewFlags(), &recordingActions{})

	for _, name := range []string{"translate", "repair"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("Find(%s) failed: %v", name, err)
		}
		for _, flag := range []string{"provider", "fallback-provider", "openai-model", "gemini-model", "dry-run", "backup", "timeout"} {
			if sub.Flags().Lookup(flag) == nil {
				t.Errorf("Expected %s to have flag --%s", name, flag)
			}
		}
	}

	compare, _, _ := cmd.Find([]string{"compare"})
	formatFlag := compare.Flags().Lookup("format")
	if formatFlag == nil || formatFlag.DefValue != "text" {
		t.Errorf("Expected compare --format with default text")
	}
}

func TestSetupFlags(t *testing.T) {
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	langDirFlag := cmd.PersistentFlags().Lookup("lang-dir")
	if langDirFlag == nil {
		t.Fatal("lang-dir flag not found")
	}
	if langDirFlag.DefValue != "resources/lang" {
		t.Errorf("Expected default lang dir to be resources/lang, got %s", langDirFlag.DefValue)
	}

	extFlag := cmd.PersistentFlags().Lookup("ext")
	if extFlag == nil {
		t.Fatal("ext flag not found")
	}
	if extFlag.DefValue != "php" {
		t.Errorf("Expected default ext to be php, got %s", extFlag.DefValue)
	}
	if !strings.Contains(extFlag.Usage, "json, php, toml, yaml, yml") {
		t.Errorf("Expected ext usage to list supported extensions, got %q", extFlag.Usage)
	}
}

func TestExecuteDispatch(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"show", "en"}, "show en"},
		{[]string{"compare", "en", "de"}, "compare en de"},
		{[]string{"translate", "en", "de"}, "translate en de"},
		{[]string{"repair", "en", "de", "--dry-run"}, "repair en de"},
		{[]string{"history", "-n", "5"}, "history"},
		{[]string{"models"}, "models"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, "_"), func(t *testing.T) {
			saveViper(t)
			actions := &recordingActions{}
			if err := execute(t, NewFlags(), actions, tt.args...); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !reflect.DeepEqual(actions.calls, []string{tt.want}) {
				t.Errorf("Expected call %q, got %v", tt.want, actions.calls)
			}
		})
	}
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"show without language", []string{"show"}},
		{"compare with one language", []string{"compare", "en"}},
		{"unknown format", []string{"compare", "en", "de", "--format", "xml"}},
		{"same source and target", []string{"translate", "en", "en"}},
		{"models with args", []string{"models", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saveViper(t)
			actions := &recordingActions{}
			if err := execute(t, NewFlags(), actions, tt.args...); err == nil {
				t.Error("Expected an error")
			}
			if len(actions.calls) != 0 {
				t.Errorf("Expected no action to run, got %v", actions.calls)
			}
		})
	}
}

func TestExecutePropagatesActionError(t *testing.T) {
	saveViper(t)
	boom := errors.New("boom")
	err := execute(t, NewFlags(), &recordingActions{err: boom}, "show", "en")
	if !errors.Is(err, boom) {
		t.Errorf("Expected action error, got %v", err)
	}
}

func TestExecuteBindsFlagsToViper(t *testing.T) {
	saveViper(t)
	flags := NewFlags()

	err := execute(t, flags, &recordingActions{}, "repair", "en", "de",
		"--lang-dir", "/tmp/lang", "--ext", "json", "--provider", "gemini", "--timeout", "5s", "--dry-run")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if viper.GetString("lang.dir") != "/tmp/lang" {
		t.Errorf("Expected lang.dir to be /tmp/lang, got %s", viper.GetString("lang.dir"))
	}
	if viper.GetString("lang.ext") != "json" {
		t.Errorf("Expected lang.ext to be json, got %s", viper.GetString("lang.ext"))
	}
	if viper.GetString("translation.provider") != "gemini" {
		t.Errorf("Expected translation.provider to be gemini, got %s", viper.GetString("translation.provider"))
	}
	if viper.GetDuration("translation.timeout") != 5*time.Second {
		t.Errorf("Expected translation.timeout to be 5s, got %v", viper.GetDuration("translation.timeout"))
	}
	if !flags.DryRun {
		t.Error("Expected DryRun flag to be set")
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantDir   string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `lang:
  dir: /srv/app/lang
  ext: json
translation:
  provider: gemini
  openai_key: test-key`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			wantDir: "/srv/app/lang",
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				t.Chdir(t.TempDir())
				t.Setenv("HOME", t.TempDir())
				return ""
			},
			wantDir: DefaultLangDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saveViper(t)

			InitConfig(tt.setupFunc(t))

			// Test environment variable prefix
			t.Setenv("LANGSYNC_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			if got := LoadSettings().LangDir; got != tt.wantDir {
				t.Errorf("Expected lang dir %s, got %s", tt.wantDir, got)
			}
		})
	}
}

func TestInitConfig_NestedEnv(t *testing.T) {
	saveViper(t)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LANGSYNC_LANG_DIR", "/from/env")

	InitConfig("")

	if got := LoadSettings().LangDir; got != "/from/env" {
		t.Errorf("Expected lang dir from environment, got %s", got)
	}
}

func TestLoadSettings(t *testing.T) {
	saveViper(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	viper.Set("translation.provider", "gemini")
	viper.Set("translation.fallback", "openai")
	viper.Set("translation.timeout", "10s")
	viper.Set("translation.breaker_failures", 0)
	viper.Set("journal.disabled", true)

	s := LoadSettings()

	if s.Ext != DefaultExt || s.Registry != DefaultRegistry {
		t.Errorf("Expected layout defaults, got ext=%s registry=%s", s.Ext, s.Registry)
	}
	if s.Translation.Provider != "gemini" || s.Translation.Fallback != "openai" {
		t.Errorf("Unexpected providers: %+v", s.Translation)
	}
	if s.Translation.Timeout != 10*time.Second {
		t.Errorf("Expected timeout 10s, got %v", s.Translation.Timeout)
	}
	if s.Translation.BreakerFailures != 0 {
		t.Errorf("Expected breaker to be disabled, got %d", s.Translation.BreakerFailures)
	}
	if s.Translation.OpenAIModel != "gpt-4o-mini" {
		t.Errorf("Expected default model, got %s", s.Translation.OpenAIModel)
	}
	if !s.JournalDisabled {
		t.Error("Expected journal to be disabled")
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saveViper(t)

			// Set up environment
			t.Setenv("OPENAI_API_KEY", tt.envKey)
			t.Setenv("GEMINI_API_KEY", tt.envKey)

			// Set up config
			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
				viper.Set("translation.gemini_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
			if got := GetGeminiKey(); got != tt.expected {
				t.Errorf("GetGeminiKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("load: %w", registry.ErrUnsupportedLanguage), "unsupported language"},
		{fmt.Errorf("lang/fr: %w", table.ErrDirectoryNotFound), "directory not found"},
		{&table.FileError{Path: "a.php", Err: table.ErrInvalidTableFormat}, "invalid translation file"},
		{fmt.Errorf("%w: timeout", translation.ErrTranslationProvider), "translation provider error"},
		{fmt.Errorf("3 differences: %w", diff.ErrDifferencesFound), "differences found"},
		{errors.New("other"), "error"},
		{context.Canceled, "interrupted"},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}

	if got := FormatError(errors.New("boom")); got != "Error (error): boom" {
		t.Errorf("Unexpected FormatError output: %q", got)
	}
}
