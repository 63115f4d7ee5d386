package cli

import (
	"github.com/spf13/viper"

	"codeberg.org/snonux/langsync/internal/translation"
)

// Defaults for the language layout
const (
	DefaultLangDir  = "resources/lang"
	DefaultExt      = "php"
	DefaultRegistry = "lang"
)

// Settings is the effective configuration after merging flags, the config
// file and the environment
type Settings struct {
	LangDir  string
	Ext      string
	Registry string

	NoColor bool

	JournalDisabled bool
	JournalPath     string

	// ArchiveDir receives target directory backups; empty means the
	// default location
	ArchiveDir string

	Translation translation.Config
}

// LoadSettings reads the effective configuration from viper
func LoadSettings() Settings {
	s := Settings{
		LangDir:         stringOr("lang.dir", DefaultLangDir),
		Ext:             stringOr("lang.ext", DefaultExt),
		Registry:        stringOr("lang.registry", DefaultRegistry),
		NoColor:         viper.GetBool("output.no_color"),
		JournalDisabled: viper.GetBool("journal.disabled"),
		JournalPath:     viper.GetString("journal.path"),
		ArchiveDir:      viper.GetString("archive.dir"),
	}

	tc := translation.DefaultConfig()
	tc.Provider = stringOr("translation.provider", tc.Provider)
	tc.Fallback = viper.GetString("translation.fallback")
	tc.OpenAIKey = GetOpenAIKey()
	tc.OpenAIModel = stringOr("translation.openai_model", tc.OpenAIModel)
	tc.OpenAIBaseURL = viper.GetString("translation.openai_base_url")
	tc.GeminiKey = GetGeminiKey()
	tc.GeminiModel = stringOr("translation.gemini_model", tc.GeminiModel)
	if viper.IsSet("translation.temperature") {
		tc.Temperature = float32(viper.GetFloat64("translation.temperature"))
	}
	if d := viper.GetDuration("translation.timeout"); d > 0 {
		tc.Timeout = d
	}
	if viper.IsSet("translation.breaker_failures") {
		tc.BreakerFailures = viper.GetUint32("translation.breaker_failures")
	}
	if d := viper.GetDuration("translation.breaker_cooldown"); d > 0 {
		tc.BreakerCooldown = d
	}
	s.Translation = *tc

	return s
}

func stringOr(key, def string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}
