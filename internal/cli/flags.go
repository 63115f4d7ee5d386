package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile     string
	LangDir     string
	Ext         string
	Registry    string
	LogLevel    string
	LogFile     string
	NoColor     bool
	NoJournal   bool
	JournalPath string

	// compare flags
	Format     string
	FailOnDiff bool

	// translate and repair flags
	Provider         string
	FallbackProvider string
	OpenAIModel      string
	GeminiModel      string
	DryRun           bool
	Backup           bool
	Timeout          time.Duration

	// history flags
	Limit int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LangDir:     DefaultLangDir,
		Ext:         DefaultExt,
		Registry:    DefaultRegistry,
		LogLevel:    "warn",
		Format:      "text",
		Provider:    "openai",
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
		Timeout:     30 * time.Second,
		Limit:       20,
	}
}
