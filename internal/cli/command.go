package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/langsync/internal"
	"codeberg.org/snonux/langsync/internal/logging"
	"codeberg.org/snonux/langsync/internal/table"
)

// Actions executes the subcommands
type Actions interface {
	Show(ctx context.Context, lang string) error
	Compare(ctx context.Context, source, target string) error
	Translate(ctx context.Context, source, target string) error
	Repair(ctx context.Context, source, target string) error
	History(ctx context.Context) error
	Models(ctx context.Context) error
}

// viperKeys maps flag names to configuration keys
var viperKeys = map[string]string{
	"lang-dir":          "lang.dir",
	"ext":               "lang.ext",
	"registry":          "lang.registry",
	"log-level":         "log.level",
	"log-file":          "log.file",
	"no-color":          "output.no_color",
	"no-journal":        "journal.disabled",
	"journal":           "journal.path",
	"provider":          "translation.provider",
	"fallback-provider": "translation.fallback",
	"openai-model":      "translation.openai_model",
	"gemini-model":      "translation.gemini_model",
	"timeout":           "translation.timeout",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags, actions Actions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "langsync",
		Short: "Keep translation files of all languages in sync",
		Long: `langsync inventories translation files, compares two languages and
fills missing or empty translations with an AI translation provider.

Language directories live below --lang-dir, one per language code, and
hold flat key/value files (php, json, yaml or toml). The source language
directory contains the language registry (lang.php by default) mapping
codes to language names.

Examples:
  langsync show en                # List files and key counts
  langsync compare en de          # Report missing and empty keys
  langsync translate en de        # Translate everything into de
  langsync repair en de           # Fill only the gaps in de`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var closeLog func()
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		bindFlagsToViper(cmd)

		cleanup, err := logging.Init(cmd.ErrOrStderr(), logging.Options{
			Level: viper.GetString("log.level"),
			File:  viper.GetString("log.file"),
		})
		if err != nil {
			return err
		}
		closeLog = cleanup

		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			closeLog()
		}
	}

	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "show <lang>",
			Short: "List the translation files of a language",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return actions.Show(cmd.Context(), args[0])
			},
		},
		newCompareCommand(flags, actions),
		newSyncCommand(flags, "translate", "Translate all source files into the target language",
			func(ctx context.Context, source, target string) error { return actions.Translate(ctx, source, target) }),
		newSyncCommand(flags, "repair", "Fill missing and empty keys of existing target files",
			func(ctx context.Context, source, target string) error { return actions.Repair(ctx, source, target) }),
		newHistoryCommand(flags, actions),
		&cobra.Command{
			Use:   "models",
			Short: "List OpenAI chat models usable for translation",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return actions.Models(cmd.Context())
			},
		},
	)

	return rootCmd
}

func newCompareCommand(flags *Flags, actions Actions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <source> <target>",
		Short: "Report keys missing or empty in the target language",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Format != "text" && flags.Format != "json" {
				return fmt.Errorf("unknown output format: %s", flags.Format)
			}
			return actions.Compare(cmd.Context(), args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "Output format: text or json")
	cmd.Flags().BoolVar(&flags.FailOnDiff, "fail-on-diff", false, "Exit with an error when differences are found")
	return cmd
}

func newSyncCommand(flags *Flags, name, short string, run func(ctx context.Context, source, target string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name + " <source> <target>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == args[1] {
				return errors.New("source and target language must differ")
			}
			return run(cmd.Context(), args[0], args[1])
		},
	}
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.FallbackProvider, "fallback-provider", "", "Provider to use when the primary provider fails")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Translate but do not write any file")
	cmd.Flags().BoolVar(&flags.Backup, "backup", false, "Archive the target language directory before writing")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", flags.Timeout, "Timeout per translation request")
	return cmd
}

func newHistoryCommand(flags *Flags, actions Actions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent translate and repair runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return actions.History(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&flags.Limit, "limit", "n", flags.Limit, "Number of runs to show (0 for all)")
	return cmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.langsync.yaml)")
	pf.StringVar(&flags.LangDir, "lang-dir", flags.LangDir, "Directory holding one sub directory per language")
	pf.StringVar(&flags.Ext, "ext", flags.Ext, "Translation file extension: "+strings.Join(table.SupportedExtensions(), ", "))
	pf.StringVar(&flags.Registry, "registry", flags.Registry, "Base name of the language registry file in the source directory")
	pf.StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level: debug, info, warn or error")
	pf.StringVar(&flags.LogFile, "log-file", "", "Also append logs to this file")
	pf.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	pf.BoolVar(&flags.NoJournal, "no-journal", false, "Do not record runs in the history database")
	pf.StringVar(&flags.JournalPath, "journal", "", "History database (default is ~/.local/state/langsync/history.db)")
}

// bindFlagsToViper binds the flags of the executing command, including
// inherited persistent flags, to their configuration keys
func bindFlagsToViper(cmd *cobra.Command) {
	bind := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if key, ok := viperKeys[f.Name]; ok {
				viper.BindPFlag(key, f)
			}
		})
	}
	bind(cmd.Flags())
	bind(cmd.InheritedFlags())
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A missing .env file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".langsync" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".langsync")
	}

	// Environment variables, e.g. LANGSYNC_LANG_DIR for lang.dir
	viper.SetEnvPrefix("LANGSYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}
