package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/selectrans/internal"
	"codeberg.org/snonux/selectrans/internal/models"
	"codeberg.org/snonux/selectrans/internal/preview"
	"codeberg.org/snonux/selectrans/internal/settings"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "selectrans",
		Short: "Translate text selections with online translators",
		Long: `selectrans opens a translation of selected text in Google Translate,
DeepL, Bing, Yandex or Microsoft Translator.

It keeps a context menu of target languages in sync with your settings
and usage history and can show a short machine translated preview.

Examples:
  selectrans install                      # Write default settings, build the menu
  selectrans menu                         # Show the context menu
  selectrans translate "Guten Morgen"     # Translate to the primary target
  selectrans translate --to pl hello      # Translate to Polish
  selectrans translate --batch words.txt  # Translate every line of a file
  selectrans settings set provider=deepl`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	rootCmd.AddCommand(
		newInstallCommand(flags),
		newMenuCommand(flags),
		newTranslateCommand(flags),
		newCommandCommand(flags),
		newSettingsCommand(flags),
		newHistoryCommand(flags),
		newModelsCommand(),
	)

	return rootCmd
}

// stateDir is where selectrans keeps its data by default.
func stateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "selectrans")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	defaultStore := filepath.Join(stateDir(), "settings.db")

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.selectrans.yaml)")
	pf.StringVar(&flags.StorePath, "store", defaultStore, "Settings database path (\"memory\" for a throwaway store)")
	pf.IntVar(&flags.RankLimit, "rank-limit", flags.RankLimit, "Maximum number of languages in the menu (0 for no limit)")
	pf.IntVar(&flags.HistoryMax, "history-max", flags.HistoryMax, "Number of history entries to keep")
	pf.StringVar(&flags.Locale, "locale", flags.Locale, "Language of menu labels and notifications")
	pf.StringVar(&flags.OpenCommand, "open-command", "", "Command opening translator pages (default: system URL opener)")
	pf.BoolVar(&flags.DryRun, "dry-run", false, "Print translator URLs instead of opening them")

	// Preview flags
	pf.StringVar(&flags.PreviewBackend, "preview-backend", flags.PreviewBackend, "Preview backend: mymemory, openai, gemini")
	pf.StringVar(&flags.PreviewEndpoint, "preview-endpoint", flags.PreviewEndpoint, "MyMemory compatible preview endpoint")
	pf.DurationVar(&flags.PreviewTimeout, "preview-timeout", flags.PreviewTimeout, "Preview request timeout")
	pf.BoolVar(&flags.NoPreview, "no-preview", false, "Never fetch previews, regardless of settings")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

// viperKeys maps persistent flag names to their configuration keys.
var viperKeys = map[string]string{
	"store":            "store.path",
	"rank-limit":       "menu.rank_limit",
	"history-max":      "history.max",
	"locale":           "ui.locale",
	"open-command":     "open.command",
	"dry-run":          "open.dry_run",
	"preview-backend":  "preview.backend",
	"preview-endpoint": "preview.endpoint",
	"preview-timeout":  "preview.timeout",
	"no-preview":       "preview.disabled",
}

func bindFlagsToViper(cmd *cobra.Command) {
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		if key, ok := viperKeys[f.Name]; ok {
			viper.BindPFlag(key, f)
		}
	})
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// .env is optional, the keys may come from the environment
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

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

		// Search config in home directory with name ".selectrans" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".selectrans")
	}

	// Environment variables
	viper.SetEnvPrefix("SELECTRANS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("preview.openai_model", "gpt-4o-mini")
	viper.SetDefault("preview.gemini_model", "gemini-2.0-flash")
	viper.SetDefault("archive.directory", filepath.Join(stateDir(), "archive"))

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("preview.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("preview.gemini_key")
}

// Config is the resolved runtime configuration.
type Config struct {
	StorePath   string
	RankLimit   int
	HistoryMax  int
	Locale      string
	OpenCommand string
	DryRun      bool
	ArchiveDir  string

	PreviewDisabled bool
	Preview         preview.Config
}

// MemoryStore is the store path selecting the in-memory store.
const MemoryStore = "memory"

// LoadConfig reads the configuration from viper.
func LoadConfig() *Config {
	return &Config{
		StorePath:       viper.GetString("store.path"),
		RankLimit:       viper.GetInt("menu.rank_limit"),
		HistoryMax:      viper.GetInt("history.max"),
		Locale:          viper.GetString("ui.locale"),
		OpenCommand:     viper.GetString("open.command"),
		DryRun:          viper.GetBool("open.dry_run"),
		ArchiveDir:      viper.GetString("archive.directory"),
		PreviewDisabled: viper.GetBool("preview.disabled"),
		Preview: preview.Config{
			Backend:     viper.GetString("preview.backend"),
			Timeout:     viper.GetDuration("preview.timeout"),
			Endpoint:    viper.GetString("preview.endpoint"),
			OpenAIKey:   GetOpenAIKey(),
			OpenAIModel: viper.GetString("preview.openai_model"),
			GeminiKey:   GetGeminiKey(),
			GeminiModel: viper.GetString("preview.gemini_model"),
		},
	}
}

func newInstallCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Write default settings and build the menu",
		Long: `install merges the stored settings with the defaults and builds the
context menu. Values you already set are kept; a target language from an
older version becomes the target language list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, LoadConfig())
		},
	}
}

func newMenuCommand(flags *Flags) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Build and show the context menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, LoadConfig())
		},
	}
}

func newTranslateCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Open the translation of text",
		Long: `translate opens the translator page for text, records it in the
history and shows a preview when enabled. Without arguments the text is
read from standard input.

With --item the request is handled like a click on that menu item, e.g.
--item selectrans:lang:de. With --batch every line of the file is
translated; a line "pl = text" translates text to Polish.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, flags, LoadConfig())
		},
	}

	cmd.Flags().StringVarP(&flags.To, "to", "t", "", "Target language (default: first configured target)")
	cmd.Flags().StringVar(&flags.ItemID, "item", "", "Handle as a click on this menu item id")
	cmd.Flags().IntVar(&flags.TabID, "tab", 0, "Id of the tab the selection came from")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate every line of a file")
	cmd.MarkFlagsMutuallyExclusive("to", "item")
	return cmd
}

func newCommandCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "command <name>",
		Short: "Run a keyboard command",
		Long: `command runs a keyboard command the way the browser would deliver it.
The only command is translate-selection, which translates the selection
of the active tab (--selection) to the first target language.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommandShortcut(cmd, args[0], flags, LoadConfig())
		},
	}

	cmd.Flags().StringVar(&flags.Selection, "selection", "", "Selected text of the active tab")
	return cmd
}

func newSettingsCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the settings as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSettingsShow(cmd, LoadConfig())
			},
		},
		&cobra.Command{
			Use:   "set key=value...",
			Short: "Change settings",
			Long: "Change settings. Keys: " + strings.Join(settings.Keys(), ", ") + `.
Target languages are comma separated, e.g. targetLanguages=de,fr,pt-BR.`,
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSettingsSet(cmd, args, LoadConfig())
			},
		},
		&cobra.Command{
			Use:   "export [file]",
			Short: "Write settings and history as YAML (default: stdout)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSettingsExport(cmd, args, LoadConfig())
			},
		},
		&cobra.Command{
			Use:   "import <file>",
			Short: "Replace settings and history with an export",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSettingsImport(cmd, args[0], LoadConfig())
			},
		},
	)
	return cmd
}

func newHistoryCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the translation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, flags, LoadConfig())
		},
	}

	cmd.Flags().BoolVar(&flags.Clear, "clear", false, "Delete the history")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Save the history to the archive directory before clearing it")
	cmd.Flags().StringVar(&flags.ArchiveDir, "archive-dir", "", "Archive directory (default: ~/.local/state/selectrans/archive)")
	viper.BindPFlag("archive.directory", cmd.Flags().Lookup("archive-dir"))
	return cmd
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List OpenAI models usable for previews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := LoadConfig()
			lister := models.NewLister(config.Preview.OpenAIKey)
			return lister.ListAvailableModels(cmd.Context(), cmd.OutOrStdout(), config.Preview.OpenAIModel)
		},
	}
}
