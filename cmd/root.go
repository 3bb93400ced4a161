package cmd

import (
	"fmt"
	"os"

	"github.com/egoavara/plugin-directory/internal/config"
	"github.com/egoavara/plugin-directory/internal/git"
	"github.com/egoavara/plugin-directory/internal/i18n"
	"github.com/egoavara/plugin-directory/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	cfgFile string

	appConfig *config.Config
	appLogger zerolog.Logger

	rootCmd = &cobra.Command{
		Use:           "plugin-directory",
		Short:         "Validate plugin submissions and build the plugin directory",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `plugin-directory checks third-party plugin submissions against the
directory policy and folds every valid submission into one sorted
plugins.json document.

Each submission names a GitHub repository; its manifest.json and main
file are fetched from the main branch, falling back to master.

Commands:
  validate     Validate submission files and write a report
  build        Rebuild the directory document from all submissions
  search       Search the built directory
  browse       Browse the built directory interactively
  config       Show configuration`,
		PersistentPreRunE: setup,
	}
)

// setup loads configuration and prepares logging and locale for every command
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	appLogger = logger.New(logger.Config{Level: level, Pretty: true, Out: cmd.ErrOrStderr()})

	i18n.SetLocale(cfg.ResolveLocale())

	appLogger.Debug().
		Str("submissions", cfg.SubmissionsDir).
		Str("locale", cfg.ResolveLocale()).
		Msg("Configuration loaded")
	return nil
}

// newFetcher builds the remote fetcher from the fetch settings
func newFetcher() *git.Fetcher {
	client := git.NewClient(appConfig.Fetch.RawBaseURL)
	return git.NewFetcher(client, appConfig.Fetch.DefaultBranch, appConfig.Fetch.FallbackBranch, appLogger)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON); built-in defaults when omitted")
	rootCmd.PersistentFlags().String("submissions-dir", "", "submissions folder (overrides submissions_dir)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (overrides log_level)")
	rootCmd.PersistentFlags().String("locale", "", "locale, auto or BCP 47 (overrides locale)")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
