package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect plugin-directory configuration",
	Long: `Inspect plugin-directory configuration settings.

Settings come from built-in defaults, overridden by the file given by
--config and then by command-line flags. No other file is read.

Example:
  plugin-directory config show
  plugin-directory --config ci.yaml config show`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintln(out, "----------------------------------------")
	fmt.Fprintf(out, "  submissions_dir:       %s\n", cfg.SubmissionsDir)
	fmt.Fprintf(out, "  directory_output:      %s\n", cfg.DirectoryOutput)
	fmt.Fprintf(out, "  validation_output:     %s\n", cfg.ValidationOutput)
	fmt.Fprintf(out, "  locale:                %s (%s)\n", cfg.Locale, cfg.ResolveLocale())
	fmt.Fprintf(out, "  log_level:             %s\n", cfg.LogLevel)
	fmt.Fprintf(out, "  fetch.raw_base_url:    %s\n", cfg.Fetch.RawBaseURL)
	fmt.Fprintf(out, "  fetch.default_branch:  %s\n", cfg.Fetch.DefaultBranch)
	fmt.Fprintf(out, "  fetch.fallback_branch: %s\n", cfg.Fetch.FallbackBranch)

	return nil
}
