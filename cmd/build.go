package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/egoavara/plugin-directory/internal/i18n"
	"github.com/egoavara/plugin-directory/internal/marketplace"
	"github.com/egoavara/plugin-directory/internal/plugin"
	"github.com/egoavara/plugin-directory/internal/tui"
	"github.com/spf13/cobra"
)

var (
	buildOutput string
	buildQuiet  bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the plugin directory from all submissions",
	Long: `Rebuild the plugin directory document from every submission file.

For each submission the repository manifest is fetched and projected
into a directory entry. Submissions that cannot be fetched or whose
manifest is malformed are skipped and listed; they never abort the run.
Entries are sorted by name for the configured locale.

Example:
  plugin-directory build
  plugin-directory build -o dist/plugins.json`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "directory output path (default from config)")
	buildCmd.Flags().BoolVarP(&buildQuiet, "quiet", "q", false, "hide per-submission progress")
}

func runBuild(cmd *cobra.Command, args []string) error {
	paths, err := plugin.ListSubmissions(appConfig.SubmissionsDir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("BuildStart", map[string]any{"Count": len(paths)}, len(paths)))

	opts := []marketplace.BuilderOption{marketplace.WithLocale(appConfig.LanguageTag())}
	if !buildQuiet {
		opts = append(opts, marketplace.WithProgress(tui.NewSpinner(cmd.ErrOrStderr())))
	}

	builder := marketplace.NewBuilder(newFetcher(), appConfig.SubmissionsDir, appLogger, opts...)
	dir, failures, err := builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	path := buildOutput
	if path == "" {
		path = appConfig.DirectoryOutput
	}
	if err := marketplace.WriteDirectory(path, dir); err != nil {
		return fmt.Errorf("failed to write directory: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("BuildDone", map[string]any{"Count": len(dir.Plugins), "Path": path}, len(dir.Plugins)))

	if len(failures) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("BuildErrorsHeader", map[string]any{"Count": len(failures)}, len(failures)))
		for _, f := range failures {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s: %v\n", filepath.Base(f.File), f.Err)
		}
	}

	return nil
}
