package cmd

import (
	"errors"
	"fmt"

	"github.com/egoavara/plugin-directory/internal/i18n"
	"github.com/egoavara/plugin-directory/internal/report"
	"github.com/egoavara/plugin-directory/internal/validator"
	"github.com/spf13/cobra"
)

var (
	validatePretty bool
	validateOutput string
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Validate plugin submission files",
	Long: `Validate one or more plugin submission files.

Each submission is parsed, its repository manifest is fetched and checked
against the directory policy, and the main file is scanned for unsafe
patterns. Results are printed in input order and written as a JSON
document with an embedded markdown report.

The command fails if any submission fails a check.

Example:
  plugin-directory validate plugins/com.acme.pomodoro.json
  plugin-directory validate --pretty plugins/*.json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return errors.New(i18n.T("ValidateNoArgs", nil))
		}
		return nil
	},
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validatePretty, "pretty", false, "render the markdown report in the terminal")
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "validation result path (default from config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	v := validator.New(newFetcher(), appConfig.SubmissionsDir, appLogger)
	results := v.ValidateAll(cmd.Context(), args)

	console := report.NewConsole(cmd.OutOrStdout())
	for _, r := range results {
		console.PrintResult(r)
	}
	console.PrintSummary(results)

	out := report.NewOutput(results)

	if validatePretty {
		if err := console.PrintMarkdown(out.Markdown); err != nil {
			appLogger.Warn().Err(err).Msg("Could not render markdown report")
		}
	}

	path := validateOutput
	if path == "" {
		path = appConfig.ValidationOutput
	}
	if err := report.WriteOutput(path, out); err != nil {
		return fmt.Errorf("failed to write validation result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), i18n.T("ValidateOutputWritten", map[string]any{"Path": path}))

	if !out.AllPassed {
		failed := 0
		for _, r := range results {
			if !r.Passed {
				failed++
			}
		}
		return errors.New(i18n.T("ValidateFailed", map[string]any{"Count": failed}))
	}
	return nil
}
