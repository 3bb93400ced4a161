package cmd

import (
	"fmt"
	"strings"

	"github.com/egoavara/plugin-directory/internal/i18n"
	"github.com/egoavara/plugin-directory/internal/search"
	"github.com/spf13/cobra"
)

var (
	searchSimple    bool
	searchDirectory string
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search for plugins in the built directory",
	Long: `Search for plugins using fuzzy matching over the built directory.

The search looks through plugin names, ids, descriptions, authors, tags,
and categories. Use --simple for plain substring matching.

Example:
  plugin-directory search pomodoro
  plugin-directory search --simple network`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchSimple, "simple", false, "substring match instead of fuzzy")
	searchCmd.Flags().StringVarP(&searchDirectory, "directory", "d", "", "directory document (default from config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := args[0]

	dir, err := loadDirectory(searchDirectory)
	if err != nil {
		return err
	}

	var results []search.SearchResult
	if searchSimple {
		results = search.SimpleSearch(dir.Plugins, keyword)
	} else {
		results = search.FuzzySearch(dir.Plugins, keyword)
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, i18n.T("NoSearchResults", map[string]any{"Query": keyword}))
		return nil
	}

	fmt.Fprintln(out, i18n.T("SearchResultsHeader", map[string]any{"Count": len(results)}, len(results)))
	fmt.Fprintln(out)

	for _, r := range results {
		e := r.Entry
		fmt.Fprintf(out, "  %s (v%s) by %s\n", e.Name, e.Version, e.Author)
		fmt.Fprintf(out, "    %s\n", e.ID)

		if e.Description != "" {
			fmt.Fprintf(out, "    %s\n", e.Description)
		}

		if len(e.Tags) > 0 {
			fmt.Fprintf(out, "    Tags: %s\n", strings.Join(e.Tags, ", "))
		}

		if e.Category != "" {
			fmt.Fprintf(out, "    Category: %s\n", e.Category)
		}

		fmt.Fprintln(out)
	}

	return nil
}
