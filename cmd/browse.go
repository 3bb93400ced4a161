package cmd

import (
	"fmt"
	"strings"

	"github.com/egoavara/plugin-directory/internal/tui"
	"github.com/spf13/cobra"
)

var browseDirectory string

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the built directory interactively",
	Long: `Open an interactive finder over the built directory.

Type to filter, use the arrow keys to move, and press Enter to print
the highlighted plugin. Esc clears the filter or quits.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVarP(&browseDirectory, "directory", "d", "", "directory document (default from config)")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	dir, err := loadDirectory(browseDirectory)
	if err != nil {
		return err
	}

	result, err := tui.RunDirectoryFinder(dir.Plugins)
	if err != nil {
		return err
	}
	if result.Cancelled || result.Entry == nil {
		return nil
	}

	e := result.Entry
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (v%s)\n", e.Name, e.Version)
	fmt.Fprintf(out, "  id:          %s\n", e.ID)
	fmt.Fprintf(out, "  author:      %s\n", e.Author)
	fmt.Fprintf(out, "  repo:        %s\n", e.Repo)
	fmt.Fprintf(out, "  permissions: %s\n", strings.Join(e.Permissions, ", "))
	return nil
}
