package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/egoavara/plugin-directory/internal/validator"
)

const (
	iconPass = "✅"
	iconFail = "❌"
	iconWarn = "⚠️"
)

// Markdown renders one validation result as a markdown section
func Markdown(r *validator.Result) string {
	var b strings.Builder

	title := r.PluginID
	if title == "" {
		title = filepath.Base(r.File)
	}
	status := iconPass + " Passed"
	if !r.Passed {
		status = iconFail + " Failed"
	}
	fmt.Fprintf(&b, "## %s - %s\n\n", title, status)
	fmt.Fprintf(&b, "File: `%s`\n\n", r.File)

	if r.Manifest != nil {
		fmt.Fprintf(&b, "**%s** v%s by %s\n\n", r.Manifest.Name, r.Manifest.Version, r.Manifest.Author)
	}

	if len(r.Checks) > 0 {
		b.WriteString("| Check | Result | Details |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, c := range r.Checks {
			icon := iconPass
			if !c.Passed {
				icon = iconFail
			}
			fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Name, icon, escapeCell(c.Detail))
		}
		b.WriteString("\n")
	}

	if len(r.Errors) > 0 {
		b.WriteString("### Errors\n\n")
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "- %s %s\n", iconFail, e)
		}
		b.WriteString("\n")
	}

	if len(r.Warnings) > 0 {
		b.WriteString("### Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s %s\n", iconWarn, w)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// MarkdownAll renders every result under a summary heading, in input order
func MarkdownAll(results []*validator.Result) string {
	var b strings.Builder

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}

	b.WriteString("# Plugin submission validation\n\n")
	fmt.Fprintf(&b, "%d of %d submission(s) passed.\n\n", passed, len(results))

	for _, r := range results {
		b.WriteString(Markdown(r))
	}

	return b.String()
}

// escapeCell keeps table cells on one row
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
