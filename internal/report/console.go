package report

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/egoavara/plugin-directory/internal/i18n"
	"github.com/egoavara/plugin-directory/internal/validator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Console prints validation results to a terminal
type Console struct {
	out   io.Writer
	width int
}

// NewConsole creates a console printer writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, width: 100}
}

// PrintResult prints one result: status line, failed checks, errors and warnings
func (c *Console) PrintResult(r *validator.Result) {
	name := r.PluginID
	if name == "" {
		name = filepath.Base(r.File)
	}

	if r.Passed {
		fmt.Fprintf(c.out, "%s %s\n", passStyle.Render("✓ PASS"), titleStyle.Render(name))
	} else {
		fmt.Fprintf(c.out, "%s %s\n", failStyle.Render("✗ FAIL"), titleStyle.Render(name))
	}

	for _, check := range r.Checks {
		if check.Passed {
			fmt.Fprintf(c.out, "  %s %s\n", passStyle.Render("✓"), check.Name)
			continue
		}
		line := fmt.Sprintf("  %s %s", failStyle.Render("✗"), check.Name)
		if check.Detail != "" {
			line += " " + detailStyle.Render("("+check.Detail+")")
		}
		fmt.Fprintln(c.out, line)
	}

	for _, e := range r.Errors {
		fmt.Fprintf(c.out, "  %s %s\n", failStyle.Render("error:"), e)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(c.out, "  %s %s\n", warnStyle.Render("warning:"), w)
	}
	fmt.Fprintln(c.out)
}

// PrintSummary prints the pass count line
func (c *Console) PrintSummary(results []*validator.Result) {
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}

	msg := i18n.T("ValidateSummary", map[string]any{
		"Passed": passed,
		"Total":  len(results),
	}, len(results))

	if passed == len(results) {
		fmt.Fprintln(c.out, passStyle.Render(msg))
	} else {
		fmt.Fprintln(c.out, failStyle.Render(msg))
	}
}

// PrintMarkdown renders markdown for the terminal
func (c *Console) PrintMarkdown(md string) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(c.width),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(c.out, out)
	return err
}
