package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/egoavara/plugin-directory/internal/i18n"
	"github.com/egoavara/plugin-directory/internal/marketplace"
	"github.com/egoavara/plugin-directory/internal/policy"
	"github.com/egoavara/plugin-directory/internal/search"
)

// FinderResult holds the result of TUI selection
type FinderResult struct {
	Entry     *marketplace.Entry
	Cancelled bool
}

// Model is the bubbletea model for the directory finder
type Model struct {
	entries     []marketplace.Entry
	filtered    []marketplace.Entry
	cursor      int
	width       int
	height      int
	searchInput textinput.Model
	quitting    bool
	chosen      bool
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// NewModel creates a new finder model
func NewModel(entries []marketplace.Entry) Model {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 50
	ti.Width = 30

	return Model{
		entries:     entries,
		filtered:    entries,
		searchInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		// If search has text, clear it; otherwise quit
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.filtered) > 0 {
			m.chosen = true
			m.quitting = true
			return m, tea.Quit
		}

	case "backspace":
		val := m.searchInput.Value()
		if len(val) > 0 {
			m.searchInput.SetValue(val[:len(val)-1])
			m.applyFilter()
		}

	default:
		// Any other printable character goes to search
		if len(msg.String()) == 1 && msg.String()[0] >= 32 && msg.String()[0] < 127 {
			m.searchInput.SetValue(m.searchInput.Value() + msg.String())
			m.applyFilter()
		}
	}

	return m, nil
}

func (m *Model) applyFilter() {
	query := m.searchInput.Value()
	if query == "" {
		m.filtered = m.entries
	} else {
		results := search.FuzzySearch(m.entries, query)
		m.filtered = make([]marketplace.Entry, len(results))
		for i, r := range results {
			m.filtered[i] = r.Entry
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

// Selected returns the highlighted entry, or nil when nothing matches
func (m Model) Selected() *marketplace.Entry {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	e := m.filtered[m.cursor]
	return &e
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(i18n.T("TUIHeader", map[string]any{"Count": len(m.entries)})))
	b.WriteString("\n\n")

	listWidth := 40
	previewWidth := max(30, m.width-listWidth-6)
	listHeight := max(5, m.height-8)

	var lines []string
	for i, e := range m.filtered {
		lines = append(lines, m.renderItem(i, e))
	}

	// Paginate if needed
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := min(start+listHeight, len(lines))

	listBox := lipgloss.NewStyle().Width(listWidth).Render(strings.Join(lines[start:end], "\n"))
	previewBox := previewStyle.Width(previewWidth).Height(listHeight).Render(m.renderPreview())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, listBox, "  ", previewBox))
	b.WriteString("\n\n")

	if q := m.searchInput.Value(); q != "" {
		b.WriteString("> " + q + "_")
	} else {
		b.WriteString(helpStyle.Render("> type to filter..."))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓: move | Enter: select | Esc: clear/quit"))

	return b.String()
}

func (m Model) renderItem(idx int, e marketplace.Entry) string {
	cursor := "  "
	if idx == m.cursor {
		cursor = "> "
	}

	text := fmt.Sprintf("%s%s (v%s)", cursor, e.Name, e.Version)
	if idx == m.cursor {
		return selectedStyle.Render(text)
	}
	return normalStyle.Render(text)
}

func (m Model) renderPreview() string {
	e := m.Selected()
	if e == nil {
		return i18n.T("TUIPreviewEmpty", nil)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", e.Name)
	fmt.Fprintf(&b, "ID: %s\n", e.ID)
	fmt.Fprintf(&b, "Version: %s (app >= %s)\n", e.Version, e.MinAppVersion)
	fmt.Fprintf(&b, "Author: %s\n", e.Author)
	fmt.Fprintf(&b, "Repo: %s\n\n", e.Repo)

	if e.Description != "" {
		fmt.Fprintf(&b, "Description:\n  %s\n\n", e.Description)
	}

	if e.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", e.Category)
	}

	if len(e.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}

	if len(e.Permissions) > 0 {
		perms := make([]string, len(e.Permissions))
		for i, p := range e.Permissions {
			if policy.IsDangerousPermission(p) {
				perms[i] = dangerStyle.Render(p)
			} else {
				perms[i] = p
			}
		}
		fmt.Fprintf(&b, "Permissions: %s\n", strings.Join(perms, ", "))
	}

	if e.HelpURL != "" {
		fmt.Fprintf(&b, "Help: %s\n", e.HelpURL)
	}

	return b.String()
}

// RunDirectoryFinder launches the interactive fuzzy finder over directory entries
func RunDirectoryFinder(entries []marketplace.Entry) (*FinderResult, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s", i18n.T("NoPluginsAvailable", nil))
	}

	p := tea.NewProgram(NewModel(entries), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(Model)
	if !m.chosen {
		return &FinderResult{Cancelled: true}, nil
	}

	return &FinderResult{Entry: m.Selected()}, nil
}
