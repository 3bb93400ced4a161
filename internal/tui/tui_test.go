package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/egoavara/plugin-directory/internal/marketplace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEntries = []marketplace.Entry{
	{ID: "com.acme.habits", Name: "Habit Streaks", Version: "1.0.0", Permissions: []string{"read:habits"}},
	{ID: "com.acme.pomodoro", Name: "Pomodoro Timer", Version: "2.1.0", Permissions: []string{"network"}},
	{ID: "com.acme.weather", Name: "Weather", Version: "0.3.0"},
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModel_Navigation(t *testing.T) {
	m := press(NewModel(testEntries), "down", "down", "down")
	assert.Equal(t, "com.acme.weather", m.Selected().ID)

	m = press(m, "up")
	assert.Equal(t, "com.acme.pomodoro", m.Selected().ID)
}

func TestModel_Filter(t *testing.T) {
	m := press(NewModel(testEntries), "w", "e", "a")
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "com.acme.weather", m.Selected().ID)

	m = press(m, "backspace", "backspace", "backspace")
	assert.Len(t, m.filtered, 3)

	m = press(m, "q", "q", "q", "q")
	assert.Empty(t, m.filtered)
	assert.Nil(t, m.Selected())

	m = press(m, "esc")
	assert.Len(t, m.filtered, 3)
	assert.False(t, m.quitting)
}

func TestModel_Select(t *testing.T) {
	m := NewModel(testEntries)
	next, cmd := press(m, "down").Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.chosen)
	assert.Equal(t, "com.acme.pomodoro", m.Selected().ID)
}

func TestModel_Quit(t *testing.T) {
	m := press(NewModel(testEntries), "esc")
	assert.True(t, m.quitting)
	assert.False(t, m.chosen)
	assert.Empty(t, m.View())
}

func TestModel_View(t *testing.T) {
	next, _ := NewModel(testEntries).Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m := press(next.(Model), "down")

	view := m.View()
	assert.Contains(t, view, "Pomodoro Timer")
	assert.Contains(t, view, "com.acme.pomodoro")
	assert.Contains(t, view, "network")
}

func TestSpinner(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf)

	s.Begin("plugins/com.a.one.json")
	s.End("plugins/com.a.one.json", nil)
	s.Begin("plugins/com.a.two.json")
	s.End("plugins/com.a.two.json", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "✓ com.a.one.json\n")
	assert.Contains(t, out, "✗ com.a.two.json\n")
	assert.Less(t, strings.Index(out, "com.a.one"), strings.Index(out, "com.a.two"))
}

func TestRunDirectoryFinder_Empty(t *testing.T) {
	_, err := RunDirectoryFinder(nil)
	assert.Error(t, err)
}
