package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/task"
	"github.com/javiermolinar/daystrip/internal/tui/commands"
	"github.com/javiermolinar/daystrip/internal/tui/input"
)

var promptCommands = []input.PromptCommand{
	{Name: "/goto", Args: "DATE", Description: "Jump to a date (YYYY-MM-DD, tomorrow, friday)"},
	{Name: "/today", Description: "Jump to today"},
	{Name: "/add", Args: "TITLE", Description: "Add a task to the selected day"},
	{Name: "/search", Args: "QUERY", Description: "Search all tasks"},
	{Name: "/theme", Description: "Toggle light/dark theme"},
	{Name: "/help", Description: "Show key bindings"},
	{Name: "/quit", Description: "Quit daystrip"},
}

func (m Model) openPrompt() (tea.Model, tea.Cmd) {
	m.mode = ModePrompt
	m.prompt.SetValue("/")
	m.prompt.CursorEnd()
	m.prompt.Focus()
	return m, textinput.Blink
}

func (m *Model) closePrompt() {
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
}

func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "tab":
		if value, ok := input.PromptAutocomplete(m.prompt.Value(), promptCommands); ok {
			m.prompt.SetValue(value)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		value := m.prompt.Value()
		m.closePrompt()
		return m.runPromptCommand(value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) runPromptCommand(value string) (tea.Model, tea.Cmd) {
	name, arg, ok := input.ParsePrompt(value)
	if !ok {
		return m, nil
	}
	m.logger.Debug("prompt_command", "name", name, "arg", arg)

	switch name {
	case "/goto":
		d, err := dateutil.ParseRelative(arg, m.now())
		if err != nil {
			m.setStatus(fmt.Sprintf("Unknown date %q", arg), true)
			return m, commands.ClearStatusAfter(commands.StatusDuration)
		}
		cmd := m.selectDate(d, true)
		return m, cmd
	case "/today":
		cmd := m.selectDate(m.today, true)
		return m, cmd
	case "/add":
		t, err := m.store.Create(context.Background(), task.Draft{Title: arg, Date: m.selected})
		if err != nil {
			m.setStatus("Usage: /add TITLE", true)
			return m, commands.ClearStatusAfter(commands.StatusDuration)
		}
		m.focusTask(t.ID)
		return m, commands.Status(m.savedStatus("Task added"))
	case "/search":
		return m.openSearch(arg)
	case "/theme":
		cmd := m.toggleTheme()
		return m, cmd
	case "/help":
		return m.openHelp()
	case "/quit":
		return m, tea.Quit
	default:
		m.setStatus(fmt.Sprintf("Unknown command %s", name), true)
		return m, commands.ClearStatusAfter(commands.StatusDuration)
	}
}

// promptHint lists the commands matching the prompt input.
func (m Model) promptHint() string {
	matches := input.PromptMatchingCommands(m.prompt.Value(), promptCommands)
	if len(matches) == 0 {
		return "enter run • tab complete • esc cancel"
	}
	hints := make([]string, len(matches))
	for i, c := range matches {
		hints[i] = c.Hint()
	}
	return strings.Join(hints, "  ")
}
