package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/task"
	"github.com/javiermolinar/daystrip/internal/tui/commands"
	"github.com/javiermolinar/daystrip/internal/tui/view"
)

var keyHelp = []view.HelpEntry{
	{Keys: "h/l ←/→", Desc: "previous/next day"},
	{Keys: "H/L", Desc: "previous/next week"},
	{Keys: "t", Desc: "jump to today"},
	{Keys: "pgup/pgdn", Desc: "scroll the strip"},
	{Keys: "j/k ↑/↓", Desc: "move between tasks"},
	{Keys: "a", Desc: "add a task"},
	{Keys: "e/enter", Desc: "edit task"},
	{Keys: "space", Desc: "toggle completed"},
	{Keys: "d", Desc: "delete task"},
	{Keys: "/", Desc: "search all tasks"},
	{Keys: "y", Desc: "copy the day's tasks"},
	{Keys: "T", Desc: "toggle light/dark theme"},
	{Keys: ":", Desc: "command prompt"},
	{Keys: "q", Desc: "quit"},
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug("key_press", "key", msg.String(), "mode", m.mode.String())

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Day navigation
	case "h", "left":
		cmd := m.selectDate(m.selected.AddDays(-1), false)
		return m, cmd
	case "l", "right":
		cmd := m.selectDate(m.selected.AddDays(1), false)
		return m, cmd
	case "H", "shift+left":
		cmd := m.selectDate(m.selected.AddDays(-7), false)
		return m, cmd
	case "L", "shift+right":
		cmd := m.selectDate(m.selected.AddDays(7), false)
		return m, cmd
	case "t":
		cmd := m.selectDate(m.today, true)
		return m, cmd

	// Strip scrolling without changing the selection
	case "pgup":
		m.viewport.ScrollBy(-m.viewport.Width())
		cmd := m.maybeExtend()
		return m, cmd
	case "pgdown":
		m.viewport.ScrollBy(m.viewport.Width())
		cmd := m.maybeExtend()
		return m, cmd

	// Task cursor
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()

	// Actions
	case "a":
		return m.openTaskForm(nil)
	case "e", "enter":
		if t, ok := m.cursorTask(); ok {
			return m.openTaskForm(&t)
		}
	case " ":
		return m.toggleCompleted()
	case "d", "delete":
		if t, ok := m.cursorTask(); ok {
			m.confirmTask = t
			m.mode = ModeModal
			m.modalType = ModalConfirmDelete
		}
	case "T":
		cmd := m.toggleTheme()
		return m, cmd
	case "/":
		return m.openSearch("")
	case ":":
		return m.openPrompt()
	case "y":
		return m, m.copyDay()
	case "?":
		return m.openHelp()
	}

	return m, nil
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalTaskForm:
		return m.handleTaskFormKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalSearch:
		return m.handleSearchKeys(msg)
	case ModalHelp:
		switch msg.String() {
		case "esc", "q", "?", "enter":
			m.closeModal()
		}
		return m, nil
	default:
		m.closeModal()
		return m, nil
	}
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		t := m.confirmTask
		m.closeModal()
		if err := m.store.Delete(context.Background(), t.ID); err != nil {
			return m, func() tea.Msg { return commands.ErrMsg{Err: err} }
		}
		m.clampCursor()
		m.logger.Debug("task_deleted", "id", t.ID)
		return m, commands.Status(m.savedStatus("Task deleted"))
	case "n", "esc":
		m.closeModal()
	}
	return m, nil
}

func (m Model) openHelp() (tea.Model, tea.Cmd) {
	m.mode = ModeModal
	m.modalType = ModalHelp
	return m, nil
}

func (m Model) toggleCompleted() (tea.Model, tea.Cmd) {
	t, ok := m.cursorTask()
	if !ok {
		return m, nil
	}
	updated, err := m.store.ToggleCompleted(context.Background(), t.ID)
	if err != nil {
		return m, func() tea.Msg { return commands.ErrMsg{Err: err} }
	}
	m.focusTask(updated.ID)
	status := "Marked pending"
	if updated.Completed {
		status = "Marked completed"
	}
	return m, commands.Status(m.savedStatus(status))
}

// toggleTheme flips the effective theme. Styles are swapped by the resolver
// change listener; inputs are restyled here.
func (m *Model) toggleTheme() tea.Cmd {
	mode := m.resolver.Toggle(context.Background())
	m.applyInputStyles()
	m.logger.Debug("theme_toggled", "mode", string(mode), "follows_system", m.resolver.FollowsSystem())
	return commands.Status(fmt.Sprintf("Theme: %s", m.themeLabel()))
}

func (m Model) themeLabel() string {
	source := "override"
	if m.resolver.FollowsSystem() {
		source = "system"
	}
	return fmt.Sprintf("%s (%s)", m.resolver.Current(), source)
}

func (m Model) copyDay() tea.Cmd {
	tasks := m.dayTasks()
	if len(tasks) == 0 {
		return commands.Status("Nothing to copy")
	}
	return commands.CopyToClipboard(m.copyFn, dayClipboardText(view.DayHeading(m.selected), tasks), "tasks")
}

// dayClipboardText renders tasks as a markdown checklist under heading.
func dayClipboardText(heading string, tasks []task.Task) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s", mark, t.Title)
		if t.Description != "" {
			b.WriteString(": " + t.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
