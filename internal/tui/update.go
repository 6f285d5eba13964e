package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/tui/commands"
)

const errorStatusDuration = 5 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		// center on the first size, keep the selection in view afterwards
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.SetWidth(m.width)
		m.scrollToSelected(first)
		cmd := m.maybeExtend()
		return m, cmd

	case commands.LayoutSettledMsg:
		cmd := m.settle()
		return m, cmd

	case commands.SystemThemeMsg:
		if m.resolver.OnSystemChange(msg.Mode) {
			m.applyInputStyles()
		}
		m.logger.Debug("system_theme", "mode", string(msg.Mode), "effective", string(m.resolver.Current()))
		return m, commands.WaitForSystemTheme(m.systemThemes)

	case commands.ErrMsg:
		m.logger.Warn("tui_error", "error", msg.Err)
		m.setStatus(fmt.Sprintf("Error: %v", msg.Err), true)
		return m, commands.ClearStatusAfter(errorStatusDuration)

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg, false)
		return m, commands.ClearStatusAfter(commands.StatusDuration)

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	// Cursor blink and other input messages go to the focused input.
	return m.updateFocusedInput(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.mode == ModePrompt:
		m.prompt, cmd = m.prompt.Update(msg)
	case m.modalType == ModalTaskForm && m.form != nil:
		if in := m.form.focusedInput(); in != nil {
			*in, cmd = in.Update(msg)
		}
	case m.modalType == ModalSearch && m.search != nil:
		m.search.input, cmd = m.search.input.Update(msg)
	}
	return m, cmd
}

// handleMouseMsg scrolls the strip with the wheel and selects clicked chips.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	if m.viewport.Wheel(msg.Button) {
		m.logger.Debug("strip_wheel", "button", msg.String(), "offset", m.viewport.ScrollOffset())
		cmd := m.maybeExtend()
		return m, cmd
	}

	if msg.Button == tea.MouseButtonLeft && inStrip(msg.Y) {
		if i, ok := m.viewport.ChipAt(msg.X); ok {
			cmd := m.selectDate(m.window.At(i), false)
			return m, cmd
		}
	}
	return m, nil
}
