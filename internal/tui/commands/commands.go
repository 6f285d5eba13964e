// Package commands provides TUI command constructors and message types.
package commands

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/tui/theme"
)

// LayoutSettledMsg is delivered after the frame that rendered a grown date
// window, when scroll measurements reflect the new content.
type LayoutSettledMsg struct{}

// SystemThemeMsg carries a change of the OS appearance preference.
type SystemThemeMsg struct {
	Mode theme.Mode
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// StatusDuration is how long a status message stays in the footer.
const StatusDuration = 3 * time.Second

// SettleLayout returns a command that reports LayoutSettledMsg. bubbletea
// renders the model before it feeds the result back into Update, so the
// message arrives after the pending layout has been drawn.
func SettleLayout() tea.Cmd {
	return func() tea.Msg {
		return LayoutSettledMsg{}
	}
}

// WaitForSystemTheme blocks on ch and reports the next system theme. It
// returns nil once ch is closed.
func WaitForSystemTheme(ch <-chan theme.Mode) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		mode, ok := <-ch
		if !ok {
			return nil
		}
		return SystemThemeMsg{Mode: mode}
	}
}

// Status returns a command that shows msg in the footer.
func Status(msg string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsgCmd{Msg: msg}
	}
}

// ClearStatusAfter returns a command that clears the status after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// CopyToClipboard writes text with copyFn and reports the outcome as a
// status message.
func CopyToClipboard(copyFn func(string) error, text, what string) tea.Cmd {
	return func() tea.Msg {
		if copyFn == nil {
			return ErrMsg{Err: fmt.Errorf("clipboard unavailable")}
		}
		if err := copyFn(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying %s: %w", what, err)}
		}
		return StatusMsgCmd{Msg: "Copied " + what}
	}
}
