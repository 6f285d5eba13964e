// Package view provides view composition helpers for the TUI.
package view

import (
	"github.com/charmbracelet/lipgloss"
)

// ViewState contains the pre-rendered sections of a frame.
type ViewState struct {
	Width            int
	Height           int
	Header           string
	Strip            string
	Body             string
	Footer           string
	ModalContent     string
	ShowModal        bool
	Bg               lipgloss.Color
	ModalBg          lipgloss.Color
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	base := lipgloss.JoinVertical(lipgloss.Left, state.Header, state.Strip, state.Body, state.Footer)
	base = PadBlock(base, state.Width, state.Height, state.Bg)
	if state.ShowModal && state.ModalContent != "" {
		return Overlay(base, state.ModalContent, state.Width, state.Height, state.ModalBg)
	}
	return base
}
