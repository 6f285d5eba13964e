package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is one key binding line.
type HelpEntry struct {
	Keys string
	Desc string
}

// HelpStyles groups styles for the help body.
type HelpStyles struct {
	KeyStyle  lipgloss.Style
	DescStyle lipgloss.Style
}

// RenderHelpBody renders key bindings as two aligned columns.
func RenderHelpBody(entries []HelpEntry, styles HelpStyles) string {
	keyW := 0
	for _, e := range entries {
		keyW = max(keyW, lipgloss.Width(e.Keys))
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		pad := strings.Repeat(" ", keyW-lipgloss.Width(e.Keys)+2)
		lines = append(lines, styles.KeyStyle.Render(e.Keys)+styles.DescStyle.Render(pad+e.Desc))
	}
	return strings.Join(lines, "\n")
}
