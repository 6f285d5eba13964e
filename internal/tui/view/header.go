package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderModel contains the fields of the title bar.
type HeaderModel struct {
	Width      int
	AppName    string
	Month      string
	ThemeLabel string // e.g. "dark (system)"
	Degraded   bool
	Styles     HeaderStyles
}

// HeaderStyles groups the title bar styles.
type HeaderStyles struct {
	Title   lipgloss.Style
	Meta    lipgloss.Style
	Warning lipgloss.Style
	Bg      lipgloss.Color
}

// RenderHeader renders the title bar with the month on the left and the
// theme state on the right.
func RenderHeader(model HeaderModel) string {
	left := model.Styles.Title.Render(model.AppName) + model.Styles.Meta.Render("  "+model.Month)
	right := model.Styles.Meta.Render(model.ThemeLabel)
	if model.Degraded {
		right = model.Styles.Warning.Render("changes not saved") + model.Styles.Meta.Render("  ") + right
	}

	gap := model.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return FillBox(model.Width, 1, lipgloss.Top, left, model.Styles.Bg)
	}
	fill := lipgloss.NewStyle().Background(model.Styles.Bg).Render(strings.Repeat(" ", gap))
	return left + fill + right
}
