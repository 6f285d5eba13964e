package view

import (
	"github.com/charmbracelet/lipgloss"
)

// ConfirmDeleteStyles groups styles for the delete confirmation body.
type ConfirmDeleteStyles struct {
	BodyStyle  lipgloss.Style
	LabelStyle lipgloss.Style
}

// RenderConfirmDeleteBody renders the delete confirmation body.
func RenderConfirmDeleteBody(title, dateLabel string, styles ConfirmDeleteStyles) string {
	body := styles.BodyStyle.Render("Delete this task?") + "\n\n"
	body += styles.LabelStyle.Render(title)
	if dateLabel != "" {
		body += "\n" + styles.BodyStyle.Render(dateLabel)
	}
	return body
}
