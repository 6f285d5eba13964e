package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Task form fields, in focus order.
const (
	FieldTitle = iota
	FieldDescription
	FieldDate
	FieldCompleted
	FieldCount
)

// TaskFormModel contains the fields needed to render the task form body.
type TaskFormModel struct {
	DateLabel   string
	Title       string // rendered text input
	Description string // rendered text input
	Date        string // rendered text input
	Completed   bool
	Focus       int
	Error       string
}

// TaskFormStyles groups styles for the task form body.
type TaskFormStyles struct {
	TagStyle          lipgloss.Style
	BodyStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	ActiveTitleStyle  lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
}

// RenderTaskFormBody renders the modal body for the task form.
func RenderTaskFormBody(model TaskFormModel, styles TaskFormStyles) string {
	var body strings.Builder

	if model.DateLabel != "" {
		body.WriteString(styles.TagStyle.Render(model.DateLabel) + "\n\n")
	}

	section := func(field int, label string) {
		style := styles.SectionTitleStyle
		if field == model.Focus {
			style = styles.ActiveTitleStyle
		}
		body.WriteString(style.Render(label) + "\n")
	}

	section(FieldTitle, "TITLE")
	body.WriteString(model.Title + "\n\n")

	section(FieldDescription, "DESCRIPTION")
	body.WriteString(model.Description + "\n\n")

	section(FieldDate, "DATE")
	body.WriteString(model.Date + "\n")
	if model.Focus == FieldDate {
		body.WriteString(styles.HintStyle.Render("YYYY-MM-DD, today, tomorrow or a weekday") + "\n")
	}
	body.WriteString("\n")

	section(FieldCompleted, "STATUS")
	status := PendingGlyph + " Pending"
	if model.Completed {
		status = DoneGlyph + " Completed"
	}
	body.WriteString(styles.BodyStyle.Render(status))
	if model.Focus == FieldCompleted {
		body.WriteString(styles.BodyStyle.Render(" ") + styles.HintStyle.Render("space to toggle"))
	}
	body.WriteString("\n")

	if model.Error != "" {
		body.WriteString("\n" + styles.ErrorStyle.Render(model.Error) + "\n")
	}

	return body.String()
}
