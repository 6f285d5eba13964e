package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TaskRow is one task in the day list.
type TaskRow struct {
	Title       string
	Description string
	Completed   bool
}

// TaskListModel contains the fields of the day task list.
type TaskListModel struct {
	Width   int
	Height  int
	Heading string
	Rows    []TaskRow
	Cursor  int
	Empty   string
	Styles  TaskListStyles
}

// TaskListStyles groups the task list styles.
type TaskListStyles struct {
	Heading     lipgloss.Style
	Row         lipgloss.Style
	RowDone     lipgloss.Style
	RowSelected lipgloss.Style
	Description lipgloss.Style
	Empty       lipgloss.Style
	DoneMark    lipgloss.Style
	PendingMark lipgloss.Style
	Bg          lipgloss.Color
}

// RenderTaskList renders the heading and as many rows as fit, keeping the
// cursor row in view.
func RenderTaskList(model TaskListModel) string {
	if model.Height <= 0 {
		return ""
	}

	lines := []string{model.Styles.Heading.Render(Truncate(model.Heading, model.Width)), ""}
	if len(model.Rows) == 0 {
		lines = append(lines, model.Styles.Empty.Render(Truncate(model.Empty, model.Width)))
		return FillBox(model.Width, model.Height, lipgloss.Top, strings.Join(lines, "\n"), model.Styles.Bg)
	}

	visible := max(1, model.Height-len(lines))
	first := 0
	if model.Cursor >= visible {
		first = model.Cursor - visible + 1
	}
	last := min(len(model.Rows), first+visible)

	for i := first; i < last; i++ {
		lines = append(lines, renderTaskRow(model.Rows[i], i == model.Cursor, model.Width, model.Styles))
	}
	return FillBox(model.Width, model.Height, lipgloss.Top, strings.Join(lines, "\n"), model.Styles.Bg)
}

func renderTaskRow(row TaskRow, selected bool, width int, styles TaskListStyles) string {
	style := styles.Row
	if row.Completed {
		style = styles.RowDone
	}
	if selected {
		style = styles.RowSelected
	}
	bg := style.GetBackground()

	mark := styles.PendingMark.Background(bg).Render(PendingGlyph)
	if row.Completed {
		mark = styles.DoneMark.Background(bg).Render(DoneGlyph)
	}
	prefix := style.Render(" ") + mark + style.Render(" ")

	avail := width - lipgloss.Width(prefix)
	text := style.Render(Truncate(row.Title, avail))
	if row.Description != "" {
		rest := avail - lipgloss.Width(text) - 2
		if rest > 3 {
			text += style.Render("  ") + styles.Description.Background(bg).Render(Truncate(row.Description, rest))
		}
	}

	line := prefix + text
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += style.Render(strings.Repeat(" ", pad))
	}
	return line
}
