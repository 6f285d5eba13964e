package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ChipModel contains the fields of one date chip.
type ChipModel struct {
	Label     string
	Completed int
	Pending   int
	Today     bool
	Selected  bool
}

// ChipStyles groups chip styles. Mark styles only set foregrounds; the chip
// background is applied to them when rendering.
type ChipStyles struct {
	Chip        lipgloss.Style
	Today       lipgloss.Style
	Selected    lipgloss.Style
	DoneMark    lipgloss.Style
	PendingMark lipgloss.Style
}

// Chip mark glyphs.
const (
	DoneGlyph    = "●"
	PendingGlyph = "○"
)

// StripRows is the number of terminal rows a chip occupies.
const StripRows = 2

// RenderChipRows renders chips side by side, each exactly width cells wide.
// It returns one string per chip row.
func RenderChipRows(chips []ChipModel, width int, styles ChipStyles) []string {
	rows := make([]strings.Builder, StripRows)
	for _, c := range chips {
		base := styles.Chip
		switch {
		case c.Selected:
			base = styles.Selected
		case c.Today:
			base = styles.Today
		}
		bg := base.GetBackground()

		rows[0].WriteString(centerCell(base.Render(Truncate(c.Label, width)), width, base))
		rows[1].WriteString(centerCell(renderMarks(c, bg, styles, c.Selected), width, base))
	}

	out := make([]string, StripRows)
	for i := range rows {
		out[i] = rows[i].String()
	}
	return out
}

func renderMarks(c ChipModel, bg lipgloss.TerminalColor, styles ChipStyles, selected bool) string {
	done := styles.DoneMark.Background(bg)
	pending := styles.PendingMark.Background(bg)
	if selected {
		// the selected background is the accent color; marks use its text color
		done = done.Foreground(styles.Selected.GetForeground())
		pending = pending.Foreground(styles.Selected.GetForeground())
	}

	var parts []string
	if c.Completed > 0 {
		parts = append(parts, done.Render(fmt.Sprintf("%s%d", DoneGlyph, c.Completed)))
	}
	if c.Pending > 0 {
		parts = append(parts, pending.Render(fmt.Sprintf("%s%d", PendingGlyph, c.Pending)))
	}
	return strings.Join(parts, lipgloss.NewStyle().Background(bg).Render(" "))
}

// centerCell pads styled content to width using fill's background.
func centerCell(content string, width int, fill lipgloss.Style) string {
	w := lipgloss.Width(content)
	if w >= width {
		return content
	}
	pad := lipgloss.NewStyle().Background(fill.GetBackground())
	left := (width - w) / 2
	right := width - w - left
	return pad.Render(strings.Repeat(" ", left)) + content + pad.Render(strings.Repeat(" ", right))
}
