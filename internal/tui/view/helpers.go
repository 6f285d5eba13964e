package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FillBox places content in a w×h box and paints the unused cells with bg.
func FillBox(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return PadBlock(placed, w, h, bg)
}

// PadBlock pads every line of content to width with bg and the block to
// height lines, dropping lines beyond it. Lines wider than width are kept.
func PadBlock(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	fill := lipgloss.NewStyle().Background(bg)
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + fill.Render(strings.Repeat(" ", gap))
		}
	}
	return strings.Join(lines, "\n")
}

// block is a rendered region with its width in display cells.
type block struct {
	lines []string
	width int
}

func newBlock(s string) block {
	b := block{lines: strings.Split(s, "\n")}
	for _, line := range b.lines {
		b.width = max(b.width, lipgloss.Width(line))
	}
	return b
}

// Overlay centers box over base, a width×height frame. Each box line is
// squared to the box width in boxBg so the dialog reads as one panel over
// the strip and task list.
func Overlay(base, box string, width, height int, boxBg lipgloss.Color) string {
	dialog := newBlock(box)
	if dialog.width == 0 {
		return base
	}
	dialog.width = min(dialog.width, width)

	top := max(0, (height-len(dialog.lines))/2)
	left := max(0, (width-dialog.width)/2)
	bgSeq := backgroundSeq(boxBg)
	fill := lipgloss.NewStyle().Background(boxBg)

	rows := strings.Split(PadBlock(base, width, height, ""), "\n")
	for i, line := range dialog.lines {
		row := top + i
		if row >= len(rows) {
			break
		}
		if w := lipgloss.Width(line); w > dialog.width {
			line = ansi.Cut(line, 0, dialog.width)
		} else if w < dialog.width {
			line += fill.Render(strings.Repeat(" ", dialog.width-w))
		}
		if bgSeq != "" {
			line = keepBackground(line, bgSeq) + ansi.ResetStyle
		}
		rows[row] = ansi.Cut(rows[row], 0, left) + line + ansi.Cut(rows[row], left+dialog.width, width)
	}
	return strings.Join(rows, "\n")
}

// keepBackground re-applies bgSeq after every reset inside line, so text
// styled without a background still sits on the dialog color.
func keepBackground(line, bgSeq string) string {
	for _, reset := range []string{ansi.ResetStyle, "\x1b[0m", "\x1b[49m"} {
		line = strings.ReplaceAll(line, reset, reset+bgSeq)
	}
	return line
}

func backgroundSeq(bg lipgloss.Color) string {
	if bg == "" {
		return ""
	}
	return ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
}
