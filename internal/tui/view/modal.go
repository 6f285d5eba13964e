// Package view provides rendering helpers for the TUI.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles groups the styles needed to render a dialog frame and its key hints.
type ModalStyles struct {
	Frame   lipgloss.Style
	Header  lipgloss.Style
	Title   lipgloss.Style
	Footer  lipgloss.Style
	Hint    lipgloss.Style
	Default lipgloss.Style // the first hint, the action enter triggers
	Body    lipgloss.Style
}

// KeyHint is one key binding shown in a dialog footer.
type KeyHint struct {
	Keys   string
	Action string
}

func (h KeyHint) label(short bool) string {
	if short {
		return "[" + h.Keys + "]"
	}
	return "[" + h.Keys + "] " + h.Action
}

// Key hints for each dialog.
var (
	TaskFormHints      = []KeyHint{{"Enter", "Save"}, {"Tab", "Next"}, {"Esc", "Cancel"}}
	ConfirmDeleteHints = []KeyHint{{"y/Enter", "Delete"}, {"n/Esc", "Keep"}}
	SearchHints        = []KeyHint{{"Enter", "Jump"}, {"↑/↓", "Select"}, {"Esc", "Close"}}
	HelpHints          = []KeyHint{{"Esc", "Close"}}
)

// Dialog is a framed modal. MaxWidth bounds the hint row; zero means no bound.
type Dialog struct {
	Title    string
	Body     string
	Hints    []KeyHint
	MaxWidth int
}

// RenderDialog renders d inside the modal frame.
func RenderDialog(d Dialog, styles ModalStyles) string {
	var b strings.Builder
	b.WriteString(styles.Header.Render(styles.Title.Render(d.Title)))
	if d.Body != "" {
		b.WriteString("\n\n")
		b.WriteString(d.Body)
	}
	if len(d.Hints) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.Footer.Render(RenderKeyHints(d.Hints, d.MaxWidth, styles)))
	}
	return styles.Frame.Render(b.String())
}

// RenderKeyHints renders hints as a row of buttons. When the row is wider
// than maxWidth the button padding shrinks to one cell, then every action
// but the default one is dropped.
func RenderKeyHints(hints []KeyHint, maxWidth int, styles ModalStyles) string {
	row := renderHintRow(hints, styles, -1, false)
	if maxWidth <= 0 || lipgloss.Width(row) <= maxWidth {
		return row
	}
	row = renderHintRow(hints, styles, 1, false)
	if lipgloss.Width(row) <= maxWidth {
		return row
	}
	return renderHintRow(hints, styles, 1, true)
}

// renderHintRow joins the hint buttons. A negative pad keeps the style's
// own padding.
func renderHintRow(hints []KeyHint, styles ModalStyles, pad int, short bool) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		style := styles.Hint
		if i == 0 {
			style = styles.Default
		}
		if pad >= 0 {
			style = style.Padding(0, pad)
		}
		parts[i] = style.Render(h.label(short && i > 0))
	}
	return strings.Join(parts, styles.Body.Render(" "))
}
