package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SearchResult is one row in the search modal.
type SearchResult struct {
	Title     string
	DateLabel string
	Completed bool
	Positions []int // byte offsets of matched characters in Title
}

// SearchModel contains the fields needed to render the search body.
type SearchModel struct {
	Input    string // rendered text input
	Query    string
	Results  []SearchResult
	Selected int
	MaxRows  int
	Width    int
}

// SearchStyles groups styles for the search body.
type SearchStyles struct {
	BodyStyle     lipgloss.Style
	MetaStyle     lipgloss.Style
	MatchStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	HintStyle     lipgloss.Style
}

// RenderSearchBody renders the query input and the ranked results.
func RenderSearchBody(model SearchModel, styles SearchStyles) string {
	var b strings.Builder
	b.WriteString(model.Input + "\n\n")

	switch {
	case strings.TrimSpace(model.Query) == "":
		b.WriteString(styles.HintStyle.Render("Type to search titles and descriptions"))
		return b.String()
	case len(model.Results) == 0:
		b.WriteString(styles.HintStyle.Render("No matching tasks"))
		return b.String()
	}

	rows := model.MaxRows
	if rows <= 0 {
		rows = len(model.Results)
	}
	first := 0
	if model.Selected >= rows {
		first = model.Selected - rows + 1
	}
	last := min(len(model.Results), first+rows)

	lines := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		lines = append(lines, renderSearchRow(model.Results[i], i == model.Selected, model.Width, styles))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func renderSearchRow(r SearchResult, selected bool, width int, styles SearchStyles) string {
	base := styles.BodyStyle
	if selected {
		base = styles.SelectedStyle
	}
	match := styles.MatchStyle.Background(base.GetBackground())

	mark := PendingGlyph
	if r.Completed {
		mark = DoneGlyph
	}
	date := styles.MetaStyle.Background(base.GetBackground()).Render(r.DateLabel)
	prefix := base.Render(mark+" ") + date + base.Render("  ")

	title := r.Title
	if width > 0 {
		title = Truncate(title, max(0, width-lipgloss.Width(prefix)))
	}
	return prefix + HighlightMatches(title, r.Positions, base, match)
}

// HighlightMatches renders s with the characters at the given byte offsets
// in match style and the rest in base style.
func HighlightMatches(s string, positions []int, base, match lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(s)
	}
	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}

	var b strings.Builder
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			b.WriteString(match.Render(run.String()))
		} else {
			b.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}
	for i, r := range s {
		if hit[i] != runMatched {
			flush()
			runMatched = hit[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}
