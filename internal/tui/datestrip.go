package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/datewindow"
	"github.com/javiermolinar/daystrip/internal/tui/commands"
	"github.com/javiermolinar/daystrip/internal/tui/view"
)

// maybeExtend grows the date window when a sentinel is within the configured
// margin of the viewport. The returned command settles the extension once the
// grown window has been rendered.
func (m *Model) maybeExtend() tea.Cmd {
	if m.window.Extending() || m.viewport.Width() == 0 {
		return nil
	}

	before, after := m.viewport.SentinelsVisible(m.config.Strip.SentinelMargin)
	var dir datewindow.Direction
	switch {
	case before:
		dir = datewindow.Before
	case after:
		dir = datewindow.After
	default:
		return nil
	}

	p, ok := m.window.RequestExtend(dir, m.viewport)
	if !ok {
		return nil
	}
	m.pending = p
	m.logger.Debug("strip_extend",
		"direction", dir.String(),
		"added", p.Added(),
		"first", m.window.First().Key(),
		"last", m.window.Last().Key(),
		"offset", m.viewport.ScrollOffset(),
	)
	return commands.SettleLayout()
}

// settle runs the post-layout phase of a pending extension and checks the
// sentinels again, so a wide viewport keeps growing until it is filled.
func (m *Model) settle() tea.Cmd {
	if m.pending == nil {
		return nil
	}
	p := m.pending
	m.pending = nil
	p.Settle()
	m.logger.Debug("strip_settled",
		"direction", p.Direction().String(),
		"offset", m.viewport.ScrollOffset(),
		"extent", m.viewport.ContentExtent(),
	)
	return m.maybeExtend()
}

// flushPending settles an outstanding extension before the window is
// changed by anything else.
func (m *Model) flushPending() {
	if m.pending != nil {
		m.pending.Settle()
		m.pending = nil
	}
}

// selectDate moves the selection to d, growing the window toward it first
// when needed.
func (m *Model) selectDate(d dateutil.Date, center bool) tea.Cmd {
	m.flushPending()
	if !m.window.Contains(d) {
		batches := m.window.ExtendToward(d, m.viewport)
		m.logger.Debug("strip_extend_toward", "target", d.Key(), "batches", batches)
	}
	if !d.Equal(m.selected) {
		m.cursor = 0
	}
	m.selected = d
	m.clampCursor()
	m.scrollToSelected(center)
	return m.maybeExtend()
}

func (m *Model) scrollToSelected(center bool) {
	i, ok := m.window.IndexOf(m.selected)
	if !ok {
		return
	}
	if center {
		m.viewport.Center(i)
		return
	}
	m.viewport.EnsureVisible(i)
}

// renderStrip renders the visible chips, one string per chip row.
func (m Model) renderStrip() string {
	first, last := m.viewport.VisibleRange()
	if first < 0 {
		return strings.Repeat("\n", view.StripRows-1)
	}

	chips := make([]view.ChipModel, 0, last-first+1)
	for i := first; i <= last; i++ {
		d := m.window.At(i)
		marks := m.store.Marks(d)
		chips = append(chips, view.ChipModel{
			Label:     view.ChipLabel(d),
			Completed: marks.Completed,
			Pending:   marks.Pending,
			Today:     d.Equal(m.today),
			Selected:  d.Equal(m.selected),
		})
	}

	rows := view.RenderChipRows(chips, m.viewport.ChipWidth(), m.styles().ChipStyles())
	for i := range rows {
		rows[i] = m.viewport.Crop(rows[i], first)
	}
	return strings.Join(rows, "\n")
}

// inStrip reports whether terminal row y shows chips.
func inStrip(y int) bool {
	return y >= stripTop && y < stripTop+view.StripRows
}
