package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/task"
	"github.com/javiermolinar/daystrip/internal/tui/commands"
	"github.com/javiermolinar/daystrip/internal/tui/view"
)

// searchResultRows is the number of results shown at once.
const searchResultRows = 8

// searchState is the state of the search modal.
type searchState struct {
	input    textinput.Model
	matches  []task.Match
	selected int
}

func (m Model) openSearch(query string) (tea.Model, tea.Cmd) {
	in := textinput.New()
	in.Prompt = "/ "
	in.Placeholder = "Search tasks"
	in.CharLimit = 256
	in.Width = formInputWidth
	styleModalInput(&in, m.styles())
	in.SetValue(query)
	in.Focus()

	m.search = &searchState{input: in}
	m.refreshSearch()
	m.mode = ModeModal
	m.modalType = ModalSearch
	return m, textinput.Blink
}

func (m *Model) refreshSearch() {
	if m.search == nil {
		return
	}
	m.search.matches = m.store.SearchMatches(m.search.input.Value())
	m.search.selected = min(m.search.selected, max(0, len(m.search.matches)-1))
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.search
	if s == nil {
		m.closeModal()
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		if len(s.matches) == 0 {
			return m, nil
		}
		return m.jumpToTask(s.matches[s.selected].Task)
	case "up", "ctrl+p", "ctrl+k":
		if s.selected > 0 {
			s.selected--
		}
		return m, nil
	case "down", "ctrl+n", "ctrl+j":
		if s.selected < len(s.matches)-1 {
			s.selected++
		}
		return m, nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.selected = 0
		m.refreshSearch()
	}
	return m, cmd
}

// jumpToTask selects t's day, growing the date window toward it, and puts
// the cursor on t.
func (m Model) jumpToTask(t task.Task) (tea.Model, tea.Cmd) {
	m.closeModal()
	cmd := m.selectDate(t.Date, true)
	m.focusTask(t.ID)
	m.logger.Debug("search_jump", "id", t.ID, "date", t.Date.Key())
	return m, tea.Batch(cmd, commands.Status("Jumped to "+view.DayHeading(t.Date)))
}

func (m Model) searchViewModel() view.SearchModel {
	s := m.search
	results := make([]view.SearchResult, len(s.matches))
	for i, match := range s.matches {
		results[i] = view.SearchResult{
			Title:     match.Task.Title,
			DateLabel: match.Task.Date.Key(),
			Completed: match.Task.Completed,
			Positions: match.Positions,
		}
	}
	return view.SearchModel{
		Input:    s.input.View(),
		Query:    s.input.Value(),
		Results:  results,
		Selected: s.selected,
		MaxRows:  searchResultRows,
		Width:    modalWidth - 4,
	}
}
