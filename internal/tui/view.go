package tui

import (
	"strings"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/tui/view"
)

const (
	minWidth  = 30
	minHeight = headerHeight + 3 + footerHeight + 2
)

// View renders the TUI.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	s := m.styles()
	state := view.ViewState{
		Width:            m.width,
		Height:           m.height,
		Bg:               s.colorBg,
		ModalBg:          s.ModalBgColor,
		EmptyPlaceholder: "Loading...",
	}
	if m.width == 0 || m.height == 0 {
		return state
	}
	if m.width < minWidth || m.height < minHeight {
		state.Header = "Terminal too small"
		return state
	}

	state.Header = m.renderHeader()
	state.Strip = m.renderStrip() + strings.Repeat("\n", stripGap)
	state.Body = m.renderTaskList()
	state.Footer = m.renderFooter()

	if m.mode == ModeModal && m.modalType != ModalNone {
		state.ShowModal = true
		state.ModalContent = m.renderModal()
	}
	return state
}

func (m Model) bodyHeight() int {
	return max(0, m.height-headerHeight-view.StripRows-stripGap-footerHeight)
}

func (m Model) renderHeader() string {
	label := m.themeLabel()
	if name := m.styles().Name; name != "" {
		label = name + " · " + label
	}
	return view.RenderHeader(view.HeaderModel{
		Width:      m.width,
		AppName:    "daystrip",
		Month:      view.MonthLabel(m.selected),
		ThemeLabel: label,
		Degraded:   m.store.Degraded(),
		Styles:     m.styles().HeaderStyles(),
	})
}

func (m Model) renderTaskList() string {
	tasks := m.dayTasks()
	rows := make([]view.TaskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = view.TaskRow{Title: t.Title, Description: t.Description, Completed: t.Completed}
	}

	heading := view.DayHeading(m.selected)
	if m.selected.Equal(m.today) {
		heading += " · today"
	}
	return view.RenderTaskList(view.TaskListModel{
		Width:   m.width,
		Height:  m.bodyHeight(),
		Heading: heading,
		Rows:    rows,
		Cursor:  m.cursor,
		Empty:   "No tasks for this day. Press a to add one.",
		Styles:  m.styles().TaskListStyles(),
	})
}

func (m Model) renderFooter() string {
	s := m.styles()
	model := view.FooterModel{
		InnerW:      m.width,
		StatusText:  m.statusMsg,
		HelpText:    "a add • e edit • space done • d delete • / search • T theme • ? help • q quit",
		StatusStyle: s.StatusStyle,
		HelpStyle:   s.HelpStyle,
		Bg:          s.colorBg,
	}
	if m.statusErr {
		model.StatusStyle = s.ErrorStyle
	}
	if m.mode == ModePrompt {
		model.StatusText = m.prompt.View()
		model.StatusStyle = s.PromptStyle
		model.HelpText = m.promptHint()
	}
	return view.RenderFooter(model)
}

func (m Model) renderModal() string {
	s := m.styles()
	set := s.ModalStyleSet()

	// hints share the frame's inner width with the body
	d := view.Dialog{MaxWidth: modalWidth - 2}
	switch m.modalType {
	case ModalTaskForm:
		if m.form == nil {
			return ""
		}
		d.Title = "Edit task"
		if m.form.isNew() {
			d.Title = "New task"
		}
		label := view.DayHeading(m.selected)
		if day, err := dateutil.ParseRelative(m.form.date.Value(), m.now()); err == nil {
			label = view.DayHeading(day)
		}
		d.Body = view.RenderTaskFormBody(m.form.viewModel(label), set.TaskFormStyles())
		d.Hints = view.TaskFormHints
	case ModalConfirmDelete:
		d.Title = "Delete task"
		d.Body = view.RenderConfirmDeleteBody(m.confirmTask.Title, view.DayHeading(m.confirmTask.Date), set.ConfirmDeleteStyles())
		d.Hints = view.ConfirmDeleteHints
	case ModalSearch:
		if m.search == nil {
			return ""
		}
		d.Title = "Search"
		d.Body = view.RenderSearchBody(m.searchViewModel(), set.SearchStyles())
		d.Hints = view.SearchHints
	case ModalHelp:
		d.Title = "Keys"
		d.Body = view.RenderHelpBody(keyHelp, set.HelpStyles())
		d.Hints = view.HelpHints
	default:
		return ""
	}
	return view.RenderDialog(d, s.ModalStyles())
}
