package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/task"
	"github.com/javiermolinar/daystrip/internal/tui/commands"
	"github.com/javiermolinar/daystrip/internal/tui/view"
)

const formInputWidth = 54

// taskForm is the state of the task form modal.
type taskForm struct {
	editID      int64 // 0 for a new task
	title       textinput.Model
	description textinput.Model
	date        textinput.Model
	completed   bool
	focus       int
	err         string
}

func newTaskForm(s *Styles, existing *task.Task, date dateutil.Date) *taskForm {
	f := &taskForm{
		title:       textinput.New(),
		description: textinput.New(),
		date:        textinput.New(),
	}
	f.title.Placeholder = "What needs doing?"
	f.title.CharLimit = 256
	f.description.Placeholder = "Optional details"
	f.description.CharLimit = 1024
	f.date.Placeholder = dateutil.KeyLayout
	f.date.CharLimit = 32
	for _, in := range f.inputs() {
		in.Prompt = "> "
		in.Width = formInputWidth
	}

	f.date.SetValue(date.Key())
	if existing != nil {
		f.editID = existing.ID
		f.title.SetValue(existing.Title)
		f.description.SetValue(existing.Description)
		f.date.SetValue(existing.Date.Key())
		f.completed = existing.Completed
	}

	f.applyStyles(s)
	f.setFocus(view.FieldTitle)
	return f
}

func (f *taskForm) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.description, &f.date}
}

func (f *taskForm) applyStyles(s *Styles) {
	for _, in := range f.inputs() {
		styleModalInput(in, s)
	}
}

func (f *taskForm) setFocus(field int) {
	f.focus = (field + view.FieldCount) % view.FieldCount
	for i, in := range f.inputs() {
		if i == f.focus {
			in.Focus()
			in.CursorEnd()
		} else {
			in.Blur()
		}
	}
}

// focusedInput returns the text input with focus, or nil on the status field.
func (f *taskForm) focusedInput() *textinput.Model {
	inputs := f.inputs()
	if f.focus < len(inputs) {
		return inputs[f.focus]
	}
	return nil
}

func (f *taskForm) isNew() bool {
	return f.editID == 0
}

func (f *taskForm) viewModel(dateLabel string) view.TaskFormModel {
	return view.TaskFormModel{
		DateLabel:   dateLabel,
		Title:       f.title.View(),
		Description: f.description.View(),
		Date:        f.date.View(),
		Completed:   f.completed,
		Focus:       f.focus,
		Error:       f.err,
	}
}

// openTaskForm opens the form for existing, or for a new task on the
// selected date when existing is nil.
func (m Model) openTaskForm(existing *task.Task) (tea.Model, tea.Cmd) {
	m.form = newTaskForm(m.styles(), existing, m.selected)
	m.mode = ModeModal
	m.modalType = ModalTaskForm
	return m, textinput.Blink
}

func (m Model) handleTaskFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.closeModal()
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "enter":
		return m.submitTaskForm()
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return m, nil
	case " ", "x":
		if f.focus == view.FieldCompleted {
			f.completed = !f.completed
			return m, nil
		}
	}

	in := f.focusedInput()
	if in == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	f.err = ""
	return m, cmd
}

// submitTaskForm validates and saves the form. Validation errors are shown
// inline and keep the form open.
func (m Model) submitTaskForm() (tea.Model, tea.Cmd) {
	f := m.form
	date, err := dateutil.ParseRelative(f.date.Value(), m.now())
	if err != nil {
		f.err = "Date must be YYYY-MM-DD, today, tomorrow or a weekday"
		f.setFocus(view.FieldDate)
		return m, nil
	}

	ctx := context.Background()
	var saved task.Task
	if f.isNew() {
		saved, err = m.store.Create(ctx, task.Draft{
			Title:       f.title.Value(),
			Description: f.description.Value(),
			Completed:   f.completed,
			Date:        date,
		})
	} else {
		saved, err = m.store.Update(ctx, f.editID, task.Patch{
			Title:       task.Ptr(f.title.Value()),
			Description: task.Ptr(f.description.Value()),
			Completed:   task.Ptr(f.completed),
			Date:        task.Ptr(date),
		})
	}
	if err != nil {
		if errors.Is(err, task.ErrEmptyTitle) {
			f.err = "Title cannot be empty"
			f.setFocus(view.FieldTitle)
			return m, nil
		}
		m.logger.Warn("task_save_failed", "error", err, "id", f.editID)
		f.err = err.Error()
		return m, nil
	}

	status := "Task updated"
	if f.isNew() {
		status = "Task added"
	}
	m.logger.Debug("task_saved", "id", saved.ID, "date", saved.Date.Key(), "new", f.isNew())

	m.closeModal()
	cmd := m.selectDate(saved.Date, false)
	m.focusTask(saved.ID)
	return m, tea.Batch(cmd, commands.Status(m.savedStatus(status)))
}

func (m Model) savedStatus(status string) string {
	if m.store.Degraded() {
		return status + " (storage unavailable, changes kept for this session)"
	}
	return status
}
