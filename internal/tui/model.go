// Package tui provides the terminal user interface for daystrip.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/config"
	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/datewindow"
	"github.com/javiermolinar/daystrip/internal/logs"
	"github.com/javiermolinar/daystrip/internal/task"
	"github.com/javiermolinar/daystrip/internal/tui/commands"
	"github.com/javiermolinar/daystrip/internal/tui/strip"
	"github.com/javiermolinar/daystrip/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModePrompt
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModePrompt:
		return "prompt"
	case ModeModal:
		return "modal"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone     ModalType = iota
	ModalTaskForm           // New or existing task
	ModalConfirmDelete
	ModalSearch
	ModalHelp
)

// Layout rows.
const (
	headerHeight = 1
	stripTop     = headerHeight
	stripGap     = 1
	footerHeight = 2
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store    *task.Store
	resolver *theme.Resolver
	config   *config.Config
	logger   *slog.Logger
	now      func() time.Time
	copyFn   func(string) error

	// Theme: shared with the resolver change listener
	theme            *themeState
	unsubscribeTheme func()
	systemThemes     <-chan theme.Mode

	// Date strip
	window   *datewindow.Manager
	viewport *strip.Viewport
	pending  *datewindow.Pending

	// State
	today     dateutil.Date
	selected  dateutil.Date
	cursor    int // index into the selected day's tasks
	mode      Mode
	modalType ModalType

	// Modal state
	form        *taskForm
	search      *searchState
	confirmTask task.Task

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock sets the clock used to determine today's date.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logs.OrDiscard(l)
	}
}

// WithSystemThemes sets the channel that delivers OS appearance changes.
func WithSystemThemes(ch <-chan theme.Mode) ModelOption {
	return func(m *Model) {
		m.systemThemes = ch
	}
}

// WithClipboard sets the function used to copy text.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		m.copyFn = fn
	}
}

// New creates a new TUI model. A nil store or resolver is replaced by an
// in-memory one.
func New(store *task.Store, resolver *theme.Resolver, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	m := Model{
		config: cfg,
		logger: logs.Discard(),
		now:    time.Now,
		mode:   ModeNormal,
	}
	for _, opt := range opts {
		opt(&m)
	}

	ctx := context.Background()
	if store == nil {
		store = task.Open(ctx, nil, task.WithLogger(m.logger), task.WithClock(m.now))
	}
	if resolver == nil {
		resolver = theme.NewResolver(ctx, nil, theme.Dark, theme.WithLogger(m.logger))
	}
	m.store = store
	m.resolver = resolver

	m.today = dateutil.Today(m.now())
	m.selected = m.today

	m.window = datewindow.New(datewindow.Options{
		BatchBefore: cfg.Strip.BatchBefore,
		BatchAfter:  cfg.Strip.BatchAfter,
	})
	m.window.Initialize(m.today, cfg.Strip.SpanBefore, cfg.Strip.SpanAfter)
	m.viewport = strip.New(m.window.Len, strip.Options{
		ChipWidth: cfg.Strip.ChipWidth,
		WheelStep: cfg.Strip.WheelStep,
	})

	ts := newThemeState(cfg, resolver.Current())
	logger := m.logger
	m.theme = ts
	m.unsubscribeTheme = resolver.OnChange(func(mode theme.Mode) {
		ts.apply(cfg, mode)
		logger.Debug("theme_applied", "mode", string(mode), "palette", ts.styles.Name)
	})

	m.prompt = textinput.New()
	m.prompt.Prompt = ": "
	m.prompt.Placeholder = "/goto friday"
	m.prompt.CharLimit = 256
	m.applyInputStyles()

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("daystrip"),
		commands.WaitForSystemTheme(m.systemThemes),
	)
}

// Close detaches the model from the theme resolver.
func (m Model) Close() {
	if m.unsubscribeTheme != nil {
		m.unsubscribeTheme()
	}
}

func (m Model) styles() *Styles {
	return m.theme.styles
}

// Selected returns the selected date.
func (m Model) Selected() dateutil.Date {
	return m.selected
}

// dayTasks returns the selected day's tasks in list order.
func (m Model) dayTasks() []task.Task {
	return m.store.ByDate(m.selected)
}

// cursorTask returns the task under the cursor.
func (m Model) cursorTask() (task.Task, bool) {
	tasks := m.dayTasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.dayTasks())
	m.cursor = min(max(0, m.cursor), max(0, n-1))
}

// focusTask puts the cursor on the task with id in the selected day.
func (m *Model) focusTask(id int64) {
	for i, t := range m.dayTasks() {
		if t.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = time.Now().Add(commands.StatusDuration)
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.form = nil
	m.search = nil
	m.confirmTask = task.Task{}
}

// applyInputStyles restyles text inputs after a theme change.
func (m *Model) applyInputStyles() {
	s := m.styles()
	m.prompt.PromptStyle = s.PromptStyle.UnsetPaddingLeft()
	m.prompt.TextStyle = s.PromptStyle.UnsetPaddingLeft()
	m.prompt.PlaceholderStyle = s.PromptStyle.UnsetPaddingLeft().Foreground(s.colorFgMuted)
	m.prompt.Cursor.Style = s.ModalInputCursorStyle
	m.prompt.Cursor.TextStyle = s.PromptStyle.UnsetPaddingLeft()

	if m.form != nil {
		m.form.applyStyles(s)
	}
	if m.search != nil {
		styleModalInput(&m.search.input, s)
	}
}

func styleModalInput(in *textinput.Model, s *Styles) {
	in.PlaceholderStyle = s.ModalPlaceholderStyle
	in.TextStyle = s.ModalInputTextStyle
	in.PromptStyle = s.ModalInputTextStyle
	in.Cursor.Style = s.ModalInputCursorStyle
	in.Cursor.TextStyle = s.ModalInputTextStyle
}
