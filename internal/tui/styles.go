package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/daystrip/internal/config"
	"github.com/javiermolinar/daystrip/internal/tui/theme"
	"github.com/javiermolinar/daystrip/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	Mode theme.Mode
	Name string

	colorBg      lipgloss.Color
	colorFg      lipgloss.Color
	colorFgMuted lipgloss.Color
	colorAccent  lipgloss.Color

	// Title bar
	TitleStyle   lipgloss.Style
	MetaStyle    lipgloss.Style
	WarningStyle lipgloss.Style

	// Strip chips
	ChipStyle         lipgloss.Style
	ChipTodayStyle    lipgloss.Style
	ChipSelectedStyle lipgloss.Style
	DoneMarkStyle     lipgloss.Style
	PendingMarkStyle  lipgloss.Style

	// Task list
	HeadingStyle     lipgloss.Style
	RowStyle         lipgloss.Style
	RowDoneStyle     lipgloss.Style
	RowSelectedStyle lipgloss.Style
	DescriptionStyle lipgloss.Style
	EmptyStyle       lipgloss.Style

	// Footer
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
	HelpStyle   lipgloss.Style
	PromptStyle lipgloss.Style

	// Modal styles
	ModalStyle              lipgloss.Style
	ModalBgColor            lipgloss.Color
	ModalHeaderStyle        lipgloss.Style
	ModalFooterStyle        lipgloss.Style
	ModalTitleStyle         lipgloss.Style
	ModalBodyStyle          lipgloss.Style
	ModalMetaStyle          lipgloss.Style
	ModalSectionTitleStyle  lipgloss.Style
	ModalActiveSectionStyle lipgloss.Style
	ModalTagStyle           lipgloss.Style
	ModalLabelStyle         lipgloss.Style
	ModalInputTextStyle     lipgloss.Style
	ModalInputCursorStyle   lipgloss.Style
	ModalPlaceholderStyle   lipgloss.Style
	ModalButtonStyle        lipgloss.Style
	ModalButtonActiveStyle  lipgloss.Style
	ModalHintStyle          lipgloss.Style
	ModalErrorStyle         lipgloss.Style
	ModalMatchStyle         lipgloss.Style
	ModalSelectedStyle      lipgloss.Style
}

// modalWidth is the outer width of modal dialogs.
const modalWidth = 64

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	palette := theme.NewPalette(t)
	s := &Styles{
		Mode:         palette.Mode,
		colorBg:      palette.Bg,
		colorFg:      palette.Fg,
		colorFgMuted: palette.FgMuted,
		colorAccent:  palette.Accent,
	}
	if t != nil {
		s.Name = t.Name
	}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Accent).
		Background(palette.Bg).
		PaddingLeft(1)

	s.MetaStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnWarning).
		Background(palette.Warning).
		Bold(true).
		Padding(0, 1)

	s.ChipStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.ChipBg)

	// Today is bold on a faint accent shade; the selected chip is solid accent.
	s.ChipTodayStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.ChipTodayBg).
		Bold(true)

	s.ChipSelectedStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(palette.ChipSelectedBg).
		Bold(true)

	s.DoneMarkStyle = lipgloss.NewStyle().Foreground(palette.Done)
	s.PendingMarkStyle = lipgloss.NewStyle().Foreground(palette.Pending)

	s.HeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Fg).
		Background(palette.Bg).
		PaddingLeft(1)

	s.RowStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.Bg)

	s.RowDoneStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.DoneRowBg).
		Strikethrough(true)

	s.RowSelectedStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgSelection).
		Bold(true)

	s.DescriptionStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Italic(true)

	s.EmptyStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg).
		PaddingLeft(1)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Background(palette.Bg).
		Bold(true).
		PaddingLeft(1)

	s.ErrorStyle = s.StatusStyle.
		Foreground(palette.Warning)

	s.HelpStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(palette.Bg).
		PaddingLeft(1)

	s.PromptStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgHighlight).
		PaddingLeft(1)

	// Modal styles
	modalBg := palette.ModalBg
	s.ModalBgColor = modalBg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(palette.ModalBorder).
		BorderBackground(modalBg).
		Background(modalBg).
		Foreground(palette.Fg).
		Padding(1, 1).
		Width(modalWidth).
		Align(lipgloss.Left)

	s.ModalHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Fg).
		Background(modalBg).
		Padding(0, 1)

	s.ModalFooterStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(modalBg)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(palette.Fg).
		Background(modalBg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(modalBg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(modalBg)

	s.ModalSectionTitleStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Bold(true).
		PaddingLeft(1).
		Background(modalBg)

	s.ModalActiveSectionStyle = s.ModalSectionTitleStyle.
		Foreground(palette.Accent)

	s.ModalTagStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgSelection).
		Bold(true).
		Padding(0, 1)

	s.ModalLabelStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Bold(true).
		Background(modalBg)

	s.ModalInputTextStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(modalBg)

	s.ModalInputCursorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnAccent).
		Background(palette.Accent)

	s.ModalPlaceholderStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(modalBg)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(palette.BgSelection).
		Foreground(palette.Fg).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(palette.Accent).
		Foreground(palette.TextOnAccent).
		Padding(0, 3).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(palette.FgMuted).
		Background(modalBg).
		PaddingLeft(1)

	s.ModalErrorStyle = lipgloss.NewStyle().
		Foreground(palette.TextOnWarning).
		Background(palette.Warning).
		Bold(true).
		Padding(0, 1)

	s.ModalMatchStyle = lipgloss.NewStyle().
		Foreground(palette.Accent).
		Bold(true).
		Underline(true)

	s.ModalSelectedStyle = lipgloss.NewStyle().
		Foreground(palette.Fg).
		Background(palette.BgSelection)

	return s
}

// stylesFor builds the styles for mode using the palette configured for it.
func stylesFor(cfg *config.Config, mode theme.Mode) *Styles {
	name := ""
	if cfg != nil {
		name = cfg.UI.DarkTheme
		if mode == theme.Light {
			name = cfg.UI.LightTheme
		}
	}
	t, err := theme.ForMode(mode, name)
	if err != nil {
		t = nil // NewPalette falls back to the default dark palette
	}
	return NewStyles(t)
}

// ModalStyles returns the styles for dialog frames and key hints.
func (s *Styles) ModalStyles() view.ModalStyles {
	return view.ModalStyles{
		Frame:   s.ModalStyle,
		Header:  s.ModalHeaderStyle,
		Title:   s.ModalTitleStyle,
		Footer:  s.ModalFooterStyle,
		Hint:    s.ModalButtonStyle,
		Default: s.ModalButtonActiveStyle,
		Body:    s.ModalBodyStyle,
	}
}

// ModalStyleSet returns the styles for modal bodies.
func (s *Styles) ModalStyleSet() view.ModalStyleSet {
	return view.ModalStyleSet{
		BodyStyle:         s.ModalBodyStyle,
		MetaStyle:         s.ModalMetaStyle,
		SectionTitleStyle: s.ModalSectionTitleStyle,
		ActiveTitleStyle:  s.ModalActiveSectionStyle,
		TagStyle:          s.ModalTagStyle,
		LabelStyle:        s.ModalLabelStyle,
		HintStyle:         s.ModalHintStyle,
		ErrorStyle:        s.ModalErrorStyle,
		MatchStyle:        s.ModalMatchStyle,
		SelectedStyle:     s.ModalSelectedStyle,
	}
}

// ChipStyles returns the styles for strip chips.
func (s *Styles) ChipStyles() view.ChipStyles {
	return view.ChipStyles{
		Chip:        s.ChipStyle,
		Today:       s.ChipTodayStyle,
		Selected:    s.ChipSelectedStyle,
		DoneMark:    s.DoneMarkStyle,
		PendingMark: s.PendingMarkStyle,
	}
}

// TaskListStyles returns the styles for the day task list.
func (s *Styles) TaskListStyles() view.TaskListStyles {
	return view.TaskListStyles{
		Heading:     s.HeadingStyle,
		Row:         s.RowStyle,
		RowDone:     s.RowDoneStyle,
		RowSelected: s.RowSelectedStyle,
		Description: s.DescriptionStyle,
		Empty:       s.EmptyStyle,
		DoneMark:    s.DoneMarkStyle,
		PendingMark: s.PendingMarkStyle,
		Bg:          s.colorBg,
	}
}

// HeaderStyles returns the styles for the title bar.
func (s *Styles) HeaderStyles() view.HeaderStyles {
	return view.HeaderStyles{
		Title:   s.TitleStyle,
		Meta:    s.MetaStyle,
		Warning: s.WarningStyle,
		Bg:      s.colorBg,
	}
}

// themeState is shared by every copy of the Model so that a resolver change
// listener can swap styles in place.
type themeState struct {
	mode   theme.Mode
	styles *Styles
}

func newThemeState(cfg *config.Config, mode theme.Mode) *themeState {
	return &themeState{mode: mode, styles: stylesFor(cfg, mode)}
}

func (ts *themeState) apply(cfg *config.Config, mode theme.Mode) {
	if ts.mode == mode && ts.styles != nil {
		return
	}
	ts.mode = mode
	ts.styles = stylesFor(cfg, mode)
}
