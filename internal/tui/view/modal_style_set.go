package view

import "github.com/charmbracelet/lipgloss"

// ModalStyleSet groups modal styles to reduce call-site verbosity.
type ModalStyleSet struct {
	BodyStyle         lipgloss.Style
	MetaStyle         lipgloss.Style
	SectionTitleStyle lipgloss.Style
	ActiveTitleStyle  lipgloss.Style
	TagStyle          lipgloss.Style
	LabelStyle        lipgloss.Style
	HintStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style
	MatchStyle        lipgloss.Style
	SelectedStyle     lipgloss.Style
}

// TaskFormStyles returns the modal styles needed for the task form.
func (s ModalStyleSet) TaskFormStyles() TaskFormStyles {
	return TaskFormStyles{
		TagStyle:          s.TagStyle,
		BodyStyle:         s.BodyStyle,
		SectionTitleStyle: s.SectionTitleStyle,
		ActiveTitleStyle:  s.ActiveTitleStyle,
		HintStyle:         s.HintStyle,
		ErrorStyle:        s.ErrorStyle,
	}
}

// ConfirmDeleteStyles returns the modal styles needed for delete confirmation.
func (s ModalStyleSet) ConfirmDeleteStyles() ConfirmDeleteStyles {
	return ConfirmDeleteStyles{
		BodyStyle:  s.BodyStyle,
		LabelStyle: s.LabelStyle,
	}
}

// SearchStyles returns the modal styles needed for search.
func (s ModalStyleSet) SearchStyles() SearchStyles {
	return SearchStyles{
		BodyStyle:     s.BodyStyle,
		MetaStyle:     s.MetaStyle,
		MatchStyle:    s.MatchStyle,
		SelectedStyle: s.SelectedStyle,
		HintStyle:     s.HintStyle,
	}
}

// HelpStyles returns the modal styles needed for the key help.
func (s ModalStyleSet) HelpStyles() HelpStyles {
	return HelpStyles{
		KeyStyle:  s.LabelStyle,
		DescStyle: s.BodyStyle,
	}
}
