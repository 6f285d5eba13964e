package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Mode Mode

	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Done        lipgloss.Color
	Pending     lipgloss.Color
	Warning     lipgloss.Color

	// Chip backgrounds.
	ChipBg         lipgloss.Color
	ChipTodayBg    lipgloss.Color
	ChipSelectedBg lipgloss.Color

	// Completed task rows are drawn on a faint shade of Done.
	DoneRowBg lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	ModalBg     lipgloss.Color
	ModalBorder lipgloss.Color
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultDark)
	}

	isLight := t.Mode == Light
	chipBg := t.BgHighlight
	todayBg := blendColors(t.Accent, t.Bg, 0.80)
	doneRow := blendColors(t.Done, t.Bg, 0.88)
	if !isLight {
		todayBg = blendColors(t.Accent, t.Bg, 0.70)
		doneRow = blendColors(t.Done, t.Bg, 0.85)
	}

	return &Palette{
		Mode:        t.Mode,
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Done:        lipgloss.Color(t.Done),
		Pending:     lipgloss.Color(t.Pending),
		Warning:     lipgloss.Color(t.Warning),

		ChipBg:         lipgloss.Color(chipBg),
		ChipTodayBg:    lipgloss.Color(todayBg),
		ChipSelectedBg: lipgloss.Color(t.Accent),
		DoneRowBg:      lipgloss.Color(doneRow),

		TextOnAccent:  lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(chooseTextColor(t.Warning, t.Bg, t.Fg)),

		ModalBg:     lipgloss.Color(coalesce(t.BgHighlight, t.Bg)),
		ModalBorder: lipgloss.Color(t.Accent),
	}
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func contrastRatio(a, b string) float64 {
	l1 := relativeLuminance(a)
	l2 := relativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// relativeLuminance is the WCAG relative luminance; invalid hex counts as black.
func relativeLuminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// blendColors mixes a toward b by ratio in RGB space. Invalid input returns a.
func blendColors(a, b string, ratio float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}
