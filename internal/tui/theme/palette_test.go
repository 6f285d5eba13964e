package theme

import (
	"math"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestNewPalette_ChipShades(t *testing.T) {
	base := &Theme{
		Mode:        Dark,
		Bg:          "#000000",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Done:        "#00ff00",
		Pending:     "#ffa500",
		Warning:     "#ff00ff",
	}

	palette := NewPalette(base)

	if palette.ChipBg != lipgloss.Color(base.BgHighlight) {
		t.Errorf("ChipBg = %q, want %q", palette.ChipBg, base.BgHighlight)
	}
	if palette.ChipSelectedBg != lipgloss.Color(base.Accent) {
		t.Errorf("ChipSelectedBg = %q, want %q", palette.ChipSelectedBg, base.Accent)
	}
	if want := lipgloss.Color(blendColors(base.Accent, base.Bg, 0.70)); palette.ChipTodayBg != want {
		t.Errorf("ChipTodayBg = %q, want %q", palette.ChipTodayBg, want)
	}
	if want := lipgloss.Color(blendColors(base.Done, base.Bg, 0.85)); palette.DoneRowBg != want {
		t.Errorf("DoneRowBg = %q, want %q", palette.DoneRowBg, want)
	}
}

func TestNewPalette_NilFallsBackToDefault(t *testing.T) {
	palette := NewPalette(nil)
	if palette == nil {
		t.Fatal("NewPalette(nil) returned nil")
	}
	if palette.Mode != Dark {
		t.Errorf("Mode = %q, want %q", palette.Mode, Dark)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := &Theme{
		Bg:     "#101010",
		Fg:     "#ffffff",
		Accent: "#ff0000",
	}

	palette := NewPalette(base)

	if palette.ModalBg != lipgloss.Color(base.Bg) {
		t.Errorf("ModalBg = %q, want %q", palette.ModalBg, base.Bg)
	}
	if palette.ModalBorder != lipgloss.Color(base.Accent) {
		t.Errorf("ModalBorder = %q, want %q", palette.ModalBorder, base.Accent)
	}
}

func TestChooseTextColor(t *testing.T) {
	tests := []struct {
		name string
		bg   string
		want string
	}{
		{name: "dark background picks white", bg: "#101010", want: "#ffffff"},
		{name: "light background picks black", bg: "#f5f5f5", want: "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := chooseTextColor(tt.bg, "#ffffff", "#000000"); got != tt.want {
				t.Errorf("chooseTextColor(%s) = %s, want %s", tt.bg, got, tt.want)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	got := contrastRatio("#000000", "#ffffff")
	if math.Abs(got-21) > 0.01 {
		t.Errorf("contrastRatio(black, white) = %.2f, want 21", got)
	}
	if got := contrastRatio("#777777", "#777777"); math.Abs(got-1) > 0.001 {
		t.Errorf("contrastRatio(same) = %.3f, want 1", got)
	}
}

func TestBlendColors(t *testing.T) {
	tests := []struct {
		name  string
		a, b  string
		ratio float64
		want  string
	}{
		{name: "ratio zero keeps a", a: "#ff0000", b: "#0000ff", ratio: 0, want: "#ff0000"},
		{name: "ratio one is b", a: "#ff0000", b: "#0000ff", ratio: 1, want: "#0000ff"},
		{name: "clamped above one", a: "#ff0000", b: "#0000ff", ratio: 3, want: "#0000ff"},
		{name: "invalid input returns a", a: "#ff0000", b: "nope", ratio: 0.5, want: "#ff0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blendColors(tt.a, tt.b, tt.ratio); got != tt.want {
				t.Errorf("blendColors = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsLightTheme(t *testing.T) {
	if !isLightTheme("#eff1f5") {
		t.Error("latte background should be light")
	}
	if isLightTheme("#1e1e2e") {
		t.Error("mocha background should be dark")
	}
}
