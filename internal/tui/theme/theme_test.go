package theme

import (
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
		wantName  string
		wantMode  Mode
	}{
		{name: "load mocha theme", themeName: "mocha", wantName: "mocha", wantMode: Dark},
		{name: "load macchiato theme", themeName: "macchiato", wantName: "macchiato", wantMode: Dark},
		{name: "load frappe theme", themeName: "frappe", wantName: "frappe", wantMode: Dark},
		{name: "load latte theme", themeName: "latte", wantName: "latte", wantMode: Light},
		{name: "load light theme", themeName: "light", wantName: "light", wantMode: Light},
		{name: "case insensitive", themeName: "Latte", wantName: "latte", wantMode: Light},
		{name: "empty name defaults to mocha", themeName: "", wantName: "mocha", wantMode: Dark},
		{name: "invalid theme falls back to mocha", themeName: "nonexistent", wantName: "mocha", wantMode: Dark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := Load(tt.themeName)
			if err != nil {
				t.Fatalf("Load(%q) unexpected error: %v", tt.themeName, err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("Load(%q).Name = %q, want %q", tt.themeName, theme.Name, tt.wantName)
			}
			if theme.Mode != tt.wantMode {
				t.Errorf("Load(%q).Mode = %q, want %q", tt.themeName, theme.Mode, tt.wantMode)
			}
		})
	}
}

func TestLoad_AllColorsSet(t *testing.T) {
	for _, name := range Available() {
		theme, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		colors := map[string]string{
			"bg": theme.Bg, "bg_highlight": theme.BgHighlight, "bg_selection": theme.BgSelection,
			"fg": theme.Fg, "fg_muted": theme.FgMuted, "accent": theme.Accent,
			"done": theme.Done, "pending": theme.Pending, "warning": theme.Warning,
		}
		for field, v := range colors {
			if v == "" {
				t.Errorf("theme %q has empty %s", name, field)
			}
		}
	}
}

func TestForMode(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		palette  string
		wantName string
	}{
		{name: "matching dark palette", mode: Dark, palette: "frappe", wantName: "frappe"},
		{name: "matching light palette", mode: Light, palette: "light", wantName: "light"},
		{name: "dark palette requested for light", mode: Light, palette: "mocha", wantName: DefaultLight},
		{name: "light palette requested for dark", mode: Dark, palette: "latte", wantName: DefaultDark},
		{name: "unknown name", mode: Light, palette: "neon", wantName: DefaultLight},
		{name: "empty name", mode: Dark, palette: "", wantName: DefaultDark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, err := ForMode(tt.mode, tt.palette)
			if err != nil {
				t.Fatalf("ForMode unexpected error: %v", err)
			}
			if theme.Name != tt.wantName {
				t.Errorf("ForMode(%s, %q) = %q, want %q", tt.mode, tt.palette, theme.Name, tt.wantName)
			}
		})
	}
}

func TestAvailableFor(t *testing.T) {
	dark := AvailableFor(Dark)
	light := AvailableFor(Light)
	if len(dark)+len(light) != len(Available()) {
		t.Fatalf("dark %v + light %v should cover %v", dark, light, Available())
	}
	for _, name := range light {
		if name == "mocha" {
			t.Error("mocha should not be listed as a light theme")
		}
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"mocha", true},
		{"LATTE", true},
		{"light", true},
		{"nonexistent", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAvailable(tt.name); got != tt.want {
				t.Errorf("IsAvailable(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in     string
		want   Mode
		wantOK bool
	}{
		{"light", Light, true},
		{"dark", Dark, true},
		{" Dark ", Dark, true},
		{"", "", false},
		{"sepia", "", false},
		{`"dark"`, "", false},
	}
	for _, tt := range tests {
		got, ok := ParseMode(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseMode(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMode_Opposite(t *testing.T) {
	if Light.Opposite() != Dark || Dark.Opposite() != Light {
		t.Error("Opposite should swap light and dark")
	}
}

func TestFromPrefersDark(t *testing.T) {
	if FromPrefersDark(true) != Dark {
		t.Error("prefers dark should map to Dark")
	}
	if FromPrefersDark(false) != Light {
		t.Error("no dark preference should map to Light")
	}
}
