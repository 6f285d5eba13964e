// Package theme provides color themes for the TUI and resolves which of the
// light or dark theme is in effect.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// Mode is a visual theme mode.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode parses "light" or "dark" (case-insensitive).
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return "", false
	}
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// FromPrefersDark maps an OS "prefers dark" signal to a Mode.
func FromPrefersDark(prefersDark bool) Mode {
	if prefersDark {
		return Dark
	}
	return Light
}

// Default palette names per mode.
const (
	DefaultLight = "latte"
	DefaultDark  = "mocha"
)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string `toml:"name"`
	Mode        Mode   `toml:"mode"`
	Bg          string `toml:"bg"`           // Base background
	BgHighlight string `toml:"bg_highlight"` // Chips, subtle highlight
	BgSelection string `toml:"bg_selection"` // Cursor, selection
	Fg          string `toml:"fg"`           // Primary foreground
	FgMuted     string `toml:"fg_muted"`     // Descriptions, muted elements
	Accent      string `toml:"accent"`       // Title, selected chip, borders
	Done        string `toml:"done"`         // Completed marks
	Pending     string `toml:"pending"`      // Uncompleted marks
	Warning     string `toml:"warning"`      // Validation errors
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a theme by name from embedded files.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultDark
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultDark {
			return Load(DefaultDark)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Mode == "" {
		t.Mode = Dark
		if isLightTheme(t.Bg) {
			t.Mode = Light
		}
	}
	return &t, nil
}

// ForMode loads the named palette for mode. When the name is unknown or
// belongs to the other mode, the mode's default palette is used.
func ForMode(mode Mode, name string) (*Theme, error) {
	if name != "" && IsAvailable(name) {
		t, err := Load(name)
		if err == nil && t.Mode == mode {
			return t, nil
		}
	}
	if mode == Light {
		return Load(DefaultLight)
	}
	return Load(DefaultDark)
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// AvailableFor returns the theme names of the given mode.
func AvailableFor(mode Mode) []string {
	var names []string
	for _, name := range Available() {
		if t, err := Load(name); err == nil && t.Mode == mode {
			names = append(names, name)
		}
	}
	return names
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
