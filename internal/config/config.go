// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Strip   StripConfig   `toml:"strip"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds theme settings.
type UIConfig struct {
	LightTheme   string `toml:"light_theme"`   // palette used in light mode, e.g. "latte"
	DarkTheme    string `toml:"dark_theme"`    // palette used in dark mode, e.g. "mocha"
	SystemTheme  string `toml:"system_theme"`  // "auto", "light" or "dark"
	PollInterval string `toml:"poll_interval"` // how often the OS appearance is checked, e.g. "5s"
}

// StripConfig holds date strip geometry and growth settings.
type StripConfig struct {
	SpanBefore     int `toml:"span_before"`     // days before the selected date at startup
	SpanAfter      int `toml:"span_after"`      // days after the selected date at startup
	BatchBefore    int `toml:"batch_before"`    // days added per backward extension
	BatchAfter     int `toml:"batch_after"`     // days added per forward extension
	ChipWidth      int `toml:"chip_width"`      // columns per date chip
	WheelStep      int `toml:"wheel_step"`      // columns scrolled per wheel tick
	SentinelMargin int `toml:"sentinel_margin"` // columns beyond the viewport that trigger growth
}

// System theme values.
const (
	SystemAuto  = "auto"
	SystemLight = "light"
	SystemDark  = "dark"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			LightTheme:   "latte",
			DarkTheme:    "mocha",
			SystemTheme:  SystemAuto,
			PollInterval: "5s",
		},
		Strip: StripConfig{
			SpanBefore:     3,
			SpanAfter:      10,
			BatchBefore:    2,
			BatchAfter:     7,
			ChipWidth:      9,
			WheelStep:      6,
			SentinelMargin: 9,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "daystrip.db"
	}
	return filepath.Join(home, ".local", "share", "daystrip", "daystrip.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "daystrip", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DAYSTRIP_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("DAYSTRIP_LIGHT_THEME"); v != "" {
		cfg.UI.LightTheme = v
	}
	if v := os.Getenv("DAYSTRIP_DARK_THEME"); v != "" {
		cfg.UI.DarkTheme = v
	}
	if v := os.Getenv("DAYSTRIP_SYSTEM_THEME"); v != "" {
		cfg.UI.SystemTheme = v
	}
	if v := os.Getenv("DAYSTRIP_POLL_INTERVAL"); v != "" {
		cfg.UI.PollInterval = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"DAYSTRIP_SPAN_BEFORE", &cfg.Strip.SpanBefore},
		{"DAYSTRIP_SPAN_AFTER", &cfg.Strip.SpanAfter},
		{"DAYSTRIP_BATCH_BEFORE", &cfg.Strip.BatchBefore},
		{"DAYSTRIP_BATCH_AFTER", &cfg.Strip.BatchAfter},
		{"DAYSTRIP_CHIP_WIDTH", &cfg.Strip.ChipWidth},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", o.env, v)
		}
		*o.dst = n
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}

	switch strings.ToLower(c.UI.SystemTheme) {
	case SystemAuto, SystemLight, SystemDark:
	default:
		return fmt.Errorf("system_theme must be auto, light or dark, got %q", c.UI.SystemTheme)
	}
	if d, err := time.ParseDuration(c.UI.PollInterval); err != nil || d <= 0 {
		return fmt.Errorf("poll_interval must be a positive duration, got %q", c.UI.PollInterval)
	}

	if c.Strip.SpanBefore < 0 || c.Strip.SpanAfter < 0 {
		return errors.New("span_before and span_after must not be negative")
	}
	if c.Strip.BatchBefore <= 0 || c.Strip.BatchAfter <= 0 {
		return errors.New("batch_before and batch_after must be positive")
	}
	if c.Strip.ChipWidth < 7 {
		return fmt.Errorf("chip_width must be at least 7, got %d", c.Strip.ChipWidth)
	}
	if c.Strip.WheelStep <= 0 {
		return errors.New("wheel_step must be positive")
	}
	if c.Strip.SentinelMargin < 0 {
		return errors.New("sentinel_margin must not be negative")
	}
	return nil
}

// PollDuration returns the parsed poll interval.
func (c *Config) PollDuration() time.Duration {
	d, err := time.ParseDuration(c.UI.PollInterval)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
