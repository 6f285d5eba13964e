package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daystrip/internal/config"
	"github.com/javiermolinar/daystrip/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  daystrip config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	reader := bufio.NewReader(os.Stdin)
	if !promptYesNo(reader, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing

	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.UI.LightTheme = promptTheme(reader, "Light theme", theme.Light, cfg.UI.LightTheme)
	cfg.UI.DarkTheme = promptTheme(reader, "Dark theme", theme.Dark, cfg.UI.DarkTheme)
	cfg.UI.SystemTheme = promptChoice(reader, "System theme", []string{config.SystemAuto, config.SystemLight, config.SystemDark}, cfg.UI.SystemTheme)
	cfg.UI.PollInterval = promptValue(reader, "Appearance poll interval", cfg.UI.PollInterval)
	cfg.Strip.SpanBefore = promptInt(reader, "Days before today at startup", cfg.Strip.SpanBefore)
	cfg.Strip.SpanAfter = promptInt(reader, "Days after today at startup", cfg.Strip.SpanAfter)
	cfg.Strip.BatchBefore = promptInt(reader, "Days added when scrolling back", cfg.Strip.BatchBefore)
	cfg.Strip.BatchAfter = promptInt(reader, "Days added when scrolling forward", cfg.Strip.BatchAfter)
	cfg.Strip.ChipWidth = promptInt(reader, "Chip width", cfg.Strip.ChipWidth)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[storage]")
	fmt.Printf("  db_path          = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[ui]")
	fmt.Printf("  light_theme      = %s\n", cfg.UI.LightTheme)
	fmt.Printf("  dark_theme       = %s\n", cfg.UI.DarkTheme)
	fmt.Printf("  system_theme     = %s\n", cfg.UI.SystemTheme)
	fmt.Printf("  poll_interval    = %s\n", cfg.UI.PollInterval)
	fmt.Println("\n[strip]")
	fmt.Printf("  span_before      = %d\n", cfg.Strip.SpanBefore)
	fmt.Printf("  span_after       = %d\n", cfg.Strip.SpanAfter)
	fmt.Printf("  batch_before     = %d\n", cfg.Strip.BatchBefore)
	fmt.Printf("  batch_after      = %d\n", cfg.Strip.BatchAfter)
	fmt.Printf("  chip_width       = %d\n", cfg.Strip.ChipWidth)
	fmt.Printf("  wheel_step       = %d\n", cfg.Strip.WheelStep)
	fmt.Printf("  sentinel_margin  = %d\n", cfg.Strip.SentinelMargin)
}

func promptYesNo(reader *bufio.Reader, question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		value := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Printf("  Invalid number %q. Enter a positive integer.\n", value)
	}
}

func promptChoice(reader *bufio.Reader, label string, options []string, current string) string {
	joined := strings.Join(options, ", ")
	for {
		value := strings.ToLower(promptValue(reader, fmt.Sprintf("%s (%s)", label, joined), current))
		for _, o := range options {
			if value == o {
				return value
			}
		}
		fmt.Printf("  Invalid value %q. Available: %s\n", value, joined)
	}
}

func promptTheme(reader *bufio.Reader, label string, mode theme.Mode, current string) string {
	return promptChoice(reader, label, theme.AvailableFor(mode), current)
}
