package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Day headers: bold
	colorHeader = color.New(color.Bold)

	// Today's header: bold cyan
	colorToday = color.New(color.FgCyan, color.Bold)

	// Completed tasks: green mark, faint text
	colorDone = color.New(color.FgGreen)

	// Muted: ids, descriptions and other secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)

	// Fuzzy match highlights
	colorMatch = color.New(color.FgYellow, color.Bold)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatToday(s string) string {
	return colorToday.Sprint(s)
}

func formatDone(s string) string {
	return colorDone.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}

func formatMatch(s string) string {
	return colorMatch.Sprint(s)
}
