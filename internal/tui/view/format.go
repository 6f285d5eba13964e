package view

import (
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/daystrip/internal/dateutil"
)

// ChipLabel formats a date as shown on a strip chip, e.g. "Mon 14".
func ChipLabel(d dateutil.Date) string {
	return d.Format("Mon 2")
}

// DayHeading formats a date as a task list heading, e.g. "Friday, June 14 2024".
func DayHeading(d dateutil.Date) string {
	return d.Format("Monday, January 2 2006")
}

// MonthLabel formats the month of a date, e.g. "June 2024".
func MonthLabel(d dateutil.Date) string {
	return d.Format("January 2006")
}

// Truncate shortens s to width display cells, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
