package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/task"
)

// Task row glyphs, shared with the date strip marks.
const (
	doneSymbol    = "●"
	pendingSymbol = "○"
)

// dayHeaderLayout formats day headers in list output.
const dayHeaderLayout = "Mon Jan 2, 2006"

// PrintOpts configures task printing behavior.
type PrintOpts struct {
	Width   int           // Terminal width (0 = detect)
	Verbose bool          // Show full descriptions
	Today   dateutil.Date // Highlighted day header
}

func (o PrintOpts) width() int {
	if o.Width > 0 {
		return o.Width
	}
	return termWidth()
}

func statusSymbol(t task.Task) string {
	if t.Completed {
		return formatDone(doneSymbol)
	}
	return pendingSymbol
}

// PrintDays prints tasks grouped by day, in date order.
func PrintDays(w io.Writer, tasks []task.Task, opts PrintOpts) {
	for i, day := range task.GroupByDay(tasks) {
		if i > 0 {
			fmt.Fprintln(w)
		}
		header := day.Date.Format(dayHeaderLayout)
		if day.Date.Equal(opts.Today) {
			fmt.Fprintf(w, "%s %s\n", formatToday(header), formatMuted("(today)"))
		} else {
			fmt.Fprintln(w, formatHeader(header))
		}
		for _, t := range day.Tasks() {
			PrintTaskRow(w, t, opts)
		}
	}
}

// PrintTaskRow prints a single task row with consistent formatting:
// "  ● #12  title  description", cut to the terminal width.
func PrintTaskRow(w io.Writer, t task.Task, opts PrintOpts) {
	id := fmt.Sprintf("#%-3d", t.ID)
	// "  ● " + id + "  "
	overhead := 4 + runewidth.StringWidth(id) + 2
	available := max(10, opts.width()-overhead)

	title := runewidth.Truncate(t.Title, available, "…")
	line := title
	if t.Description != "" {
		rest := available - runewidth.StringWidth(title) - 2
		desc := t.Description
		if !opts.Verbose {
			desc = runewidth.Truncate(desc, max(0, rest), "…")
		}
		if desc != "" {
			line += "  " + formatMuted(desc)
		}
	}
	fmt.Fprintf(w, "  %s %s  %s\n", statusSymbol(t), formatMuted(id), line)
}

// highlightMatches wraps the matched byte positions of s in the match color.
func highlightMatches(s string, positions []int) string {
	if len(positions) == 0 {
		return s
	}
	matched := make(map[int]bool, len(positions))
	for _, p := range positions {
		matched[p] = true
	}

	var b strings.Builder
	var run strings.Builder
	inMatch := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if inMatch {
			b.WriteString(formatMatch(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	for i, r := range s {
		if matched[i] != inMatch {
			flush()
			inMatch = matched[i]
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}
