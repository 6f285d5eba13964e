// Package strip implements the horizontal viewport the date chips scroll in.
//
// Content coordinates are terminal columns: a sentinel column at each end
// with the chips laid out between them.
//
//	| S | chip 0 | chip 1 | ... | chip n-1 | S |
package strip

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Defaults.
const (
	DefaultChipWidth      = 9
	DefaultSentinelWidth  = 1
	DefaultWheelStep      = 6
	DefaultSentinelMargin = 9
)

// Options configures a Viewport.
type Options struct {
	ChipWidth     int
	SentinelWidth int
	WheelStep     int
}

func (o Options) withDefaults() Options {
	if o.ChipWidth <= 0 {
		o.ChipWidth = DefaultChipWidth
	}
	if o.SentinelWidth <= 0 {
		o.SentinelWidth = DefaultSentinelWidth
	}
	if o.WheelStep <= 0 {
		o.WheelStep = DefaultWheelStep
	}
	return o
}

// Viewport tracks the scroll position of the strip. It implements
// datewindow.Scroller.
type Viewport struct {
	opts   Options
	count  func() int
	width  int
	offset int
}

// New creates a viewport whose chip count is read from count on every
// measurement.
func New(count func() int, opts Options) *Viewport {
	if count == nil {
		count = func() int { return 0 }
	}
	return &Viewport{opts: opts.withDefaults(), count: count}
}

// ChipWidth returns the width of one chip in columns.
func (v *Viewport) ChipWidth() int {
	return v.opts.ChipWidth
}

// SentinelWidth returns the width of each sentinel.
func (v *Viewport) SentinelWidth() int {
	return v.opts.SentinelWidth
}

// SetWidth sets the visible width and re-clamps the offset.
func (v *Viewport) SetWidth(width int) {
	v.width = max(0, width)
	v.SetScrollOffset(v.offset)
}

// Width returns the visible width.
func (v *Viewport) Width() int {
	return v.width
}

// ContentExtent returns the total content width in columns.
func (v *Viewport) ContentExtent() int {
	return 2*v.opts.SentinelWidth + v.count()*v.opts.ChipWidth
}

// MaxOffset returns the largest valid scroll offset.
func (v *Viewport) MaxOffset() int {
	return max(0, v.ContentExtent()-v.width)
}

// ScrollOffset returns the first visible content column.
func (v *Viewport) ScrollOffset() int {
	return v.offset
}

// SetScrollOffset moves the viewport, clamped to the content.
func (v *Viewport) SetScrollOffset(offset int) {
	v.offset = min(max(0, offset), v.MaxOffset())
}

// ScrollBy moves the viewport by delta columns.
func (v *Viewport) ScrollBy(delta int) {
	v.SetScrollOffset(v.offset + delta)
}

// ChipSpan returns the content columns [start, end) of chip i.
func (v *Viewport) ChipSpan(i int) (start, end int) {
	start = v.opts.SentinelWidth + i*v.opts.ChipWidth
	return start, start + v.opts.ChipWidth
}

// ChipAt returns the chip under visible column x (0 is the left edge of the
// viewport), or false when x falls on a sentinel or outside the content.
func (v *Viewport) ChipAt(x int) (int, bool) {
	if x < 0 || x >= v.width {
		return 0, false
	}
	col := v.offset + x - v.opts.SentinelWidth
	if col < 0 {
		return 0, false
	}
	i := col / v.opts.ChipWidth
	if i >= v.count() {
		return 0, false
	}
	return i, true
}

// EnsureVisible scrolls the minimum amount that brings chip i fully into view.
func (v *Viewport) EnsureVisible(i int) {
	start, end := v.ChipSpan(i)
	switch {
	case start < v.offset:
		v.SetScrollOffset(start)
	case end > v.offset+v.width:
		v.SetScrollOffset(end - v.width)
	}
}

// Center scrolls so that chip i sits in the middle of the viewport.
func (v *Viewport) Center(i int) {
	start, _ := v.ChipSpan(i)
	v.SetScrollOffset(start - (v.width-v.opts.ChipWidth)/2)
}

// VisibleRange returns the first and last chip that intersect the viewport,
// or (-1, -1) when none do.
func (v *Viewport) VisibleRange() (first, last int) {
	n := v.count()
	if n == 0 || v.width == 0 {
		return -1, -1
	}
	lo := v.offset - v.opts.SentinelWidth
	hi := v.offset + v.width - v.opts.SentinelWidth - 1
	first = max(0, floorDiv(lo, v.opts.ChipWidth))
	last = min(n-1, floorDiv(hi, v.opts.ChipWidth))
	if hi < 0 || first > last {
		return -1, -1
	}
	return first, last
}

// SentinelsVisible reports which sentinels intersect the viewport expanded by
// margin columns on each side.
func (v *Viewport) SentinelsVisible(margin int) (before, after bool) {
	margin = max(0, margin)
	viewStart := v.offset - margin
	viewEnd := v.offset + v.width + margin

	leadEnd := v.opts.SentinelWidth
	trailStart := v.ContentExtent() - v.opts.SentinelWidth

	before = intersects(0, leadEnd, viewStart, viewEnd)
	after = intersects(trailStart, v.ContentExtent(), viewStart, viewEnd)
	return before, after
}

// Wheel scrolls for a mouse wheel button and reports whether it was handled.
// Vertical wheel motion scrolls horizontally.
func (v *Viewport) Wheel(button tea.MouseButton) bool {
	switch button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		v.ScrollBy(-v.opts.WheelStep)
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		v.ScrollBy(v.opts.WheelStep)
	default:
		return false
	}
	return true
}

// Crop cuts a rendered row of chips starting at chip first down to the
// visible columns. Styled text is cut on display cells.
func (v *Viewport) Crop(row string, first int) string {
	start, _ := v.ChipSpan(first)
	left := v.offset - start
	if left < 0 {
		// the leading sentinel is in view
		row = strings.Repeat(" ", -left) + row
		left = 0
	}
	return ansi.Cut(row, left, left+v.width)
}

func intersects(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
