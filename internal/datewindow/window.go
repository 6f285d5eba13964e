// Package datewindow manages the contiguous, bidirectionally growing window of
// dates shown in the date strip.
package datewindow

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/daystrip/internal/dateutil"
)

// Invariant violations reported by Validate.
var (
	ErrEmptyWindow   = errors.New("date window is empty")
	ErrNotContiguous = errors.New("date window is not contiguous")
)

// Default batch sizes per direction.
const (
	DefaultBatchBefore = 2
	DefaultBatchAfter  = 7
)

// Direction selects the end of the window to grow.
type Direction int

const (
	Before Direction = iota // prepend earlier dates
	After                   // append later dates
)

func (d Direction) String() string {
	switch d {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Scroller is the scrollable container the window is rendered into.
type Scroller interface {
	ScrollOffset() int
	SetScrollOffset(offset int)
	ContentExtent() int
}

// Options configures a Manager.
type Options struct {
	BatchBefore int
	BatchAfter  int
}

// Manager owns the date window and serializes its growth.
type Manager struct {
	dates       []dateutil.Date
	extending   bool
	batchBefore int
	batchAfter  int
}

// New creates an uninitialized Manager. Non-positive batch sizes fall back
// to the defaults.
func New(opts Options) *Manager {
	m := &Manager{batchBefore: opts.BatchBefore, batchAfter: opts.BatchAfter}
	if m.batchBefore <= 0 {
		m.batchBefore = DefaultBatchBefore
	}
	if m.batchAfter <= 0 {
		m.batchAfter = DefaultBatchAfter
	}
	return m
}

// Initialize builds [center-spanBefore, center+spanAfter] inclusive and clears
// any in-flight extension. It may be called again to repair a broken window.
func (m *Manager) Initialize(center dateutil.Date, spanBefore, spanAfter int) {
	if spanBefore < 0 {
		spanBefore = 0
	}
	if spanAfter < 0 {
		spanAfter = 0
	}
	m.dates = dateutil.Span(center.AddDays(-spanBefore), center.AddDays(spanAfter))
	m.extending = false
}

// Dates returns a copy of the window.
func (m *Manager) Dates() []dateutil.Date {
	return append([]dateutil.Date(nil), m.dates...)
}

// Len returns the number of dates in the window.
func (m *Manager) Len() int {
	return len(m.dates)
}

// At returns the i-th date.
func (m *Manager) At(i int) dateutil.Date {
	return m.dates[i]
}

// First returns the earliest date, or the zero Date when empty.
func (m *Manager) First() dateutil.Date {
	if len(m.dates) == 0 {
		return dateutil.Date{}
	}
	return m.dates[0]
}

// Last returns the latest date, or the zero Date when empty.
func (m *Manager) Last() dateutil.Date {
	if len(m.dates) == 0 {
		return dateutil.Date{}
	}
	return m.dates[len(m.dates)-1]
}

// IndexOf returns the position of d. Contiguity makes this arithmetic.
func (m *Manager) IndexOf(d dateutil.Date) (int, bool) {
	if len(m.dates) == 0 {
		return 0, false
	}
	i := m.dates[0].DaysUntil(d)
	if i < 0 || i >= len(m.dates) {
		return 0, false
	}
	return i, true
}

// Contains reports whether d is in the window.
func (m *Manager) Contains(d dateutil.Date) bool {
	_, ok := m.IndexOf(d)
	return ok
}

// Extending reports whether an extension is waiting to be settled.
func (m *Manager) Extending() bool {
	return m.extending
}

// BatchSize returns the number of dates added per extension in dir.
func (m *Manager) BatchSize(dir Direction) int {
	if dir == Before {
		return m.batchBefore
	}
	return m.batchAfter
}

// Validate checks the non-empty and contiguity invariants.
func (m *Manager) Validate() error {
	if len(m.dates) == 0 {
		return ErrEmptyWindow
	}
	for i := 1; i < len(m.dates); i++ {
		if m.dates[i-1].DaysUntil(m.dates[i]) != 1 {
			return fmt.Errorf("%w: %s followed by %s", ErrNotContiguous, m.dates[i-1], m.dates[i])
		}
	}
	return nil
}

// RequestExtend grows the window by one batch in dir. It returns false while a
// previous extension has not been settled, so repeated triggers add nothing.
//
// For a prepend the scroller's offset and extent are captured before the
// window changes; the returned Pending must be settled after the next layout
// pass to restore the visual position. sc may be nil when nothing is rendered.
func (m *Manager) RequestExtend(dir Direction, sc Scroller) (*Pending, bool) {
	if m.extending || len(m.dates) == 0 {
		return nil, false
	}
	m.extending = true

	p := &Pending{manager: m, dir: dir, scroller: sc}
	if dir == Before && sc != nil {
		p.anchor = Capture(sc)
	}

	n := m.BatchSize(dir)
	m.grow(dir, n)
	p.added = n
	return p, true
}

// grow adds n dates to the dir end of the window.
func (m *Manager) grow(dir Direction, n int) {
	if dir == Before {
		first := m.dates[0]
		grown := make([]dateutil.Date, 0, n+len(m.dates))
		grown = append(grown, dateutil.Span(first.AddDays(-n), first.AddDays(-1))...)
		m.dates = append(grown, m.dates...)
		return
	}
	last := m.dates[len(m.dates)-1]
	m.dates = append(m.dates, dateutil.Span(last.AddDays(1), last.AddDays(n))...)
}

// ExtendToward grows the window by whole batches until target is inside it
// and settles the result immediately. All batches are applied in one step.
// It returns the number of batches applied.
func (m *Manager) ExtendToward(target dateutil.Date, sc Scroller) int {
	if len(m.dates) == 0 || m.extending || m.Contains(target) {
		return 0
	}
	dir := After
	distance := m.Last().DaysUntil(target)
	if target.Before(m.dates[0]) {
		dir = Before
		distance = target.DaysUntil(m.dates[0])
	}
	n := m.BatchSize(dir)
	batches := (distance + n - 1) / n

	m.extending = true
	p := &Pending{manager: m, dir: dir, scroller: sc, added: batches * n}
	if dir == Before && sc != nil {
		p.anchor = Capture(sc)
	}
	m.grow(dir, p.added)
	p.Settle()
	return batches
}

// Pending is an applied extension whose scroll correction has not run yet.
type Pending struct {
	manager  *Manager
	dir      Direction
	added    int
	scroller Scroller
	anchor   Anchor
	settled  bool
}

// Direction returns the side that grew.
func (p *Pending) Direction() Direction {
	return p.dir
}

// Added returns how many dates the batch added.
func (p *Pending) Added() int {
	return p.added
}

// Settled reports whether Settle has run.
func (p *Pending) Settled() bool {
	return p.settled
}

// Settle is the post-layout phase: it shifts the current offset by the
// measured growth of the content and releases the extension guard. Scrolling
// done while the extension was pending is kept. Calling it more than once has
// no effect.
func (p *Pending) Settle() {
	if p == nil || p.settled {
		return
	}
	p.settled = true
	if p.dir == Before && p.scroller != nil {
		current := Anchor{Offset: p.scroller.ScrollOffset(), Extent: p.anchor.Extent}
		p.scroller.SetScrollOffset(current.Corrected(p.scroller.ContentExtent()))
	}
	p.manager.extending = false
}

// Anchor is a scroll position measured before a prepend.
type Anchor struct {
	Offset int
	Extent int
}

// Capture reads the scroller's current position.
func Capture(sc Scroller) Anchor {
	return Anchor{Offset: sc.ScrollOffset(), Extent: sc.ContentExtent()}
}

// Corrected returns the offset that keeps the same content in view once the
// content has grown to newExtent.
func (a Anchor) Corrected(newExtent int) int {
	return a.Offset + (newExtent - a.Extent)
}
