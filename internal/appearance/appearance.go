// Package appearance reports whether the operating system prefers a dark
// appearance and notifies subscribers when that preference changes.
package appearance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"

	"github.com/javiermolinar/daystrip/internal/logs"
)

// EnvSystemTheme forces the system preference to "light" or "dark".
const EnvSystemTheme = "DAYSTRIP_SYSTEM_THEME"

// DefaultInterval is the default polling interval of a Watcher.
const DefaultInterval = 5 * time.Second

// ErrUnsupported is returned by probes on platforms without a known query.
var ErrUnsupported = errors.New("appearance query not supported on this platform")

// Probe queries the current OS preference.
type Probe func(ctx context.Context) (prefersDark bool, err error)

// commandOutput runs a command and returns its trimmed stdout.
var commandOutput = func(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// DefaultProbe returns the probe for the running platform.
func DefaultProbe() Probe {
	switch runtime.GOOS {
	case "darwin":
		return probeDarwin
	case "linux", "freebsd", "openbsd", "netbsd":
		return probeGnome
	case "windows":
		return probeWindows
	default:
		return func(context.Context) (bool, error) { return false, ErrUnsupported }
	}
}

func probeDarwin(ctx context.Context) (bool, error) {
	out, err := commandOutput(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		// The key is absent in light mode and defaults exits non-zero.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, fmt.Errorf("reading AppleInterfaceStyle: %w", err)
	}
	return parseDarwin(out), nil
}

func probeGnome(ctx context.Context) (bool, error) {
	out, err := commandOutput(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return false, fmt.Errorf("reading color-scheme: %w", err)
	}
	return parseGnome(out), nil
}

func probeWindows(ctx context.Context) (bool, error) {
	out, err := commandOutput(ctx, "reg", "query",
		`HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`,
		"/v", "AppsUseLightTheme")
	if err != nil {
		return false, fmt.Errorf("reading AppsUseLightTheme: %w", err)
	}
	return parseWindows(out)
}

func parseDarwin(out string) bool {
	return strings.EqualFold(strings.TrimSpace(out), "dark")
}

func parseGnome(out string) bool {
	return strings.Contains(strings.Trim(out, `'" `), "prefer-dark")
}

func parseWindows(out string) (bool, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 3 && fields[0] == "AppsUseLightTheme" {
			return fields[2] == "0x0", nil
		}
	}
	return false, fmt.Errorf("AppsUseLightTheme not found in %q", out)
}

// Forced returns a probe that always reports prefersDark.
func Forced(prefersDark bool) Probe {
	return func(context.Context) (bool, error) { return prefersDark, nil }
}

// ParseForced parses a forced value. "auto" and "" return ok=false.
func ParseForced(s string) (prefersDark, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// ResolveProbe picks the probe for a configured system_theme value.
// The environment variable takes precedence over the configured value.
func ResolveProbe(configured string) Probe {
	if dark, ok := ParseForced(os.Getenv(EnvSystemTheme)); ok {
		return Forced(dark)
	}
	if dark, ok := ParseForced(configured); ok {
		return Forced(dark)
	}
	return DefaultProbe()
}

// Initial returns the preference to start with. When the probe fails it falls
// back to the terminal's background color. It must run before a TUI takes over
// the terminal.
func Initial(ctx context.Context, probe Probe) bool {
	if probe != nil {
		if dark, err := probe(ctx); err == nil {
			return dark
		}
	}
	return termenv.HasDarkBackground()
}

// Watcher polls a Probe and notifies subscribers when the result changes.
type Watcher struct {
	probe    Probe
	interval time.Duration
	logger   *slog.Logger

	mu          sync.Mutex
	prefersDark bool
	subs        map[int]func(bool)
	nextID      int
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the logger used for probe failures.
func WithLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logs.OrDiscard(l)
	}
}

// WithInitial sets the preference reported before the first poll.
func WithInitial(prefersDark bool) WatcherOption {
	return func(w *Watcher) {
		w.prefersDark = prefersDark
	}
}

// NewWatcher creates a watcher. A non-positive interval uses DefaultInterval.
func NewWatcher(probe Probe, interval time.Duration, opts ...WatcherOption) *Watcher {
	if probe == nil {
		probe = DefaultProbe()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	w := &Watcher{
		probe:    probe,
		interval: interval,
		logger:   logs.Discard(),
		subs:     make(map[int]func(bool)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// PrefersDark returns the last observed preference.
func (w *Watcher) PrefersDark() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.prefersDark
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription and may be called more than once.
func (w *Watcher) Subscribe(fn func(prefersDark bool)) (unsubscribe func()) {
	w.mu.Lock()
	id := w.nextID
	w.nextID++
	w.subs[id] = fn
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
		})
	}
}

// Poll queries the probe once and notifies subscribers if the value changed.
// It reports whether a change was observed.
func (w *Watcher) Poll(ctx context.Context) bool {
	dark, err := w.probe(ctx)
	if err != nil {
		w.logger.Debug("appearance_probe_failed", "error", err)
		return false
	}

	w.mu.Lock()
	if dark == w.prefersDark {
		w.mu.Unlock()
		return false
	}
	w.prefersDark = dark
	fns := make([]func(bool), 0, len(w.subs))
	for _, fn := range w.subs {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	w.logger.Info("appearance_changed", "prefers_dark", dark)
	for _, fn := range fns {
		fn(dark)
	}
	return true
}

// Run polls until ctx is cancelled. It always returns ctx.Err().
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}
