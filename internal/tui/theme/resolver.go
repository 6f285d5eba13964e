package theme

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/javiermolinar/daystrip/internal/logs"
	"github.com/javiermolinar/daystrip/internal/prefs"
)

// PreferenceKey is the preference store key holding the user override.
const PreferenceKey = "theme"

// Resolver computes the effective theme from the live system preference and
// an optional persisted user override.
type Resolver struct {
	store    prefs.Store
	logger   *slog.Logger
	system   Mode
	override Mode // "" means unset

	mu        sync.Mutex
	listeners map[int]func(Mode)
	nextID    int
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for store failures.
func WithLogger(l *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logs.OrDiscard(l)
	}
}

// NewResolver reads the persisted override from store. A missing, unreadable
// or malformed value leaves the override unset; malformed values are removed.
// A nil store keeps all state in memory.
func NewResolver(ctx context.Context, store prefs.Store, system Mode, opts ...ResolverOption) *Resolver {
	if system != Light {
		system = Dark
	}
	r := &Resolver{
		store:     store,
		logger:    logs.Discard(),
		system:    system,
		listeners: make(map[int]func(Mode)),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.override = r.loadOverride(ctx)
	return r
}

func (r *Resolver) loadOverride(ctx context.Context) Mode {
	if r.store == nil {
		return ""
	}
	raw, err := r.store.Get(ctx, PreferenceKey)
	if errors.Is(err, prefs.ErrNotFound) {
		return ""
	}
	if err != nil {
		r.logger.Warn("theme_read_failed", "error", err)
		return ""
	}
	mode, ok := ParseMode(string(raw))
	if !ok {
		r.logger.Warn("theme_malformed", "value", string(raw))
		if err := r.store.Remove(ctx, PreferenceKey); err != nil {
			r.logger.Warn("theme_remove_failed", "error", err)
		}
		return ""
	}
	return mode
}

// Current returns the effective theme.
func (r *Resolver) Current() Mode {
	if r.override != "" {
		return r.override
	}
	return r.system
}

// Override returns the user override, or "" when following the system.
func (r *Resolver) Override() Mode {
	return r.override
}

// System returns the last known system preference.
func (r *Resolver) System() Mode {
	return r.system
}

// FollowsSystem reports whether no override is set.
func (r *Resolver) FollowsSystem() bool {
	return r.override == ""
}

// OnSystemChange records a new system preference. The override is never
// touched. It reports whether the effective theme changed.
func (r *Resolver) OnSystemChange(mode Mode) bool {
	if mode != Light && mode != Dark {
		return false
	}
	before := r.Current()
	r.system = mode
	return r.notifyIfChanged(before)
}

// Toggle flips the effective theme. When the result equals the system
// preference the override is cleared and its key removed; otherwise the
// override is set and persisted. It returns the new effective theme.
func (r *Resolver) Toggle(ctx context.Context) Mode {
	before := r.Current()
	next := before.Opposite()

	if next == r.system {
		r.override = ""
		r.remove(ctx)
	} else {
		r.override = next
		r.persist(ctx, next)
	}

	r.notifyIfChanged(before)
	return r.Current()
}

// OnChange registers fn to run synchronously whenever the effective theme
// changes. The returned function removes the listener and is safe to call
// more than once.
func (r *Resolver) OnChange(fn func(Mode)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.listeners, id)
			r.mu.Unlock()
		})
	}
}

func (r *Resolver) notifyIfChanged(before Mode) bool {
	now := r.Current()
	if now == before {
		return false
	}
	r.mu.Lock()
	fns := make([]func(Mode), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(now)
	}
	return true
}

func (r *Resolver) persist(ctx context.Context, mode Mode) {
	if r.store == nil {
		return
	}
	if err := r.store.Set(ctx, PreferenceKey, []byte(mode)); err != nil {
		r.logger.Warn("theme_write_failed", "error", err, "value", string(mode))
	}
}

func (r *Resolver) remove(ctx context.Context) {
	if r.store == nil {
		return
	}
	if err := r.store.Remove(ctx, PreferenceKey); err != nil {
		r.logger.Warn("theme_remove_failed", "error", err)
	}
}
