package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/daystrip/internal/appearance"
	"github.com/javiermolinar/daystrip/internal/config"
	"github.com/javiermolinar/daystrip/internal/logs"
	"github.com/javiermolinar/daystrip/internal/task"
	"github.com/javiermolinar/daystrip/internal/tui/theme"
)

// Options holds the collaborators of a TUI session.
type Options struct {
	Store    *task.Store
	Resolver *theme.Resolver
	Watcher  *appearance.Watcher // optional
	Config   *config.Config
	Logger   *slog.Logger
}

// Run starts the TUI and blocks until it exits. The appearance watcher, when
// set, is polled for the duration of the session.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := logs.OrDiscard(opts.Logger)
	modelOpts := []ModelOption{
		WithLogger(logger),
		WithClipboard(clipboard.WriteAll),
	}

	if opts.Watcher != nil {
		ch := make(chan theme.Mode, 1)
		unsubscribe := opts.Watcher.Subscribe(func(prefersDark bool) {
			offerLatest(ch, theme.FromPrefersDark(prefersDark))
		})
		defer unsubscribe()
		go func() {
			_ = opts.Watcher.Run(ctx)
		}()
		modelOpts = append(modelOpts, WithSystemThemes(ch))
	}

	model := New(opts.Store, opts.Resolver, opts.Config, modelOpts...)
	defer model.Close()

	logger.Info("tui_start", "theme", string(model.resolver.Current()), "tasks", model.store.Len())
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	logger.Info("tui_exit", "error", err)
	return err
}

// offerLatest sends v without blocking, replacing a value nobody has read yet.
func offerLatest(ch chan theme.Mode, v theme.Mode) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
