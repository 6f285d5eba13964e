// Package ui implements the daystrip command line.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daystrip/internal/appearance"
	"github.com/javiermolinar/daystrip/internal/config"
	"github.com/javiermolinar/daystrip/internal/db"
	"github.com/javiermolinar/daystrip/internal/logs"
	"github.com/javiermolinar/daystrip/internal/prefs"
	"github.com/javiermolinar/daystrip/internal/task"
	"github.com/javiermolinar/daystrip/internal/tui"
	"github.com/javiermolinar/daystrip/internal/tui/theme"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
	now    func() time.Time

	logger *slog.Logger
	prefs  prefs.Store // opened lazily from config.Storage.DBPath
	store  *task.Store
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	return newApp(cfg, nil)
}

// newApp creates an App. A non-nil p replaces the SQLite preference store.
func newApp(cfg *config.Config, p prefs.Store) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{config: cfg, prefs: p, now: time.Now, logger: logs.Discard()}

	a.root = &cobra.Command{
		Use:   "daystrip",
		Short: "A terminal task manager with an endless date strip",
		Long: `daystrip keeps dated to-do items on your machine.

Run without arguments to open the interactive date strip. The subcommands
manage tasks from scripts and the shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			logger, err := logs.Init(a.debug, "")
			a.logger = logger
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd.Context())
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to "+logs.DebugLogPath+")")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.addCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.doneCmd())
	a.root.AddCommand(a.editCmd())
	a.root.AddCommand(a.deleteCmd())
	a.root.AddCommand(a.searchCmd())
	a.root.AddCommand(a.themeCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "daystrip %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureStore opens the preference store and loads the task collection.
func (a *App) ensureStore(ctx context.Context) error {
	return a.openStore(ctx, false)
}

// openStore loads the task collection. With allowMemory an unavailable
// database degrades to an in-memory session instead of failing.
func (a *App) openStore(ctx context.Context, allowMemory bool) error {
	if a.store != nil {
		return nil
	}
	if a.prefs == nil {
		p, err := db.Open(a.config.Storage.DBPath)
		if err != nil {
			if !allowMemory {
				return fmt.Errorf("opening database: %w", err)
			}
			a.logger.Warn("storage_unavailable", "path", a.config.Storage.DBPath, "error", err)
		}
		a.prefs = p
	}
	a.store = task.Open(ctx, a.prefs, task.WithLogger(a.logger), task.WithClock(a.now))
	return nil
}

// systemMode reads the OS appearance once.
func (a *App) systemMode(ctx context.Context) (appearance.Probe, bool) {
	probe := appearance.ResolveProbe(a.config.UI.SystemTheme)
	return probe, appearance.Initial(ctx, probe)
}

func (a *App) newResolver(ctx context.Context, prefersDark bool) *theme.Resolver {
	return theme.NewResolver(ctx, a.prefs, theme.FromPrefersDark(prefersDark), theme.WithLogger(a.logger))
}

// runTUI starts the interactive session. An unavailable database degrades to
// an in-memory session instead of failing.
func (a *App) runTUI(ctx context.Context) error {
	if err := a.openStore(ctx, true); err != nil {
		return err
	}

	probe, prefersDark := a.systemMode(ctx)
	watcher := appearance.NewWatcher(probe, a.config.PollDuration(),
		appearance.WithLogger(a.logger),
		appearance.WithInitial(prefersDark),
	)

	return tui.Run(ctx, tui.Options{
		Store:    a.store,
		Resolver: a.newResolver(ctx, prefersDark),
		Watcher:  watcher,
		Config:   a.config,
		Logger:   a.logger,
	})
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close releases the database and the debug log.
func (a *App) Close() error {
	var err error
	if a.prefs != nil {
		err = a.prefs.Close()
		a.prefs = nil
	}
	if logErr := logs.Close(); err == nil {
		err = logErr
	}
	return err
}
