package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daystrip/internal/tui/theme"
)

func (a *App) themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [toggle]",
		Short: "Show or toggle the light/dark theme",
		Long: `Show the effective theme and whether it follows the system.

"toggle" flips the theme. Toggling back to the system preference clears the
saved override.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 && args[0] != "toggle" {
				return fmt.Errorf("unknown theme action %q (want toggle)", args[0])
			}

			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}
			_, prefersDark := a.systemMode(ctx)
			resolver := a.newResolver(ctx, prefersDark)
			if len(args) == 1 {
				resolver.Toggle(ctx)
			}

			fmt.Fprintln(cmd.OutOrStdout(), describeTheme(resolver))
			return nil
		},
	}
}

func describeTheme(r *theme.Resolver) string {
	source := "follows system"
	if !r.FollowsSystem() {
		source = "override"
	}
	return fmt.Sprintf("Theme: %s (%s, system is %s)", r.Current(), source, r.System())
}
