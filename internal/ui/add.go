package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/task"
)

func (a *App) addCmd() *cobra.Command {
	var (
		date        string
		description string
		done        bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task to a day.

Example:
  daystrip add "Write documentation" --date=2025-01-10 --description="API section"
  daystrip add "Call the bank" --date=friday`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dateutil.ParseRelative(date, a.now())
			if err != nil {
				return fmt.Errorf("parsing --date: %w", err)
			}

			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}
			t, err := a.store.Create(ctx, task.Draft{
				Title:       args[0],
				Description: description,
				Completed:   done,
				Date:        d,
			})
			if err != nil {
				return fmt.Errorf("creating task: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s (%s)\n", t.ID, t.Title, t.Date.Key())
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, today, tomorrow or a weekday; default: today)")
	cmd.Flags().StringVar(&description, "description", "", "Optional details")
	cmd.Flags().BoolVar(&done, "done", false, "Create the task as completed")

	return cmd
}
