package ui

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daystrip/internal/dateutil"
	"github.com/javiermolinar/daystrip/internal/task"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

func (a *App) doneCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done [task_id]",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed, or as pending again with --undo.

Example:
  daystrip done 3
  daystrip done 3 --undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			t, err := a.store.Update(ctx, id, task.Patch{Completed: task.Ptr(!undo)})
			if err != nil {
				return fmt.Errorf("updating task: %w", err)
			}
			state := "completed"
			if undo {
				state = "pending"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked task #%d as %s: %s\n", t.ID, state, t.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task as pending")
	return cmd
}

func (a *App) editCmd() *cobra.Command {
	var (
		title       string
		description string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "edit [task_id]",
		Short: "Edit a task",
		Long: `Change the title, description or date of a task.
Only the given flags are changed.

Example:
  daystrip edit 3 --title="Write the report" --date=monday`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch task.Patch
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = task.Ptr(title)
			}
			if flags.Changed("description") {
				patch.Description = task.Ptr(description)
			}
			if flags.Changed("date") {
				d, err := dateutil.ParseRelative(date, a.now())
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
				patch.Date = task.Ptr(d)
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change: use --title, --description or --date")
			}

			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}
			t, err := a.store.Update(ctx, id, patch)
			if err != nil {
				return fmt.Errorf("updating task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s (%s)\n", t.ID, t.Title, t.Date.Key())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&date, "date", "", "New date (YYYY-MM-DD, today, tomorrow or a weekday)")
	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [task_id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			t, ok := a.store.Get(id)
			if !ok {
				return fmt.Errorf("deleting task #%d: %w", id, task.ErrTaskNotFound)
			}
			if err := a.store.Delete(ctx, id); err != nil {
				return fmt.Errorf("deleting task: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d: %s\n", t.ID, t.Title)
			return nil
		},
	}
}
