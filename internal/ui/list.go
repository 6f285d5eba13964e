package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/daystrip/internal/dateutil"
)

func (a *App) listCmd() *cobra.Command {
	var (
		date      string
		startDate string
		endDate   string
		verbose   bool
		noColor   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in a date range",
		Long: `List all tasks scheduled within a date range.

If no dates are specified, lists today's tasks.
--date lists a single day and accepts relative names.
If both --start and --end are specified, lists tasks in that range (inclusive).`,
		Example: `  daystrip list
  daystrip list --date=tomorrow
  daystrip list --start=2025-01-15 --end=2025-01-20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if date != "" && (startDate != "" || endDate != "") {
				return fmt.Errorf("--date cannot be combined with --start or --end")
			}

			var dateRange *dateutil.DateRange
			if date != "" {
				d, err := dateutil.ParseRelative(date, a.now())
				if err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
				dateRange = &dateutil.DateRange{Start: d, End: d}
			} else {
				r, err := dateutil.NewDateRange(startDate, endDate, a.now())
				if err != nil {
					return err
				}
				dateRange = r
			}

			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}
			tasks := a.store.InRange(*dateRange)

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks found in the specified date range.")
				return nil
			}
			PrintDays(out, tasks, PrintOpts{Verbose: verbose, Today: dateutil.Today(a.now())})
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Single date (YYYY-MM-DD, today, tomorrow or a weekday)")
	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show full task descriptions")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")

	return cmd
}
