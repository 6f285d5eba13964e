package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) searchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Fuzzy-search tasks",
		Long: `Fuzzy-search task titles and descriptions across all days.
Best matches are listed first.

Example:
  daystrip search dentist`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			matches := a.store.SearchMatches(strings.Join(args, " "))
			if len(matches) == 0 {
				fmt.Fprintln(out, "No matching tasks.")
				return nil
			}
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}
			for _, m := range matches {
				fmt.Fprintf(out, "  %s %s  %s  %s\n",
					statusSymbol(m.Task),
					formatMuted(fmt.Sprintf("#%-3d", m.Task.ID)),
					m.Task.Date.Key(),
					highlightMatches(m.Task.Title, m.Positions),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results (0 = all)")
	return cmd
}
