package cli

import (
	"fmt"
	"time"

	"almanac/internal/store"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the committed-value history",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List committed values, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.Store{Dir: app.Dir}
			entries, err := s.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "history is empty")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-8s  %-6s  %s\n",
					e.CommittedAt.Format(time.RFC3339), e.Kind, e.Locale, e.Value)
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Maximum entries to print (0 = all)")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.Store{Dir: app.Dir}
			n, err := s.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
			return nil
		},
	}

	cmd.AddCommand(list)
	cmd.AddCommand(clear)
	return cmd
}
