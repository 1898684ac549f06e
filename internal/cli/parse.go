package cli

import (
	"fmt"

	"almanac/internal/date"
	"almanac/internal/locale"

	"github.com/spf13/cobra"
)

func newParseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <value>",
		Short: "Parse and normalize an ISO-8601 date, date-time or zoned value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := date.ParseValue(args[0])
			if err != nil {
				return err
			}
			fmtr := locale.New(app.Locale)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kind: %s\n", v.Kind())
			fmt.Fprintf(out, "iso: %s\n", v.String())
			fmt.Fprintf(out, "display: %s\n", fmtr.SelectedDate(v, v.Kind() != date.KindDate))
			fmt.Fprintf(out, "weekday: %s\n", fmtr.DayOfWeek(v.Date(), "full"))
			return nil
		},
	}
	return cmd
}
