package cli

import (
	"fmt"
	"strconv"
	"strings"

	"almanac/internal/date"
	"almanac/internal/grid"
	"almanac/internal/locale"

	"github.com/spf13/cobra"
)

func newGridCmd(app *App) *cobra.Command {
	var months int
	var weekStartsOn int
	var fixedWeeks bool

	cmd := &cobra.Command{
		Use:   "grid [YYYY-MM]",
		Short: "Print a calendar month grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor, err := gridAnchor(app, args)
			if err != nil {
				return err
			}
			ws := locale.Lookup(app.Locale).FirstDayOfWeek
			if weekStartsOn >= 0 {
				ws = weekStartsOn % 7
			}
			fmtr := locale.New(app.Locale)

			built := grid.BuildMonths(anchor, grid.Config{
				WeekStartsOn:   ws,
				NumberOfMonths: months,
				FixedWeeks:     fixedWeeks,
			})
			out := cmd.OutOrStdout()
			for i, m := range built {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintln(out, fmtr.FullMonthAndYear(m.Value))
				hdr := make([]string, 0, 7)
				for _, d := range m.Weeks[0] {
					hdr = append(hdr, fmtr.DayOfWeek(d, "short"))
				}
				fmt.Fprintln(out, strings.Join(hdr, " "))
				for _, week := range m.Weeks {
					row := make([]string, 0, 7)
					for _, d := range week {
						if date.SameMonth(d, m.Value) {
							row = append(row, fmt.Sprintf("%3d", d.Day))
						} else {
							row = append(row, "   ")
						}
					}
					fmt.Fprintln(out, strings.TrimRight(strings.Join(row, " "), " "))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 1, "Number of consecutive months")
	cmd.Flags().IntVar(&weekStartsOn, "week-starts-on", -1, "First weekday, 0 = Sunday (default: locale)")
	cmd.Flags().BoolVar(&fixedWeeks, "fixed-weeks", false, "Pad every month to six week rows")
	return cmd
}

func gridAnchor(app *App, args []string) (date.CalendarDate, error) {
	if len(args) == 0 {
		return date.Today(app.Zone)
	}
	parts := strings.SplitN(strings.TrimSpace(args[0]), "-", 2)
	if len(parts) != 2 {
		return date.CalendarDate{}, fmt.Errorf("invalid month %q (want YYYY-MM)", args[0])
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		return date.CalendarDate{}, fmt.Errorf("invalid month %q (want YYYY-MM)", args[0])
	}
	return date.NewCalendarDate(year, month, 1), nil
}
