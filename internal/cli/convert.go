package cli

import (
	"fmt"
	"strings"

	"almanac/internal/date"

	"github.com/spf13/cobra"
)

func newConvertCmd(app *App) *cobra.Command {
	var dis string

	cmd := &cobra.Command{
		Use:   "convert <datetime>",
		Short: "Resolve a wall-clock time to an absolute instant in a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := date.ParseDateTime(args[0])
			if err != nil {
				return err
			}
			policy := date.Disambiguation(strings.ToLower(strings.TrimSpace(dis)))
			switch policy {
			case date.DisambiguationCompatible, date.DisambiguationEarlier,
				date.DisambiguationLater, date.DisambiguationReject:
			default:
				return fmt.Errorf("invalid disambiguation %q (want compatible|earlier|later|reject)", dis)
			}

			z, err := date.ToZoned(dt, app.Zone, policy)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, z.String())
			fmt.Fprintf(out, "zone: %s  offset: %s  epoch-ms: %d\n",
				z.TimeZone, offsetString(z.OffsetMillis), z.EpochMillis())
			return nil
		},
	}

	cmd.Flags().StringVar(&dis, "disambiguation", "compatible", "DST policy (compatible|earlier|later|reject)")
	return cmd
}

func offsetString(ms int) string {
	sign := "+"
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	return fmt.Sprintf("%s%02d:%02d", sign, ms/3600000, ms%3600000/60000)
}
