// Package cli wires the almanac commands: scriptable subcommands for
// parsing, conversion, grids and history, and the interactive TUI when
// invoked without arguments.
package cli

import (
	"os"
	"strings"

	"almanac/internal/store"
	"almanac/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Locale string
	Zone   string
	Dir    string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "almanac",
		Short:        "Locale-aware date/time fields, calendars and zone math",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive field + calendar demo
  almanac

  # Print a month grid
  almanac grid 2024-06

  # Resolve a wall-clock time across a DST transition
  almanac convert 2024-11-03T01:30:00 --zone America/New_York --disambiguation earlier

  # Normalize an ISO-8601 value
  almanac parse 2024-02-29T12:00:00
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Locale, "locale", envOr("ALMANAC_LOCALE", "en-US"), "BCP 47 locale tag for formatting and field layout")
	cmd.PersistentFlags().StringVar(&app.Zone, "zone", envOr("ALMANAC_ZONE", "Local"), "IANA time zone name")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("ALMANAC_DIR", ""), "Path to the history database dir (default: ~/.almanac)")

	cmd.AddCommand(newGridCmd(app))
	cmd.AddCommand(newConvertCmd(app))
	cmd.AddCommand(newParseCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	return tui.Run(tui.Options{
		Locale: app.Locale,
		Store:  store.Store{Dir: app.Dir},
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
