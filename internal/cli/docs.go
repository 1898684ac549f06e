package cli

import (
	"fmt"
	"os"
	"strings"

	"almanac/internal/docs"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show embedded documentation topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, topic := range docs.Topics() {
					fmt.Fprintln(out, topic)
				}
				return nil
			}

			body, ok := docs.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown docs topic %q (run `almanac docs` to list topics)", args[0])
			}
			if raw {
				fmt.Fprint(out, body)
				return nil
			}
			rendered, err := renderDocsMarkdown(body, width)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rendered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no terminal styling)")
	cmd.Flags().IntVar(&width, "width", 80, "Word-wrap width")
	return cmd
}

func renderDocsMarkdown(md string, width int) (string, error) {
	style := "dark"
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		style = "notty"
	}
	// Avoid WithAutoStyle: it probes the terminal, which blocks when
	// output is piped.
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
