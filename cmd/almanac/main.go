package main

import (
	"os"
	"strings"

	"almanac/internal/cli"
)

func looksLikeDateValue(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < len("2006-01-02") {
		return false
	}
	// Cheap shape check (YYYY- prefix); full validation happens in the
	// parse command.
	for i := 0; i < 4; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s[4] == '-'
}

func rewriteDirectParseArgs(argv []string) []string {
	// Convenience: `almanac 2024-06-01` works like `almanac parse 2024-06-01`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	//
	// Users may pass persistent flags first (e.g. `almanac --locale de-DE <value>`),
	// so we must find the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Minimal persistent-flag awareness. Unknown flags are skipped
	// without consuming their value, to avoid accidentally eating the
	// date argument.
	valueFlags := map[string]bool{
		"--locale": true,
		"--zone":   true,
		"--dir":    true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Stop flag parsing; next token (if any) is the first positional.
			if i+1 < len(argv) && looksLikeDateValue(argv[i+1]) {
				out := make([]string, 0, len(argv)+1)
				out = append(out, argv[:i+1]...)
				out = append(out, "parse")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value form
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if looksLikeDateValue(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "parse")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectParseArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
