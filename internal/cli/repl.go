package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/rpncalc/internal/session"
)

// newReplCommand creates the "repl" subcommand: an interactive session over stdin.
func newReplCommand(opts *Options) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive calculator session",
		Long: "Read one entry per line: a number, an operator, an action (enter, dup, drop, clear, backspace)\n" +
			"or a key name (Enter, Delete, Escape, s, p, w). A blank line is Enter. quit or exit ends the session.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			sess := session.New(opts.sessionOptions(logger))
			if !quiet {
				if err := session.Render(out, sess.View()); err != nil {
					return err
				}
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			lines := 0
			for scanner.Scan() {
				if err := ctx.Err(); err != nil {
					return err
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "quit" || line == "exit" {
					break
				}
				lines++
				sess.Submit(line)
				if quiet {
					continue
				}
				if _, err := fmt.Fprintln(out, "--"); err != nil {
					return err
				}
				if err := session.Render(out, sess.View()); err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			if quiet {
				if err := session.Render(out, sess.View()); err != nil {
					return err
				}
			}
			logger.Debug("session ended", "lines", lines, "depth", sess.Engine().Len())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the final stack")

	return cmd
}
