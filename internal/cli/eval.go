package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/rpncalc/internal/session"
)

// newEvalCommand creates the "eval" subcommand that feeds its arguments to a fresh session.
func newEvalCommand(opts *Options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "eval TOKEN...",
		Short: "Evaluate tokens one by one and print the resulting stack",
		Long: "Evaluate feeds each argument to a new calculator session as if it were typed on its own line.\n" +
			"Numbers are pushed, operators (+ - * / sqrt pow swap) and actions (enter dup drop clear) are applied.\n" +
			"Put -- before the first token when it is a negative number.",
		Example: "  rpncalc eval 3 4 +\n  rpncalc eval -- -2 pow",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			sess := session.New(opts.sessionOptions(logger))
			for _, token := range args {
				sess.Submit(token)
			}

			view := sess.View()
			if err := writeView(cmd.OutOrStdout(), view, output); err != nil {
				return err
			}
			if err := sess.Engine().Err(); err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			logger.Debug("evaluation finished", "tokens", len(args), "depth", view.Depth)
			return nil
		},
	}

	addOutputFlag(cmd.Flags(), &output)

	return cmd
}
