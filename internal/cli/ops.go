package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/rpncalc/internal/rpn"
)

// newOpsCommand creates the "ops" subcommand that lists operators and key bindings.
func newOpsCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List supported operators and key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(tw, "OPERATOR\tARITY")
			for _, op := range rpn.Ops() {
				fmt.Fprintf(tw, "%s\t%d\n", op, op.Arity())
			}
			fmt.Fprintln(tw)

			fmt.Fprintln(tw, "KEY\tACTION")
			for _, key := range opts.keymap.Keys() {
				b, _ := opts.keymap.Lookup(key)
				fmt.Fprintf(tw, "%s\t%s\n", key, b)
			}
			return tw.Flush()
		},
	}

	return cmd
}
