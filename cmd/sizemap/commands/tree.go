package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [roots...]",
		Short: "Print the size tree of the roots and everything they reference",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			opts := options(cmd)
			opts.Filter, _ = cmd.Flags().GetString("filter")
			return c.app.Tree(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().StringP("filter", "f", "", "Only follow packages in this chunk or managed by this primary asset")
	return cmd
}
