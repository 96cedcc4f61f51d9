package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "size [roots...]",
		Short: "Print the total size of each root and its change since first measured",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Size(cmd.Context(), args, options(cmd))
		},
	}
}
