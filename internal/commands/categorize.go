package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCategorizeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize <description>",
		Short: "Print the category assigned to a transaction description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := opts.open(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ws.Categorizer.Categorize(strings.Join(args, " ")))
			return nil
		},
	}
}
