package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/importer"
)

func newParseCommand(opts *options) *cobra.Command {
	var showSkipped bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a statement export and print the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, _, err := opts.open(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading statement: %w", err)
			}
			content, err := importer.DecodeText(data)
			if err != nil {
				return err
			}

			rep := ws.Engine.Inspect(content)
			out, err := json.MarshalIndent(rep.Result, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))

			if showSkipped {
				for _, s := range rep.Skipped {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %v\n", s)
				}
			}

			if !rep.Result.Success {
				return errors.New(rep.Result.Error)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSkipped, "skipped", false, "list skipped rows on stderr")

	return cmd
}
