package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/workspace"
)

func newImportCommand(opts *options) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import statement CSVs from the inbox into the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, _, err := opts.open(cmd)
			if err != nil {
				return err
			}

			sum, err := ws.Import(cmd.Context(), dryRun)
			if sum != nil {
				printSummary(cmd.OutOrStdout(), sum, dryRun)
			}
			if err != nil {
				return err
			}
			if n := sum.Failed(); n > 0 {
				return fmt.Errorf("%d of %d files failed to import", n, len(sum.Files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse files without writing to the ledger")

	return cmd
}

func printSummary(out io.Writer, sum *workspace.Summary, dryRun bool) {
	if len(sum.Files) == 0 {
		fmt.Fprintln(out, "No statements to import")
		return
	}

	for _, f := range sum.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "  %s: failed: %v\n", f.File, f.Err)
			continue
		}
		fmt.Fprintf(out, "  %s: %d transactions (%s)", f.File, f.Count, f.Bank)
		if len(f.Skipped) > 0 {
			fmt.Fprintf(out, ", %d rows skipped", len(f.Skipped))
		}
		fmt.Fprintln(out)
	}

	verb := "Imported"
	if dryRun {
		verb = "Would import"
	}
	fmt.Fprintf(out, "%s %d transactions from %d files (run %s)\n", verb, sum.Imported(), len(sum.Files)-sum.Failed(), sum.RunID)
	if sum.Commit != "" {
		fmt.Fprintf(out, "Committed %s\n", sum.Commit)
	}
}
