package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLedgerCmd(a *app) *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "List the user's acquisitions and adjustments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			out := cmd.OutOrStdout()
			if export != "" {
				n, err := backend.ExportLedger(a.flags.user, export)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "exported %d entries to %s\n", n, export)
				return nil
			}

			entries, err := backend.Ledger(a.flags.user)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return printJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "no ledger entries")
				return nil
			}
			for _, e := range entries {
				part := e.PartID
				if part == "" {
					part = "-"
				}
				fmt.Fprintf(out, "%s  %-8s %-10s credits %+d  xp %+d\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.Operation, part, e.CreditsDelta, e.XPDelta)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&export, "export", "", "write the ledger to a JSONL file")
	return cmd
}
