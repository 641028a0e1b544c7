package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the user's entitlement record and current selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.openSession()
			if err != nil {
				return err
			}
			defer u.close()

			record := u.session.Record()
			sel := u.session.Selection()
			out := cmd.OutOrStdout()

			if a.flags.jsonMode {
				return printJSON(out, struct {
					User      string          `json:"user"`
					Record    recordView      `json:"record"`
					Selection types.Selection `json:"selection"`
				}{u.userID, viewRecord(record), sel})
			}

			fmt.Fprintf(out, "User:     %s\n", u.userID)
			printRecord(out, record)
			fmt.Fprintln(out, "Selection:")
			for _, c := range u.catalog.Categories() {
				entry, ok := sel[c.ID]
				if !ok {
					continue
				}
				part := entry.PartID
				if part == "" {
					part = "-"
				}
				if entry.Color != "" {
					fmt.Fprintf(out, "  %-12s %s %s\n", c.ID, part, entry.Color)
				} else {
					fmt.Fprintf(out, "  %-12s %s\n", c.ID, part)
				}
			}
			return nil
		},
	}
}
