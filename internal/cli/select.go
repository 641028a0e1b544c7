package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "select <category> [part]",
		Short: "Wear a part, or clear an optional category when part is omitted",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.openSession()
			if err != nil {
				return err
			}
			defer u.close()

			categoryID := args[0]
			if len(args) == 1 {
				err = u.session.Clear(categoryID)
			} else {
				err = u.session.Choose(categoryID, args[1])
			}
			if err != nil {
				return err
			}
			if err := u.save(); err != nil {
				return err
			}

			if len(args) == 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: cleared\n", categoryID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", categoryID, args[1])
			}
			return nil
		},
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.openSession()
			if err != nil {
				return err
			}
			defer u.close()

			u.session.Reset()
			if err := u.save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "selection reset to defaults")
			return nil
		},
	}
}
