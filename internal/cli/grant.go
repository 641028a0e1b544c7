package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGrantCmd(a *app) *cobra.Command {
	var (
		xp      int
		credits int
		premium bool
	)

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Adjust XP, credits, or premium status",
		Long: "Apply economy changes normally made by an external service. Deltas\n" +
			"may be negative; balances never drop below zero.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var premiumPtr *bool
			if cmd.Flags().Changed("premium") {
				premiumPtr = &premium
			}
			if xp == 0 && credits == 0 && premiumPtr == nil {
				return fmt.Errorf("%w: set at least one of --xp, --credits or --premium", errUsage)
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if _, err := backend.EnsureRecord(a.flags.user); err != nil {
				return err
			}
			record, err := backend.Adjust(a.flags.user, xp, credits, premiumPtr)
			if err != nil {
				return err
			}
			a.log.Info("economy adjusted", "xp_delta", xp, "credits_delta", credits)

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, viewRecord(record))
			}
			printRecord(out, record)
			return nil
		},
	}
	cmd.Flags().IntVar(&xp, "xp", 0, "XP delta")
	cmd.Flags().IntVar(&credits, "credits", 0, "credit delta")
	cmd.Flags().BoolVar(&premium, "premium", false, "set premium status")
	return cmd
}
