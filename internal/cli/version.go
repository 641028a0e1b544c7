package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/pkg/wardrobe"
)

const modulePath = "github.com/mesh-intelligence/wardrobe"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wardrobe version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "wardrobe %s\nmodule: %s\n", wardrobe.Version, modulePath)
			return nil
		},
	}
}
