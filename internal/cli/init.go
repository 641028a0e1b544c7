package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize wardrobe storage",
		Long: "Create the configuration and data directories, check the catalog,\n" +
			"and create the user's entitlement record.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			backend, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if _, err := backend.EnsureRecord(a.flags.user); err != nil {
				return err
			}

			dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Wardrobe initialized successfully")
			fmt.Fprintln(out, "  config:    ", a.configDir)
			fmt.Fprintln(out, "  data:      ", dataDir)
			fmt.Fprintln(out, "  categories:", len(cat.Categories()))
			fmt.Fprintln(out, "  user:      ", a.flags.user)
			return nil
		},
	}
}
