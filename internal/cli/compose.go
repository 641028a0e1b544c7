package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newComposeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Render the current selection as an SVG document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.openSession()
			if err != nil {
				return err
			}
			defer u.close()

			svg := u.session.Render()
			if n := u.diag.Dangling(); n > 0 {
				a.log.Warn("composition skipped dangling parts", "count", n)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), svg)
				return nil
			}
			if err := os.WriteFile(output, []byte(svg), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, len(svg))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the SVG to a file instead of stdout")
	return cmd
}
