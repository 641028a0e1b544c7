package cli

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errInvalidColor = errors.New("invalid color")

// normalizeHex accepts "RRGGBB" or "#RRGGBB" in any case and returns
// "#RRGGBB" upper-cased.
func normalizeHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q: expected 6 hex digits", errInvalidColor, s)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("%w: %q: not hex", errInvalidColor, s)
	}
	return "#" + strings.ToUpper(s), nil
}

func newColorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "color <category> <#RRGGBB|none>",
		Short: "Set or clear the colour override of a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryID := args[0]

			color := ""
			if !strings.EqualFold(args[1], "none") {
				c, err := normalizeHex(args[1])
				if err != nil {
					return err
				}
				color = c
			}

			u, err := a.openSession()
			if err != nil {
				return err
			}
			defer u.close()

			// Unknown categories fail here even when the store is lenient.
			if _, err := u.session.Parts(categoryID); err != nil {
				return err
			}
			if err := u.session.SetColor(categoryID, color); err != nil {
				return err
			}
			if err := u.save(); err != nil {
				return err
			}

			if color == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: colour cleared\n", categoryID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", categoryID, color)
			}
			return nil
		},
	}
}
