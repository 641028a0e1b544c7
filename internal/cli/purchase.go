package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// acquisition is the outcome of a purchase or unlock.
type acquisition struct {
	Category string     `json:"category"`
	Part     string     `json:"part"`
	Charged  int        `json:"charged"`
	Already  bool       `json:"already_owned"`
	Record   recordView `json:"record"`
}

// commit persists an acquisition computed by the session. Re-acquiring an
// owned part writes nothing.
func (u *userSession) commit(partID string, before, next types.EntitlementRecord) (int, error) {
	if before.Owns(partID) {
		return 0, nil
	}
	charged := before.Credits - next.Credits
	op := types.LedgerOpPurchase
	if charged == 0 {
		op = types.LedgerOpUnlock
	}
	return charged, u.store.CommitAcquisition(u.userID, partID, op, next, charged)
}

// acquire runs fn against the session, commits the result, and optionally
// wears the part.
func (a *app) acquire(cmd *cobra.Command, categoryID, partID string, wear bool,
	fn func(*userSession) (types.EntitlementRecord, error)) error {
	u, err := a.openSession()
	if err != nil {
		return err
	}
	defer u.close()

	before := u.session.Record()
	next, err := fn(u)
	if err != nil {
		return err
	}
	charged, err := u.commit(partID, before, next)
	if err != nil {
		return err
	}
	if wear {
		if err := u.session.Choose(categoryID, partID); err != nil {
			return err
		}
		if err := u.save(); err != nil {
			return err
		}
	}

	res := acquisition{
		Category: categoryID,
		Part:     partID,
		Charged:  charged,
		Already:  before.Owns(partID),
		Record:   viewRecord(next),
	}
	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return printJSON(out, res)
	}
	switch {
	case res.Already:
		fmt.Fprintf(out, "%s already owned\n", partID)
	case charged > 0:
		fmt.Fprintf(out, "%s acquired for %d credits (%d left)\n", partID, charged, next.Credits)
	default:
		fmt.Fprintf(out, "%s unlocked\n", partID)
	}
	return nil
}

func newPurchaseCmd(a *app) *cobra.Command {
	var (
		price int
		wear  bool
	)

	cmd := &cobra.Command{
		Use:   "purchase <category> <part>",
		Short: "Buy a part with credits",
		Long: "Buy a part with credits. Premium parts cannot be bought. An XP-gated\n" +
			"part whose threshold is met is unlocked without charge.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var override *int
			if cmd.Flags().Changed("price") {
				override = &price
			}
			return a.acquire(cmd, args[0], args[1], wear, func(u *userSession) (types.EntitlementRecord, error) {
				return u.session.Purchase(args[0], args[1], override)
			})
		},
	}
	cmd.Flags().IntVar(&price, "price", 0, "charge this price instead of the catalog price")
	cmd.Flags().BoolVar(&wear, "wear", false, "select the part after acquiring it")
	return cmd
}

func newUnlockCmd(a *app) *cobra.Command {
	var wear bool

	cmd := &cobra.Command{
		Use:   "unlock <category> <part>",
		Short: "Permanently unlock a free part or an XP part whose threshold is met",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.acquire(cmd, args[0], args[1], wear, func(u *userSession) (types.EntitlementRecord, error) {
				return u.session.Unlock(args[0], args[1])
			})
		},
	}
	cmd.Flags().BoolVar(&wear, "wear", false, "select the part after unlocking it")
	return cmd
}
