package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

type partView struct {
	ID         string        `json:"id"`
	Name       string        `json:"name,omitempty"`
	Class      string        `json:"class"`
	XPRequired int           `json:"xp_required,omitempty"`
	Price      int           `json:"price,omitempty"`
	Owned      bool          `json:"owned"`
	Selected   bool          `json:"selected"`
	Verdict    types.Verdict `json:"verdict"`
}

type categoryView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Layer       string     `json:"layer"`
	Optional    bool       `json:"optional"`
	Colorizable bool       `json:"colorizable"`
	Parts       []partView `json:"parts"`
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [category]",
		Short: "List categories and parts with the user's access to each",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.openSession()
			if err != nil {
				return err
			}
			defer u.close()

			categories := u.catalog.Categories()
			if len(args) == 1 {
				c, ok := u.catalog.FindCategory(args[0])
				if !ok {
					return fmt.Errorf("%w: %q", types.ErrCategoryNotFound, args[0])
				}
				categories = []types.Category{c}
			}

			record := u.session.Record()
			sel := u.session.Selection()
			views := make([]categoryView, 0, len(categories))
			for _, c := range categories {
				verdicts, err := u.session.Parts(c.ID)
				if err != nil {
					return err
				}
				cv := categoryView{
					ID:          c.ID,
					Name:        c.Name,
					Layer:       c.Layer,
					Optional:    c.Optional,
					Colorizable: c.Colorizable,
				}
				for _, pv := range verdicts {
					cv.Parts = append(cv.Parts, partView{
						ID:         pv.Part.ID,
						Name:       pv.Part.Name,
						Class:      pv.Part.Classification(),
						XPRequired: pv.Part.XPRequired,
						Price:      pv.Part.Price,
						Owned:      record.Owns(pv.Part.ID),
						Selected:   sel[c.ID].PartID == pv.Part.ID,
						Verdict:    pv.Verdict,
					})
				}
				views = append(views, cv)
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, views)
			}
			for _, cv := range views {
				fmt.Fprintf(out, "%s (%s)", cv.ID, cv.Layer)
				if cv.Optional {
					fmt.Fprint(out, " optional")
				}
				if cv.Colorizable {
					fmt.Fprint(out, " colorizable")
				}
				fmt.Fprintln(out)
				for _, p := range cv.Parts {
					mark := " "
					if p.Selected {
						mark = "*"
					}
					fmt.Fprintf(out, "  %s %-10s %-8s %s", mark, p.ID, p.Class, p.Verdict)
					if p.Price > 0 {
						fmt.Fprintf(out, "  price=%d", p.Price)
					}
					if p.Owned {
						fmt.Fprint(out, "  owned")
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
}
