package main

import (
	"errors"
	"fmt"

	"github.com/fekuna/ecoscan/internal/compare"
	"github.com/fekuna/ecoscan/internal/ui"
	"github.com/spf13/cobra"
)

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [product-id...]",
		Short: "Compare two products from your cart",
		Long: `Selects products from your cart by id, in order, and prints them side by side.
The cheaper price and the better sustainability score are highlighted.
Naming a product twice deselects it; only two can be compared at a time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ok, err := a.loggedIn(ctx)
			if err != nil || !ok {
				return err
			}
			if err := a.cart.Load(ctx); err != nil {
				a.print(ui.CartView(a.styles, a.cart.View()))
				return nil
			}

			view := compare.NewView(a.cart)
			for _, id := range args {
				if err := view.Toggle(id); err != nil {
					if !errors.Is(err, compare.ErrSelectionFull) {
						return err
					}
					fmt.Fprintln(a.out, a.styles.Notice.Render(view.Notice()))
				}
			}

			a.print(ui.CompareCandidates(a.styles, view.Candidates(), view.IsSelected))
			a.print("\n" + ui.ComparisonTable(a.styles, view.Render()))
			return nil
		},
	}
}
