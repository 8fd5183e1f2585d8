package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fekuna/ecoscan/internal/ui"
	"github.com/spf13/cobra"
)

func newCartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show your cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withCart(cmd.Context(), nil)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show your cart",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withCart(cmd.Context(), nil)
			},
		},
		&cobra.Command{
			Use:   "add <code>",
			Short: "Add the product with this barcode to the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				cat, err := a.openCatalog(ctx)
				if err != nil {
					return err
				}
				product, err := cat.FindByCode(ctx, args[0])
				if err != nil {
					return err
				}
				if product == nil {
					return fmt.Errorf("no product with code %q", args[0])
				}
				return a.withCart(ctx, func() {
					_, _ = a.cart.Add(ctx, *product)
				})
			},
		},
		&cobra.Command{
			Use:   "update <cart-item-id> <quantity>",
			Short: "Change the quantity of a cart line",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				qty, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("quantity must be a whole number: %w", err)
				}
				ctx := cmd.Context()
				return a.withCart(ctx, func() {
					_ = a.cart.UpdateQuantity(ctx, args[0], qty)
				})
			},
		},
		&cobra.Command{
			Use:   "remove <product-id>",
			Short: "Remove a product from the cart",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				return a.withCart(ctx, func() {
					_ = a.cart.Remove(ctx, args[0])
				})
			},
		},
	)
	return cmd
}

// withCart loads the cart, applies mutate when the load succeeded and prints
// the resulting view. Failed requests show up in the view rather than as
// command errors.
func (a *app) withCart(ctx context.Context, mutate func()) error {
	ok, err := a.loggedIn(ctx)
	if err != nil || !ok {
		return err
	}
	if err := a.cart.Load(ctx); err == nil && mutate != nil {
		mutate()
	}
	a.print(ui.CartView(a.styles, a.cart.View()))
	return nil
}
