package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(
		a.cartShowCmd(),
		a.cartAddCmd(),
		a.cartSetCmd(),
		a.cartRemoveCmd(),
		a.cartClearCmd(),
	)
	return cmd
}

func (a *app) cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart contents and totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := a.cart.Items()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tLINE TOTAL")
			for _, item := range items {
				line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
					item.ID, item.Name, item.Price.StringFixed(2), item.Quantity, line.StringFixed(2))
			}
			w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "%d items, total %s\n",
				a.cart.TotalQuantity(), a.cart.TotalAmount().StringFixed(2))
			return nil
		},
	}
}

func (a *app) cartAddCmd() *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if err := a.catalog.FetchByID(cmd.Context(), id); err != nil {
				return err
			}
			product := a.catalog.State().Selected
			if product == nil {
				return fmt.Errorf("product %d not found", id)
			}

			clamped, err := a.cart.Add(*product, qty)
			if err != nil {
				return err
			}
			if clamped {
				fmt.Fprintf(cmd.OutOrStdout(), "Only %d in stock, quantity adjusted\n", product.StockQuantity)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s, cart now holds %d items\n",
				product.Name, a.cart.TotalQuantity())
			return a.saveCart(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&qty, "quantity", "q", 1, "units to add")
	return cmd
}

func (a *app) cartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			clamped, err := a.cart.UpdateQuantity(id, qty)
			if err != nil {
				return err
			}
			if clamped {
				fmt.Fprintln(cmd.OutOrStdout(), "Quantity adjusted to available stock")
			}
			return a.saveCart(cmd.Context())
		},
	}
}

func (a *app) cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <product-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			a.cart.Remove(id)
			return a.saveCart(cmd.Context())
		},
	}
}

func (a *app) cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.cart.Clear()
			return a.saveCart(cmd.Context())
		},
	}
}
