package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/otomarket/storefront-client/pkg/types"
)

func (a *app) checkoutCmd() *cobra.Command {
	var (
		address string
		payment string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Turn the cart into an order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(false, "/checkout"); err != nil {
				return err
			}

			draft := types.OrderDraft{
				ShippingAddress: address,
				PaymentMethod:   payment,
				Notes:           notes,
				OrderItems:      a.cart.OrderItems(),
			}
			order, err := a.orders.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			if err := a.saveCart(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Order %s placed, total %s\n",
				order.OrderNumber, order.TotalAmount.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "shipping address")
	cmd.Flags().StringVar(&payment, "payment", "cashOnDelivery", "payment method")
	cmd.Flags().StringVar(&notes, "notes", "", "order notes")
	return cmd
}

func (a *app) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View your orders",
	}
	cmd.AddCommand(a.ordersListCmd(), a.ordersShowCmd())
	return cmd
}

func (a *app) ordersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(false, "/orders"); err != nil {
				return err
			}
			if err := a.orders.FetchMine(cmd.Context()); err != nil {
				return err
			}
			printOrders(cmd, a.orders.State().UserOrders)
			return nil
		},
	}
}

func (a *app) ordersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(false, "/orders"); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			if err := a.orders.FetchByID(cmd.Context(), id); err != nil {
				return err
			}

			order := a.orders.State().CurrentOrder
			if order == nil {
				return fmt.Errorf("order %d not found", id)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", order.OrderNumber, order.Status)
			fmt.Fprintf(out, "  Placed:   %s\n", order.OrderDate.Format("2006-01-02"))
			fmt.Fprintf(out, "  Ship to:  %s\n", order.ShippingAddress)
			for _, item := range order.OrderItems {
				name := fmt.Sprintf("product %d", item.ProductID)
				if item.Product != nil {
					name = item.Product.Name
				}
				fmt.Fprintf(out, "  %d x %s @ %s\n", item.Quantity, name, item.Price.StringFixed(2))
			}
			fmt.Fprintf(out, "  Total:    %s\n", order.TotalAmount.StringFixed(2))
			return nil
		},
	}
}

func printOrders(cmd *cobra.Command, list []types.Order) {
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No orders")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tDATE\tSTATUS\tTOTAL")
	for _, o := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			o.ID, o.OrderNumber, o.OrderDate.Format("2006-01-02"), o.Status, o.TotalAmount.StringFixed(2))
	}
	w.Flush()
}
