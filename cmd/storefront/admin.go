package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/otomarket/storefront-client/pkg/types"
)

func (a *app) adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin console",
	}
	cmd.AddCommand(
		a.adminOrdersCmd(),
		a.adminStatusCmd(),
		a.adminDashboardCmd(),
		a.adminReportsCmd(),
		a.adminSettingsCmd(),
	)
	return cmd
}

func (a *app) adminOrdersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List every order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(true, "/admin/orders"); err != nil {
				return err
			}
			if err := a.orders.FetchAll(cmd.Context()); err != nil {
				return err
			}
			printOrders(cmd, a.orders.State().Orders)
			return nil
		},
	}
}

func (a *app) adminStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Transition an order's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(true, "/admin/orders"); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			if err := a.orders.UpdateStatus(cmd.Context(), id, types.OrderStatus(args[1])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %d is now %s\n", id, args[1])
			return nil
		},
	}
}

func (a *app) adminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the admin dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(true, "/admin"); err != nil {
				return err
			}
			if err := a.dashboard.Fetch(cmd.Context()); err != nil {
				return err
			}

			st := a.dashboard.State()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Products: %d  Orders: %d  Users: %d  Revenue: %s\n",
				st.Stats.TotalProducts, st.Stats.TotalOrders, st.Stats.TotalUsers,
				st.Stats.TotalRevenue.StringFixed(2))

			if len(st.RecentOrders) > 0 {
				fmt.Fprintln(out, "\nRecent orders:")
				printOrders(cmd, st.RecentOrders)
			}
			if len(st.LowStock) > 0 {
				fmt.Fprintln(out, "\nLow stock:")
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tSTOCK")
				for _, p := range st.LowStock {
					fmt.Fprintf(w, "%d\t%s\t%d\n", p.ID, p.Name, p.StockQuantity)
				}
				w.Flush()
			}
			return nil
		},
	}
}

func (a *app) adminReportsCmd() *cobra.Command {
	var rng string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Show sales reports for a date range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(true, "/admin/reports"); err != nil {
				return err
			}
			if err := a.reports.SetRange(cmd.Context(), types.DateRange(rng)); err != nil {
				return err
			}

			st := a.reports.State()
			out := cmd.OutOrStdout()
			if st.Sales != nil {
				fmt.Fprintf(out, "Sales (%s): %s across %d orders, %d items\n",
					st.Range, st.Sales.TotalSales.StringFixed(2), st.Sales.OrderCount, st.Sales.ItemsSold)
			}
			if len(st.TopProducts) > 0 {
				fmt.Fprintln(out, "\nTop products:")
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tUNITS\tREVENUE")
				for _, p := range st.TopProducts {
					fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, p.UnitsSold, p.Revenue.StringFixed(2))
				}
				w.Flush()
			}
			if len(st.TopCustomers) > 0 {
				fmt.Fprintln(out, "\nTop customers:")
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAME\tORDERS\tSPENT")
				for _, c := range st.TopCustomers {
					fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, c.OrderCount, c.TotalSpent.StringFixed(2))
				}
				w.Flush()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&rng, "range", string(types.RangeMonth), "week, month, quarter or year")
	return cmd
}

func (a *app) adminSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show store settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireAuth(true, "/admin/settings"); err != nil {
				return err
			}
			if err := a.settings.Fetch(cmd.Context()); err != nil {
				return err
			}

			st := a.settings.State()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Site:      %s\n", st.Settings.SiteName)
			fmt.Fprintf(out, "Company:   %s\n", st.Settings.CompanyName)
			fmt.Fprintf(out, "Shipping:  flat %s, free above %s\n",
				st.Settings.ShippingFlatRate.StringFixed(2), st.Settings.FreeShippingAbove.StringFixed(2))
			fmt.Fprintf(out, "Tax rate:  %s\n", st.Settings.TaxRate.String())
			fmt.Fprintf(out, "Payments:  cash on delivery=%v, bank transfer=%v\n",
				st.Settings.CashOnDelivery, st.Settings.BankTransfer)
			return nil
		},
	}
}
