package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/otomarket/storefront-client/internal/catalog"
	"github.com/otomarket/storefront-client/pkg/types"
)

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}
	cmd.AddCommand(
		a.productsListCmd(),
		a.productsSearchCmd(),
		a.productsFilterCmd(),
		a.productsShowCmd(),
	)
	return cmd
}

func (a *app) productsListCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products one page at a time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.catalog.Fetch(cmd.Context(), page, a.cfg.API.PageSize); err != nil {
				return err
			}
			a.printCatalogPage(cmd)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func (a *app) productsSearchCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.catalog.Search(cmd.Context(), args[0], page, a.cfg.API.PageSize); err != nil {
				return err
			}
			a.printCatalogPage(cmd)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func (a *app) productsFilterCmd() *cobra.Command {
	var (
		page     int
		category int
		minPrice string
		maxPrice string
		inStock  bool
		featured bool
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter products by category, price, stock or featured flag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := types.ProductFilter{
				CategoryID: category,
				InStock:    inStock,
				Featured:   featured,
			}
			if minPrice != "" {
				v, err := decimal.NewFromString(minPrice)
				if err != nil {
					return fmt.Errorf("invalid --min-price: %w", err)
				}
				filter.MinPrice = &v
			}
			if maxPrice != "" {
				v, err := decimal.NewFromString(maxPrice)
				if err != nil {
					return fmt.Errorf("invalid --max-price: %w", err)
				}
				filter.MaxPrice = &v
			}

			if err := a.catalog.Filter(cmd.Context(), filter, page, a.cfg.API.PageSize); err != nil {
				return err
			}
			a.printCatalogPage(cmd)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&category, "category", 0, "category id")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "minimum price")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "maximum price")
	cmd.Flags().BoolVar(&inStock, "in-stock", false, "only products in stock")
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured products")
	return cmd
}

func (a *app) productsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if err := a.catalog.FetchByID(cmd.Context(), id); err != nil {
				return err
			}

			p := a.catalog.State().Selected
			if p == nil {
				return fmt.Errorf("product %d not found", id)
			}
			out := cmd.OutOrStdout()
			authenticated := a.session.State().IsAuthenticated
			fmt.Fprintf(out, "%s (#%d)\n", p.Name, p.ID)
			fmt.Fprintf(out, "  Price:    %s\n", catalog.PriceLabel(*p, authenticated))
			fmt.Fprintf(out, "  Category: %s\n", p.CategoryName)
			fmt.Fprintf(out, "  Stock:    %d\n", p.StockQuantity)
			if p.Description != "" {
				fmt.Fprintf(out, "  %s\n", p.Description)
			}
			return nil
		},
	}
}

func (a *app) printCatalogPage(cmd *cobra.Command) {
	st := a.catalog.State()
	authenticated := a.session.State().IsAuthenticated

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range st.Products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ID, p.Name, catalog.PriceLabel(p, authenticated), p.StockQuantity)
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d products)\n",
		st.Pagination.CurrentPage, st.Pagination.TotalPages, st.Pagination.TotalItems)
}
