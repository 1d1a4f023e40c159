package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/raushankrgupta/shoplungu/catalog"
	"github.com/raushankrgupta/shoplungu/models"
	"github.com/raushankrgupta/shoplungu/pipeline"
	"github.com/raushankrgupta/shoplungu/utils"
	"github.com/spf13/cobra"
)

var (
	searchCategory string
	searchLimit    int

	listCollection string
	listFilter     pipeline.FilterSpec
	listMinPrice   float64
	listMaxPrice   float64
	listSort       string
	listPage       int
	listPageSize   int
)

// searchCmd runs the storefront search
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search products by name, brand or category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return printProducts(cmd.OutOrStdout(), products.Search(query, searchCategory, searchLimit))
	},
}

// listCmd runs a filtered, sorted and paginated listing
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with filters, sorting and paging",
	Long: `List products with filters, sorting and paging.

Filters combine with AND across flags and OR within one flag, e.g.
  catalog list --collection men --size M --size L --sort price-low`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all := products.Products()
		if listCollection != "" {
			var ok bool
			if _, all, ok = products.Collection(listCollection); !ok {
				return fmt.Errorf("unknown collection %q", listCollection)
			}
		}

		filter := listFilter
		if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
			filter.PriceRange = &pipeline.PriceRange{Min: listMinPrice, Max: math.MaxFloat64}
			if cmd.Flags().Changed("max-price") {
				filter.PriceRange.Max = listMaxPrice
			}
		}
		if err := filter.Validate(); err != nil {
			return err
		}
		sortKey, err := pipeline.ParseSortKey(listSort)
		if err != nil {
			return err
		}

		page := pipeline.Run(all, pipeline.Query{Filter: filter, Sort: sortKey, Page: listPage, PageSize: listPageSize})
		if asJSON {
			return printJSON(cmd.OutOrStdout(), page)
		}
		if err := printProducts(cmd.OutOrStdout(), page.Items); err != nil {
			return err
		}
		if page.TotalPages > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d of %d (%d products)\n", page.Page, page.TotalPages, page.Total)
		}
		return nil
	},
}

// showCmd prints one product
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a product and its related products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, ok := products.Product(args[0])
		if !ok {
			return fmt.Errorf("product %s not found", args[0])
		}
		related := products.Related(p.ID, 4)
		if asJSON {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"product": p, "related": related})
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s  %s\n", p.ID, p.Name)
		fmt.Fprintf(w, "Brand:    %s\n", p.Brand)
		fmt.Fprintf(w, "Category: %s\n", p.Category)
		fmt.Fprintf(w, "Price:    %s", utils.FormatPrice(p.Price))
		if p.OriginalPrice != nil {
			fmt.Fprintf(w, " (was %s, %d%% off)", utils.FormatPrice(*p.OriginalPrice), utils.CalculateDiscount(*p.OriginalPrice, p.Price))
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Rating:   %.1f (%d reviews)\n", p.Rating, p.Reviews)
		fmt.Fprintf(w, "Sizes:    %s\n", strings.Join(p.Sizes, ", "))
		fmt.Fprintf(w, "Colors:   %s\n", strings.Join(p.Colors, ", "))
		fmt.Fprintf(w, "In stock: %t\n", p.InStock)
		if d := catalog.PlainDescription(p); d != "" {
			fmt.Fprintf(w, "\n%s\n", d)
		}
		if len(related) > 0 {
			fmt.Fprintln(w, "\nRelated:")
			return printProducts(w, related)
		}
		return nil
	},
}

// categoriesCmd prints the category tree
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		if asJSON {
			return printJSON(cmd.OutOrStdout(), products.Categories())
		}
		w := cmd.OutOrStdout()
		for _, c := range products.Categories() {
			if c.Parent != "" {
				continue
			}
			fmt.Fprintf(w, "%s (%s)\n", c.Name, c.Slug)
			for _, child := range products.Children(c.Slug) {
				fmt.Fprintf(w, "  %s (%s)\n", child.Name, child.Slug)
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "Only categories containing this text")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum results (0 for all)")

	listCmd.Flags().StringVar(&listCollection, "collection", "", "Category landing page to list, e.g. men")
	listCmd.Flags().StringSliceVar(&listFilter.Categories, "category", nil, "Category slug (repeatable)")
	listCmd.Flags().StringSliceVar(&listFilter.Brands, "brand", nil, "Brand (repeatable)")
	listCmd.Flags().StringSliceVar(&listFilter.Sizes, "size", nil, "Size (repeatable)")
	listCmd.Flags().StringSliceVar(&listFilter.Colors, "color", nil, "Color (repeatable)")
	listCmd.Flags().BoolVar(&listFilter.InStockOnly, "in-stock", false, "Only products in stock")
	listCmd.Flags().Float64Var(&listMinPrice, "min-price", 0, "Minimum price")
	listCmd.Flags().Float64Var(&listMaxPrice, "max-price", 0, "Maximum price (no limit when unset)")
	listCmd.Flags().StringVar(&listSort, "sort", string(pipeline.SortNewest), "newest, price-low, price-high, rating or name")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", pipeline.DefaultPageSize, "Products per page")
}

func printProducts(w io.Writer, items []models.Product) error {
	if asJSON {
		return printJSON(w, items)
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No products found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tRATING\tSTOCK")
	for _, p := range items {
		stock := "yes"
		if !p.InStock {
			stock = "no"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.1f\t%s\n", p.ID, p.Name, p.Brand, p.Category, utils.FormatPrice(p.Price), p.Rating, stock)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
