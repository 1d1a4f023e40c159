// Command catalog browses the storefront catalog from the terminal
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/raushankrgupta/shoplungu/catalog"
	"github.com/raushankrgupta/shoplungu/config"
	"github.com/raushankrgupta/shoplungu/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	source   string
	verbose  bool
	asJSON   bool
	timeout  time.Duration
	logger   *zap.Logger
	products *catalog.Catalog
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse the ShopLungu product catalog",
	Long: `Browse the ShopLungu product catalog.

The catalog is read from --source: empty for the built-in catalog, a local
JSON or YAML file, or an s3://bucket/key object.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadConfig()

		level := config.LogLevel
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = utils.NewLogger(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if source == "" {
			source = config.CatalogSource
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		products, err = catalog.Load(ctx, source)
		if err != nil {
			return err
		}
		logger.Debug("Catalog loaded", zap.String("source", source), zap.Int("products", len(products.Products())))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&source, "source", "s", "", "Catalog location (default: CATALOG_SOURCE or built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Catalog load timeout")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
