package main

import (
	"fmt"

	"github.com/fekuna/ecoscan/internal/catalog/repository"
	"github.com/fekuna/ecoscan/internal/model"
	"github.com/fekuna/ecoscan/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or seed the product catalog",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List known products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			products, err := cat.List(cmd.Context())
			if err != nil {
				return err
			}
			a.print(ui.CatalogList(a.styles, products))
			return nil
		},
	}

	var from string
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load products into the sqlite catalog at CATALOG_PATH",
		Long: `Loads the built-in product table, or the products of a YAML file given with
--from, into the sqlite catalog. Existing products with the same id are updated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products := repository.DefaultProducts()
			if from != "" {
				var err error
				if products, err = repository.LoadYAML(from); err != nil {
					return err
				}
			}
			return a.seedCatalog(cmd, products)
		},
	}
	seed.Flags().StringVar(&from, "from", "", "YAML file with a products list")

	cmd.AddCommand(list, seed)
	return cmd
}

func (a *app) seedCatalog(cmd *cobra.Command, products []model.Product) error {
	repo, err := a.openSQLCatalog(cmd.Context())
	if err != nil {
		return err
	}
	if err := repo.Seed(cmd.Context(), products); err != nil {
		return err
	}
	a.logger.Info("Seeded catalog", zap.Int("products", len(products)), zap.String("path", a.cfg.Catalog.Path))
	fmt.Fprintf(a.out, "Seeded %d products into %s\n", len(products), a.cfg.Catalog.Path)
	return nil
}
