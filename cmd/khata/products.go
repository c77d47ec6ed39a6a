package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/khataflow/khataflow/internal/cli"
	"github.com/khataflow/khataflow/internal/model"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalog",
		Long: `The product catalog lets notes use quantity shorthand: with "Milk" at
unit price 25, the note "Sold 2 milk to Priya" resolves to 50.`,
	}

	cmd.AddCommand(addProductCmd())
	cmd.AddCommand(listProductsCmd())
	cmd.AddCommand(deleteProductCmd())

	return cmd
}

func addProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a product to the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			priceFlag, _ := cmd.Flags().GetString("price")
			price, err := parseAmount(priceFlag, "unit price")
			if err != nil {
				return err
			}
			if !price.IsPositive() {
				return fmt.Errorf("unit price must be positive, got %s", price)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			product := &model.Product{
				ID:        uuid.NewString(),
				Name:      args[0],
				UnitPrice: price,
			}

			if err := store.CreateProduct(ctx, product); err != nil {
				return fmt.Errorf("failed to save product: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ Product added: %s @ %s", product.Name, price)))
			return nil
		},
	}

	cmd.Flags().String("price", "", "unit price (required)")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func listProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			products, err := store.ListProducts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			if len(products) == 0 {
				fmt.Println(cli.InfoStyle.Render("No products in the catalog."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintln(w, "NAME\tUNIT PRICE\tID")
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 16), strings.Repeat("-", 10), strings.Repeat("-", 36))

			for i := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\n", products[i].Name, products[i].UnitPrice, products[i].ID)
			}
			return nil
		},
	}
}

func deleteProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <product-id>",
		Short: "Remove a product from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteProduct(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}

			fmt.Println(cli.SuccessStyle.Render("✓ Product deleted"))
			return nil
		},
	}
}
