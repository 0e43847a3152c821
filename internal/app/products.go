package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/output"
	"github.com/blackwell-systems/sentimeter/internal/store"
)

var (
	productName        string
	productDescription string
	productImage       string
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"product"},
	Short:   "Manage the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List products",
	Args:    cobra.NoArgs,
	RunE:    runProductsList,
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Args:  cobra.NoArgs,
	RunE:  runProductsAdd,
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a product's name, description, or image",
	Args:  cobra.ExactArgs(1),
	RunE:  runProductsUpdate,
}

var productsRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Remove a product and all of its feedback",
	Args:    cobra.ExactArgs(1),
	RunE:    runProductsRm,
}

func init() {
	for _, c := range []*cobra.Command{productsAddCmd, productsUpdateCmd} {
		c.Flags().StringVar(&productName, "name", "", "Product name")
		c.Flags().StringVar(&productDescription, "description", "", "Product description")
		c.Flags().StringVar(&productImage, "image", "", "Product image or emoji")
	}
	_ = productsAddCmd.MarkFlagRequired("name")
	_ = productsAddCmd.MarkFlagRequired("description")

	productsCmd.AddCommand(productsListCmd, productsAddCmd, productsUpdateCmd, productsRmCmd)
	rootCmd.AddCommand(productsCmd)
}

func parseProductID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}

func runProductsList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	products, err := e.db.ListProducts()
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}

	if flagJSON {
		if products == nil {
			products = []store.Product{}
		}
		return writeJSON(cmd.OutOrStdout(), products)
	}

	if len(products) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), " No products yet. Add one with 'sentimeter products add'.")
		return nil
	}

	tbl := output.NewTable("ID", "", "Name", "Description")
	for _, p := range products {
		tbl.AddRow(strconv.FormatInt(p.ID, 10), p.Image, p.Name, p.Description)
	}
	tbl.Print(cmd.OutOrStdout())
	return nil
}

func runProductsAdd(cmd *cobra.Command, args []string) error {
	if productName == "" || productDescription == "" {
		return errors.New("product name and description are required")
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.db.CreateProduct(productName, productDescription, productImage)
	if err != nil {
		return fmt.Errorf("creating product: %w", err)
	}
	e.log.Info("product created", zap.Int64("id", p.ID), zap.String("name", p.Name))

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s Added product %d: %s\n", p.Image, p.ID, output.StyleBold.Render(p.Name))
	return nil
}

func runProductsUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	p, err := e.db.UpdateProduct(id, productName, productDescription, productImage)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	e.log.Info("product updated", zap.Int64("id", p.ID))

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), p)
	}
	fmt.Fprintf(cmd.OutOrStdout(), " %s Updated product %d: %s\n", p.Image, p.ID, output.StyleBold.Render(p.Name))
	return nil
}

func runProductsRm(cmd *cobra.Command, args []string) error {
	id, err := parseProductID(args[0])
	if err != nil {
		return err
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	removed, err := e.db.ListFeedback(id)
	if err != nil {
		return fmt.Errorf("counting feedback: %w", err)
	}
	p, err := e.db.DeleteProduct(id)
	if err != nil {
		return fmt.Errorf("removing product: %w", err)
	}
	e.log.Info("product removed", zap.Int64("id", p.ID), zap.Int("feedback_removed", len(removed)))

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), map[string]any{"product": p, "feedbackRemoved": len(removed)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), " Removed product %d (%s) and %d feedback record(s)\n", p.ID, p.Name, len(removed))
	return nil
}
