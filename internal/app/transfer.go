package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/store"
)

var (
	transferProducts string
	transferFeedback string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load products.json / feedback.json data files",
	Long: `Import products and feedback from JSON data files. Products keep their IDs
and are updated in place when they already exist. Feedback records are
stored exactly as read; records whose ID is already stored are skipped, as
are records for unknown products. A record that cannot be decoded is
counted as invalid and the rest of the file still loads.`,
	Example: `  sentimeter import --products data/products.json --feedback data/feedback.json`,
	Args:    cobra.NoArgs,
	RunE:    runImport,
}

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Write products.json / feedback.json data files",
	Example: `  sentimeter export --products out/products.json --feedback out/feedback.json`,
	Args:    cobra.NoArgs,
	RunE:    runExport,
}

func init() {
	for _, c := range []*cobra.Command{importCmd, exportCmd} {
		c.Flags().StringVar(&transferProducts, "products", "", "Products JSON file")
		c.Flags().StringVar(&transferFeedback, "feedback", "", "Feedback JSON file")
		c.MarkFlagsOneRequired("products", "feedback")
	}
	rootCmd.AddCommand(importCmd, exportCmd)
}

// importSummary is the JSON output of the import command.
type importSummary struct {
	Products int `json:"products"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Invalid  int `json:"invalid"`
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func runImport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	var summary importSummary
	if transferProducts != "" {
		var products []store.Product
		if err := readJSONFile(transferProducts, &products); err != nil {
			return err
		}
		for i := range products {
			p := &products[i]
			if p.ID <= 0 {
				return fmt.Errorf("product %q has invalid id %d", p.Name, p.ID)
			}
			if p.Image == "" {
				p.Image = store.DefaultProductImage
			}
			if err := e.db.UpsertProduct(p); err != nil {
				return fmt.Errorf("importing product %d: %w", p.ID, err)
			}
		}
		summary.Products = len(products)
	}

	if transferFeedback != "" {
		var raw []json.RawMessage
		if err := readJSONFile(transferFeedback, &raw); err != nil {
			return err
		}
		for i, item := range raw {
			var rec feedback.Record
			if err := json.Unmarshal(item, &rec); err != nil {
				e.log.Warn("skipping undecodable feedback record",
					zap.Int("index", i), zap.Error(err))
				summary.Invalid++
				continue
			}
			r := &rec
			if _, err := e.db.GetFeedback(r.ID); err == nil {
				summary.Skipped++
				continue
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if _, err := e.db.GetProduct(r.ProductID); err != nil {
				e.log.Warn("skipping feedback for unknown product",
					zap.String("id", string(r.ID)), zap.Int64("product_id", r.ProductID))
				summary.Skipped++
				continue
			}
			if err := e.db.InsertFeedback(r); err != nil {
				return fmt.Errorf("importing feedback %s: %w", r.ID, err)
			}
			summary.Imported++
		}
	}
	e.log.Info("import finished",
		zap.Int("products", summary.Products),
		zap.Int("imported", summary.Imported),
		zap.Int("skipped", summary.Skipped),
		zap.Int("invalid", summary.Invalid),
	)

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), summary)
	}
	fmt.Fprintf(cmd.OutOrStdout(), " Imported %d product(s) and %d feedback record(s), skipped %d, invalid %d\n",
		summary.Products, summary.Imported, summary.Skipped, summary.Invalid)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	if transferProducts != "" {
		products, err := e.db.ListProducts()
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}
		if products == nil {
			products = []store.Product{}
		}
		if err := writeJSONFile(transferProducts, products); err != nil {
			return fmt.Errorf("writing products: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), " Wrote %d product(s) to %s\n", len(products), transferProducts)
	}

	if transferFeedback != "" {
		records, err := e.db.ListAllFeedback()
		if err != nil {
			return fmt.Errorf("listing feedback: %w", err)
		}
		if records == nil {
			records = []feedback.Record{}
		}
		if err := writeJSONFile(transferFeedback, records); err != nil {
			return fmt.Errorf("writing feedback: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), " Wrote %d feedback record(s) to %s\n", len(records), transferFeedback)
	}
	return nil
}
