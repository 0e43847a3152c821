package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	submitProduct int64
	submitAnswers answerFlags
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Score and store a new piece of feedback",
	Long: `Score a feedback submission and store it against a product.

By default the categorical answers (--satisfaction, --quality, --value,
--recommend, --improvements, --usage) are scored with the weighted score map.
With --legacy the free-text fields are scored with the word lexicon instead.`,
	Example: `  sentimeter submit --product 1 --satisfaction "Very Satisfied" --quality Good
  sentimeter submit --product 1 --legacy --satisfaction "love it" --likes "battery life"`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().Int64Var(&submitProduct, "product", 0, "Product ID")
	submitAnswers.bind(submitCmd)
	_ = submitCmd.MarkFlagRequired("product")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if submitAnswers.satisfaction == "" {
		return errors.New("a satisfaction answer is required")
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	if _, err := e.db.GetProduct(submitProduct); err != nil {
		return err
	}

	r, err := e.engine.Submit(cmd.Context(), submitAnswers.submission(submitProduct))
	if err != nil {
		return err
	}
	if err := e.db.InsertFeedback(&r); err != nil {
		return fmt.Errorf("storing feedback: %w", err)
	}
	e.log.Info("feedback submitted",
		zap.String("id", string(r.ID)),
		zap.Int64("product_id", r.ProductID),
		zap.String("schema", string(r.Schema())),
	)

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	fmt.Fprintf(cmd.OutOrStdout(), " Stored feedback %s for product %d\n\n", r.ID, r.ProductID)
	renderResult(cmd.OutOrStdout(), r)
	return nil
}
