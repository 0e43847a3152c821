package app

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/metrics"
	"github.com/blackwell-systems/sentimeter/internal/output"
	"github.com/blackwell-systems/sentimeter/internal/store"
)

var (
	analyticsProduct     int64
	analyticsMetricsFile string
	analyticsIssues      bool
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Per-product sentiment summary",
	Long: `Aggregate stored feedback into per-product analytics. Legacy and weighted
records are normalized onto one 0-100 scale; records that fail validation
are excluded and counted as invalid.

With --metrics-file the results are also written as Prometheus gauges in the
node exporter textfile format.`,
	Args: cobra.NoArgs,
	RunE: runAnalytics,
}

func init() {
	analyticsCmd.Flags().Int64Var(&analyticsProduct, "product", 0, "Only this product ID")
	analyticsCmd.Flags().StringVar(&analyticsMetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	analyticsCmd.Flags().BoolVar(&analyticsIssues, "issues", false, "List records excluded from aggregation")
	rootCmd.AddCommand(analyticsCmd)
}

// buildReport aggregates the selected products (all when productID is 0).
func buildReport(ctx context.Context, e *env, productID int64) ([]analytics.ProductAnalytics, error) {
	var products []store.Product
	if productID > 0 {
		p, err := e.db.GetProduct(productID)
		if err != nil {
			return nil, err
		}
		products = []store.Product{*p}
	} else {
		var err error
		products, err = e.db.ListProducts()
		if err != nil {
			return nil, fmt.Errorf("listing products: %w", err)
		}
	}

	targets := make([]analytics.Product, len(products))
	for i, p := range products {
		targets[i] = analytics.Product{ID: p.ID, Name: p.Name}
	}
	load := func(_ context.Context, id int64) ([]feedback.Record, error) {
		return e.db.ListFeedback(id)
	}
	report, err := analytics.Report(ctx, targets, load, e.cfg.Analytics.Workers)
	if err != nil {
		return nil, err
	}
	for _, a := range report {
		if a.InvalidRecords > 0 {
			e.log.Warn("invalid feedback records excluded",
				zap.Int64("product_id", a.ProductID),
				zap.Int("count", a.InvalidRecords),
			)
		}
	}
	return report, nil
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	report, err := buildReport(cmd.Context(), e, analyticsProduct)
	if err != nil {
		return err
	}

	if analyticsMetricsFile != "" {
		c := metrics.New()
		for _, a := range report {
			c.Observe(a)
		}
		if err := c.WriteTextfile(analyticsMetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		e.log.Info("metrics written", zap.String("path", analyticsMetricsFile), zap.Int("products", len(report)))
	}

	if flagJSON {
		if report == nil {
			report = []analytics.ProductAnalytics{}
		}
		return writeJSON(cmd.OutOrStdout(), report)
	}
	renderAnalytics(cmd.OutOrStdout(), report, analyticsIssues)
	return nil
}

func renderAnalytics(w io.Writer, report []analytics.ProductAnalytics, issues bool) {
	if len(report) == 0 {
		fmt.Fprintln(w, " No products yet.")
		return
	}

	for _, a := range report {
		fmt.Fprintln(w, output.Section(fmt.Sprintf("%s (#%d)", a.ProductName, a.ProductID)))
		fmt.Fprintln(w, output.KeyValue("Feedback", strconv.Itoa(a.TotalFeedback)))
		if a.TotalFeedback > 0 {
			fmt.Fprintln(w, output.KeyValue("Average sentiment", output.ScoreBar(a.AverageSentimentScore, 0)))
			fmt.Fprintln(w, output.KeyValue("Positive", fmt.Sprintf("%.1f%%", a.PositivePercentage)))
			fmt.Fprintln(w, output.KeyValue("Breakdown", fmt.Sprintf("%s %d  %s %d  %s %d",
				output.StyleSuccess.Render("▲"), a.SentimentCounts.Positive,
				output.StyleWarning.Render("●"), a.SentimentCounts.Neutral,
				output.StyleError.Render("▼"), a.SentimentCounts.Negative)))
			fmt.Fprintln(w, output.KeyValue("Schemas", fmt.Sprintf("weighted %d  legacy %d",
				a.SchemaCounts.Weighted, a.SchemaCounts.Legacy)))
		}
		if n := a.NPS.Promoters + a.NPS.Passives + a.NPS.Detractors; n > 0 {
			fmt.Fprintln(w, output.KeyValue("NPS", fmt.Sprintf("%+.0f (%d promoters, %d passives, %d detractors)",
				a.NPS.Score, a.NPS.Promoters, a.NPS.Passives, a.NPS.Detractors)))
		}
		if a.InvalidRecords > 0 {
			fmt.Fprintln(w, output.KeyValue("Invalid records", output.StyleError.Render(strconv.Itoa(a.InvalidRecords))))
			if issues {
				for _, is := range a.Issues {
					fmt.Fprintf(w, "   %s: %s\n", is.RecordID, is.Reason)
				}
			}
		}
	}
	fmt.Fprintln(w)
}
