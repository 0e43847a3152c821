package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
	"github.com/blackwell-systems/sentimeter/internal/output"
	"github.com/blackwell-systems/sentimeter/internal/store"
)

var (
	trackCompare int
	trackHistory int
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Snapshot analytics and compare over time",
	Long: `Compute per-product analytics, store them as a new snapshot, and compare
against a previous snapshot to show deltas with trend arrows.`,
	Args: cobra.NoArgs,
	RunE: runTrack,
}

func init() {
	trackCmd.Flags().IntVar(&trackCompare, "compare", 1, "Compare against Nth previous snapshot (1 = most recent)")
	trackCmd.Flags().IntVar(&trackHistory, "history", 0, "Show average sentiment across N most recent snapshots instead")
	rootCmd.AddCommand(trackCmd)
}

// snapshotMetrics flattens one product's analytics into named values.
func snapshotMetrics(a analytics.ProductAnalytics) map[string]float64 {
	return map[string]float64{
		"total_feedback":          float64(a.TotalFeedback),
		"average_sentiment_score": a.AverageSentimentScore,
		"positive_percentage":     a.PositivePercentage,
		"positive":                float64(a.SentimentCounts.Positive),
		"neutral":                 float64(a.SentimentCounts.Neutral),
		"negative":                float64(a.SentimentCounts.Negative),
		"nps_score":               a.NPS.Score,
		"invalid_records":         float64(a.InvalidRecords),
	}
}

// metricShortName returns a compact label for display.
func metricShortName(name string) string {
	short := map[string]string{
		"total_feedback":          "Feedback",
		"average_sentiment_score": "Avg Sentiment",
		"positive_percentage":     "Positive %",
		"positive":                "Positive",
		"neutral":                 "Neutral",
		"negative":                "Negative",
		"nps_score":               "NPS",
		"invalid_records":         "Invalid",
	}
	if s, ok := short[name]; ok {
		return s
	}
	return name
}

func runTrack(cmd *cobra.Command, args []string) error {
	if trackCompare < 1 {
		return fmt.Errorf("--compare must be at least 1")
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	if trackHistory > 0 {
		return renderHistory(cmd.OutOrStdout(), e.db, trackHistory)
	}

	report, err := buildReport(cmd.Context(), e, 0)
	if err != nil {
		return err
	}

	snapshotID, err := e.db.CreateSnapshot("track", appVersion, e.scoreMap.Version())
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	names := make(map[int64]string, len(report))
	for _, a := range report {
		names[a.ProductID] = a.ProductName
		for name, value := range snapshotMetrics(a) {
			m := &store.ProductMetric{SnapshotID: snapshotID, ProductID: a.ProductID, MetricName: name, MetricValue: value}
			if err := e.db.InsertProductMetric(m); err != nil {
				return fmt.Errorf("inserting metric %s: %w", name, err)
			}
		}
	}
	e.log.Info("snapshot recorded", zap.Int64("snapshot_id", snapshotID), zap.Int("products", len(report)))

	current, err := e.db.GetSnapshotN(1)
	if err != nil {
		return fmt.Errorf("loading current snapshot: %w", err)
	}
	// The new snapshot is at offset 1, so the Nth previous is N+1.
	previous, err := e.db.GetSnapshotN(trackCompare + 1)
	if err != nil {
		return fmt.Errorf("loading previous snapshot: %w", err)
	}

	var diff *store.SnapshotDiff
	if previous != nil {
		diff, err = e.db.DiffSnapshots(previous, current)
		if err != nil {
			return fmt.Errorf("comparing snapshots: %w", err)
		}
	}

	if flagJSON {
		result := map[string]any{"snapshot": current}
		if diff != nil {
			result["diff"] = diff
		}
		return writeJSON(cmd.OutOrStdout(), result)
	}
	renderTrack(cmd.OutOrStdout(), current, diff, names)
	return nil
}

func renderTrack(w io.Writer, current *store.Snapshot, diff *store.SnapshotDiff, names map[int64]string) {
	fmt.Fprintln(w, output.Section("Track: Snapshot Comparison"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, " Snapshot #%d taken at %s (score map %s)\n\n",
		current.ID, current.TakenAt.Format("2006-01-02 15:04:05"), current.ScoreMap)

	if diff == nil {
		fmt.Fprintln(w, " First snapshot recorded. Run 'sentimeter track' again later to see trends.")
		return
	}

	fmt.Fprintf(w, " Comparing against snapshot #%d (%s)\n\n",
		diff.Previous.ID, diff.Previous.TakenAt.Format("2006-01-02 15:04:05"))
	if diff.Previous.ScoreMap != current.ScoreMap {
		fmt.Fprintf(w, " %s\n\n", output.StyleWarning.Render(fmt.Sprintf(
			"Score map changed from %s to %s; weighted deltas may reflect rescoring.",
			diff.Previous.ScoreMap, current.ScoreMap)))
	}

	tbl := output.NewTable("Product", "Metric", "Previous", "Current", "Trend").AlignRight(2, 3)
	for _, d := range diff.Deltas {
		product := names[d.ProductID]
		if product == "" {
			product = fmt.Sprintf("#%d", d.ProductID)
		}
		prev, trend := fmt.Sprintf("%.1f", d.Previous), output.TrendArrow(d.Delta, store.HigherIsBetter(d.Name))
		if d.Direction == "new" {
			prev, trend = "-", output.StyleMuted.Render("new")
		}
		tbl.AddRow(product, metricShortName(d.Name), prev, fmt.Sprintf("%.1f", d.Current), trend)
	}
	fmt.Fprint(w, indent(tbl.Render()))
}

// renderHistory shows average sentiment per product across snapshots.
func renderHistory(w io.Writer, db *store.DB, n int) error {
	snapshots, err := db.GetRecentSnapshots(n)
	if err != nil {
		return fmt.Errorf("loading snapshots: %w", err)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(w, " No snapshots found. Run 'sentimeter track' to create one.")
		return nil
	}

	// Reverse so oldest is first (left to right = chronological).
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	const metric = "average_sentiment_score"
	values := make(map[int64][]float64)
	var order []int64
	for idx, s := range snapshots {
		metrics, err := db.GetProductMetrics(s.ID)
		if err != nil {
			return fmt.Errorf("loading metrics for snapshot #%d: %w", s.ID, err)
		}
		for _, m := range metrics {
			if m.MetricName != metric {
				continue
			}
			if _, ok := values[m.ProductID]; !ok {
				order = append(order, m.ProductID)
				values[m.ProductID] = make([]float64, len(snapshots))
			}
			values[m.ProductID][idx] = m.MetricValue
		}
	}

	products, err := db.ListProducts()
	if err != nil {
		return fmt.Errorf("listing products: %w", err)
	}
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	if flagJSON {
		return writeJSON(w, map[string]any{"snapshots": snapshots, "averageSentiment": values})
	}

	fmt.Fprintln(w, output.Section("Track: Average Sentiment History"))
	fmt.Fprintln(w)

	headers := []string{"Product"}
	for _, s := range snapshots {
		headers = append(headers, fmt.Sprintf("#%d %s", s.ID, s.TakenAt.Format("Jan 02")))
	}
	headers = append(headers, "Trend")
	tbl := output.NewTable(headers...)

	for _, id := range order {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("#%d (removed)", id)
		}
		row := []string{name}
		vals := values[id]
		for _, v := range vals {
			row = append(row, fmt.Sprintf("%.1f", v))
		}
		trend := ""
		if len(vals) >= 2 {
			trend = output.TrendArrow(vals[len(vals)-1]-vals[0], true)
		}
		tbl.AddRow(append(row, trend)...)
	}
	fmt.Fprint(w, indent(tbl.Render()))
	return nil
}
