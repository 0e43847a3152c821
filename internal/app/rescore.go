package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/output"
)

var (
	rescoreProduct int64
	rescoreDryRun  bool
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute stored results with the current score map",
	Long: `Rescore every stored record (or one product's records) under its own
schema with the configured score map and lexicon. Records whose result
changes are written back. A record that fails to score is reported and
skipped; the rest are still processed.`,
	Args: cobra.NoArgs,
	RunE: runRescore,
}

func init() {
	rescoreCmd.Flags().Int64Var(&rescoreProduct, "product", 0, "Only rescore this product ID")
	rescoreCmd.Flags().BoolVar(&rescoreDryRun, "dry-run", false, "Report changes without writing them")
	rootCmd.AddCommand(rescoreCmd)
}

// rescoreFailure is one record that could not be rescored.
type rescoreFailure struct {
	ID    feedback.ID `json:"id"`
	Error string      `json:"error"`
}

// rescoreSummary is the JSON output of the rescore command.
type rescoreSummary struct {
	Total     int              `json:"total"`
	Changed   []feedback.ID    `json:"changed"`
	Unchanged int              `json:"unchanged"`
	Failed    []rescoreFailure `json:"failed"`
	DryRun    bool             `json:"dryRun"`
}

func runRescore(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	var records []feedback.Record
	if rescoreProduct > 0 {
		records, err = e.db.ListFeedback(rescoreProduct)
	} else {
		records, err = e.db.ListAllFeedback()
	}
	if err != nil {
		return fmt.Errorf("listing feedback: %w", err)
	}

	rescored, failures, err := rescoreRecords(cmd.Context(), records, e.cfg.Analytics.Workers, e.engine.Rescore)
	if err != nil {
		return err
	}
	for _, f := range failures {
		e.log.Warn("rescore failed", zap.String("id", string(f.ID)), zap.String("error", f.Error))
	}

	summary := rescoreSummary{
		Total:   len(records),
		Changed: []feedback.ID{},
		Failed:  failures,
		DryRun:  rescoreDryRun,
	}
	for _, r := range rescored {
		if r == nil {
			continue
		}
		summary.Changed = append(summary.Changed, r.ID)
		if rescoreDryRun {
			continue
		}
		if err := e.db.ReplaceFeedback(r); err != nil {
			return fmt.Errorf("storing feedback %s: %w", r.ID, err)
		}
	}
	summary.Unchanged = summary.Total - len(summary.Changed) - len(summary.Failed)
	e.log.Info("rescore finished",
		zap.Int("total", summary.Total),
		zap.Int("changed", len(summary.Changed)),
		zap.Int("failed", len(summary.Failed)),
		zap.String("score_map", e.scoreMap.Version()),
	)

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), summary)
	}

	w := cmd.OutOrStdout()
	verb := "Rescored"
	if rescoreDryRun {
		verb = "Would rescore"
	}
	fmt.Fprintf(w, " %s %d of %d record(s) with score map %s\n", verb, len(summary.Changed), summary.Total, e.scoreMap.Version())
	fmt.Fprintln(w, output.KeyValue("Unchanged", fmt.Sprint(summary.Unchanged)))
	if len(summary.Failed) > 0 {
		fmt.Fprintln(w, output.KeyValue("Failed", output.StyleError.Render(fmt.Sprint(len(summary.Failed)))))
		for _, f := range summary.Failed {
			fmt.Fprintf(w, "   %s: %s\n", f.ID, f.Error)
		}
	}
	return nil
}

// rescoreRecords scores records concurrently with at most workers in
// flight. Changed records come back in input order, nil where the result
// did not change; failures are listed in input order too.
func rescoreRecords(ctx context.Context, records []feedback.Record, workers int,
	rescore func(context.Context, feedback.Record) (feedback.Record, error),
) ([]*feedback.Record, []rescoreFailure, error) {
	rescored := make([]*feedback.Record, len(records))
	failed := make([]*rescoreFailure, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, r := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			updated, err := rescore(ctx, r)
			if err != nil {
				failed[i] = &rescoreFailure{ID: r.ID, Error: err.Error()}
				return nil
			}
			if !sameResult(r, updated) {
				rescored[i] = &updated
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	failures := []rescoreFailure{}
	for _, f := range failed {
		if f != nil {
			failures = append(failures, *f)
		}
	}
	return rescored, failures, nil
}

// sameResult reports whether two versions of a record serialize the same.
func sameResult(a, b feedback.Record) bool {
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}
