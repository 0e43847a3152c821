package app

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/output"
)

var (
	feedbackProduct int64
	feedbackLimit   int
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "List, show, or remove stored feedback",
}

var feedbackListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored feedback, newest last",
	Args:    cobra.NoArgs,
	RunE:    runFeedbackList,
}

var feedbackShowCmd = &cobra.Command{
	Use:   "show <feedback-id>",
	Short: "Show one stored feedback record",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedbackShow,
}

var feedbackRmCmd = &cobra.Command{
	Use:   "rm <feedback-id>",
	Short: "Remove one stored feedback record",
	Args:  cobra.ExactArgs(1),
	RunE:  runFeedbackRm,
}

func init() {
	feedbackListCmd.Flags().Int64Var(&feedbackProduct, "product", 0, "Only feedback for this product ID")
	feedbackListCmd.Flags().IntVar(&feedbackLimit, "limit", 0, "Show only the N most recent records")
	feedbackCmd.AddCommand(feedbackListCmd, feedbackShowCmd, feedbackRmCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	var records []feedback.Record
	if feedbackProduct > 0 {
		if _, err := e.db.GetProduct(feedbackProduct); err != nil {
			return err
		}
		records, err = e.db.ListFeedback(feedbackProduct)
	} else {
		records, err = e.db.ListAllFeedback()
	}
	if err != nil {
		return fmt.Errorf("listing feedback: %w", err)
	}
	if feedbackLimit > 0 && len(records) > feedbackLimit {
		records = records[len(records)-feedbackLimit:]
	}

	if flagJSON {
		if records == nil {
			records = []feedback.Record{}
		}
		return writeJSON(cmd.OutOrStdout(), records)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), " No feedback stored.")
		return nil
	}

	tbl := output.NewTable("ID", "Product", "Schema", "Sentiment", "Score", "Received").AlignRight(4).Keep(0)
	for _, r := range records {
		sentiment, score := "invalid", "-"
		if c, err := analytics.Normalize(r.Result()); err == nil {
			sentiment = output.Classification(c.Classification)
			score = strconv.FormatFloat(c.Percentage, 'f', 0, 64)
		} else {
			e.log.Debug("record failed validation", zap.String("id", string(r.ID)), zap.Error(err))
		}
		received := humanize.Time(r.Timestamp)
		if r.UpdatedAt != nil {
			received += " (edited " + humanize.Time(*r.UpdatedAt) + ")"
		}
		tbl.AddRow(string(r.ID), strconv.FormatInt(r.ProductID, 10), string(r.Schema()), sentiment, score, received)
	}
	tbl.Print(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "\n %s\n", output.StyleMuted.Render(humanize.Comma(int64(len(records)))+" record(s)"))
	return nil
}

func runFeedbackShow(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.db.GetFeedback(feedback.ID(args[0]))
	if err != nil {
		return err
	}
	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), r)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, output.KeyValue("ID", string(r.ID)))
	fmt.Fprintln(w, output.KeyValue("Product", strconv.FormatInt(r.ProductID, 10)))
	fmt.Fprintln(w, output.KeyValue("Schema", string(r.Schema())))
	fmt.Fprintln(w, output.KeyValue("Received", humanize.Time(r.Timestamp)))
	for _, f := range feedback.Fields() {
		if v := r.Field(f); v != "" {
			fmt.Fprintln(w, output.KeyValue(f, v))
		}
	}
	fmt.Fprintln(w)
	renderResult(w, *r)
	return nil
}

func runFeedbackRm(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	id := feedback.ID(args[0])
	if err := e.db.DeleteFeedback(id); err != nil {
		return err
	}
	e.log.Info("feedback removed", zap.String("id", string(id)))
	fmt.Fprintf(cmd.OutOrStdout(), " Removed feedback %s\n", id)
	return nil
}
