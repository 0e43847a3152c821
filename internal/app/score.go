package app

import (
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
)

var scoreAnswers answerFlags

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score answers without storing them",
	Long: `Dry run of submit: score the given answers with the configured score map
(or the word lexicon with --legacy) and print the result. Nothing is written
to the database.`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	scoreAnswers.bind(scoreCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	// Any positive id satisfies the engine; it is never stored.
	sub := scoreAnswers.submission(1)
	r, err := e.engine.Submit(cmd.Context(), sub)
	if err != nil {
		return err
	}

	if flagJSON {
		if r.SentimentData != nil {
			return writeJSON(cmd.OutOrStdout(), r.SentimentData)
		}
		return writeJSON(cmd.OutOrStdout(), legacyView(r))
	}
	renderResult(cmd.OutOrStdout(), r)
	return nil
}

// legacyScore is the JSON shape of a dry-run legacy result.
type legacyScore struct {
	Sentiment      string  `json:"sentiment"`
	SentimentScore float64 `json:"sentimentScore"`
}

func legacyView(r feedback.Record) legacyScore {
	v := legacyScore{Sentiment: string(r.Sentiment)}
	if r.SentimentScore != nil {
		v.SentimentScore = *r.SentimentScore
	}
	return v
}
