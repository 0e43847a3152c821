package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/lexical"
	"github.com/blackwell-systems/sentimeter/internal/output"
	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// answerFlags holds the answer flags shared by submit and score.
type answerFlags struct {
	legacy bool

	satisfaction string
	quality      string
	value        string
	recommend    string
	improvements string
	usage        string
	likes        string
	comments     string
}

func (a *answerFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&a.legacy, "legacy", false, "Free-text feedback scored with the word lexicon")
	f.StringVar(&a.satisfaction, "satisfaction", "", "Overall satisfaction answer")
	f.StringVar(&a.quality, "quality", "", "Quality answer")
	f.StringVar(&a.value, "value", "", "Value for money answer")
	f.StringVar(&a.recommend, "recommend", "", "Would recommend answer")
	f.StringVar(&a.improvements, "improvements", "", "Most needed improvement")
	f.StringVar(&a.usage, "usage", "", "Usage frequency answer")
	f.StringVar(&a.likes, "likes", "", "What the customer liked (legacy)")
	f.StringVar(&a.comments, "comments", "", "Additional comments (legacy)")
}

func (a *answerFlags) schema() feedback.Schema {
	if a.legacy {
		return feedback.SchemaLegacy
	}
	return feedback.SchemaWeighted
}

// weighted returns the non-empty categorical answers.
func (a *answerFlags) weighted() map[string]string {
	answers := make(map[string]string)
	for key, v := range map[string]string{
		scoring.QuestionSatisfaction: a.satisfaction,
		scoring.QuestionQuality:      a.quality,
		scoring.QuestionValue:        a.value,
		scoring.QuestionRecommend:    a.recommend,
		scoring.QuestionImprovements: a.improvements,
		scoring.QuestionUsage:        a.usage,
	} {
		if v != "" {
			answers[key] = v
		}
	}
	return answers
}

func (a *answerFlags) text() lexical.Answers {
	return lexical.Answers{
		Satisfaction:       a.satisfaction,
		Likes:              a.likes,
		Improvements:       a.improvements,
		AdditionalComments: a.comments,
	}
}

func (a *answerFlags) submission(productID int64) feedback.Submission {
	return feedback.Submission{
		ProductID: productID,
		Schema:    a.schema(),
		Answers:   a.weighted(),
		Legacy:    a.text(),
	}
}

// renderResult prints the scored result of one record.
func renderResult(w io.Writer, r feedback.Record) {
	if r.SentimentData == nil {
		score := 0.0
		if r.SentimentScore != nil {
			score = *r.SentimentScore
		}
		fmt.Fprintln(w, output.KeyValue("Sentiment", output.Classification(r.Sentiment)))
		fmt.Fprintln(w, output.KeyValue("Comparative", fmt.Sprintf("%.3f", score)))
		return
	}

	res := r.SentimentData
	fmt.Fprintln(w, output.KeyValue("Sentiment", fmt.Sprintf("%s (%s)", output.Classification(res.Classification), res.Category)))
	fmt.Fprintln(w, output.KeyValue("Score", output.ScoreBar(float64(res.PercentageScore), 0)))
	fmt.Fprintln(w, output.KeyValue("Signed score", fmt.Sprintf("%+.1f", res.Score)))
	if res.NPS != "" {
		fmt.Fprintln(w, output.KeyValue("NPS", string(res.NPS)))
	}

	if len(res.Breakdown) > 0 {
		fmt.Fprintln(w, output.Section("Breakdown"))
		tbl := output.NewTable("Question", "Answer", "Raw", "Weight", "Weighted")
		for _, q := range breakdownOrder(res.Breakdown) {
			b := res.Breakdown[q]
			tbl.AddRow(q, b.Answer,
				fmt.Sprintf("%.0f", b.RawScore),
				fmt.Sprintf("%.0f", b.Weight),
				fmt.Sprintf("%.0f", b.WeightedScore))
		}
		fmt.Fprint(w, indent(tbl.Render()))
	}

	if len(res.Insights) > 0 {
		fmt.Fprintln(w, output.Section("Insights"))
		for _, in := range res.Insights {
			fmt.Fprintf(w, " %s\n", in)
		}
	}
}

// breakdownOrder lists breakdown questions in default score map order,
// followed by any others.
func breakdownOrder(b map[string]scoring.BreakdownEntry) []string {
	var keys []string
	seen := make(map[string]bool, len(b))
	for _, q := range scoring.DefaultScoreMap().Questions() {
		if _, ok := b[q]; ok {
			keys = append(keys, q)
			seen[q] = true
		}
	}
	var extra []string
	for q := range b {
		if !seen[q] {
			extra = append(extra, q)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func indent(s string) string {
	lines := strings.SplitAfter(s, "\n")
	var sb strings.Builder
	for _, l := range lines {
		if l == "" {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(l)
	}
	return sb.String()
}
