package insight

import (
	"fmt"
	"slices"

	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// Message text for the built-in rules.
const (
	MsgSatisfied         = "✓ Customer is satisfied with the product"
	MsgDissatisfied      = "⚠ Customer satisfaction needs immediate attention"
	MsgQualityGood       = "✓ Product quality meets expectations"
	MsgQualityPoor       = "⚠ Quality improvement required"
	MsgGoodValue         = "✓ Good value proposition"
	MsgPoorValue         = "⚠ Pricing strategy needs review"
	MsgWillRecommend     = "✓ High likelihood of word-of-mouth promotion"
	MsgWontRecommend     = "⚠ Low recommendation score - critical issue"
	MsgHighEngagement    = "✓ High engagement and product utility"
	MsgLowEngagement     = "⚠ Low usage frequency indicates potential issues"
	MsgExemplary         = "🌟 Excellent feedback - maintain current standards"
	MsgCritical          = "🚨 Critical feedback - immediate action required"
	focusAreaMessageForm = "→ Focus area: %s"
)

// Overall score bounds for the final rule.
const (
	ExemplaryAt   = 80
	CriticalBelow = 40
)

// DefaultAnswerRules are the per-question rules in evaluation order.
var DefaultAnswerRules = []AnswerRule{
	{
		Question:    scoring.QuestionSatisfaction,
		Positive:    []string{"Very Satisfied", "Satisfied"},
		Negative:    []string{"Dissatisfied", "Very Dissatisfied"},
		Affirmation: MsgSatisfied,
		Warning:     MsgDissatisfied,
	},
	{
		Question:    scoring.QuestionQuality,
		Positive:    []string{"Excellent", "Good"},
		Negative:    []string{"Below Average", "Poor"},
		Affirmation: MsgQualityGood,
		Warning:     MsgQualityPoor,
	},
	{
		Question:    scoring.QuestionValue,
		Positive:    []string{"Strongly Agree", "Agree"},
		Negative:    []string{"Strongly Disagree", "Disagree"},
		Affirmation: MsgGoodValue,
		Warning:     MsgPoorValue,
	},
	{
		Question:    scoring.QuestionRecommend,
		Positive:    []string{"Definitely Yes", "Probably Yes"},
		Negative:    []string{"Probably Not", "Definitely Not"},
		Affirmation: MsgWillRecommend,
		Warning:     MsgWontRecommend,
	},
}

// UsageRule covers the unweighted usage frequency question.
var UsageRule = AnswerRule{
	Question:    scoring.QuestionUsage,
	Positive:    []string{"Daily", "Several times a week"},
	Negative:    []string{"Rarely"},
	Affirmation: MsgHighEngagement,
	Warning:     MsgLowEngagement,
}

// Answer compiles an AnswerRule into a Rule.
func Answer(r AnswerRule) Rule {
	return func(in Input) string {
		answer := in.Answers[r.Question]
		switch {
		case answer == "":
			return ""
		case slices.Contains(r.Positive, answer):
			return r.Affirmation
		case slices.Contains(r.Negative, answer):
			return r.Warning
		}
		return ""
	}
}

// FocusArea names the improvement category the customer picked, unless
// they said there is nothing to improve.
func FocusArea(in Input) string {
	improvement := in.Answers[scoring.QuestionImprovements]
	if improvement == "" || improvement == scoring.NothingToImprove {
		return ""
	}
	return fmt.Sprintf(focusAreaMessageForm, improvement)
}

// Overall comments on the final percentage.
func Overall(in Input) string {
	switch {
	case in.Percentage >= ExemplaryAt:
		return MsgExemplary
	case in.Percentage < CriticalBelow:
		return MsgCritical
	}
	return ""
}
