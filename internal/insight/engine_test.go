package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

func TestGenerate_AllPositiveInRuleOrder(t *testing.T) {
	g := NewGenerator()
	got := g.Generate(map[string]string{
		scoring.QuestionSatisfaction: "Very Satisfied",
		scoring.QuestionQuality:      "Good",
		scoring.QuestionValue:        "Agree",
		scoring.QuestionRecommend:    "Probably Yes",
		scoring.QuestionImprovements: "Design & Appearance",
		scoring.QuestionUsage:        "Daily",
	}, 81)

	assert.Equal(t, []string{
		MsgSatisfied,
		MsgQualityGood,
		MsgGoodValue,
		MsgWillRecommend,
		"→ Focus area: Design & Appearance",
		MsgHighEngagement,
		MsgExemplary,
	}, got)
}

func TestGenerate_AllNegative(t *testing.T) {
	g := NewGenerator()
	got := g.Generate(map[string]string{
		scoring.QuestionSatisfaction: "Very Dissatisfied",
		scoring.QuestionQuality:      "Poor",
		scoring.QuestionValue:        "Strongly Disagree",
		scoring.QuestionRecommend:    "Definitely Not",
		scoring.QuestionImprovements: scoring.NothingToImprove,
		scoring.QuestionUsage:        "Rarely",
	}, 10)

	assert.Equal(t, []string{
		MsgDissatisfied,
		MsgQualityPoor,
		MsgPoorValue,
		MsgWontRecommend,
		MsgLowEngagement,
		MsgCritical,
	}, got)
}

func TestGenerate_NoAnswers(t *testing.T) {
	g := NewGenerator()
	got := g.Generate(nil, 50)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerate_MiddleAnswersEmitNothing(t *testing.T) {
	g := NewGenerator()
	got := g.Generate(map[string]string{
		scoring.QuestionSatisfaction: "Neutral",
		scoring.QuestionQuality:      "Average",
		scoring.QuestionRecommend:    "Not Sure",
		scoring.QuestionUsage:        "Monthly",
	}, 50)
	assert.Empty(t, got)
}

func TestGenerate_CustomRules(t *testing.T) {
	g := NewGeneratorWithRules(
		func(Input) string { return "first" },
		func(Input) string { return "" },
		func(in Input) string {
			if in.Percentage > 90 {
				return "high"
			}
			return ""
		},
	)
	assert.Equal(t, []string{"first", "high"}, g.Generate(nil, 95))
	assert.Equal(t, []string{"first"}, g.Generate(nil, 10))
}
