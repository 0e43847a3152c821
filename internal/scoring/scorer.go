package scoring

import "math"

// InsightSource produces advisory messages for a scored answer set.
type InsightSource interface {
	Generate(answers map[string]string, percentage int) []string
}

// Scorer turns categorical answers into a ScoreResult. It holds no mutable
// state and is safe for concurrent use.
type Scorer struct {
	scoreMap *ScoreMap
	insights InsightSource
}

// NewScorer returns a scorer over the given registry. insights may be nil,
// in which case results carry an empty insight list.
func NewScorer(m *ScoreMap, insights InsightSource) *Scorer {
	if m == nil {
		m = &ScoreMap{}
	}
	return &Scorer{scoreMap: m, insights: insights}
}

// ScoreMap returns the registry the scorer was built with.
func (s *Scorer) ScoreMap() *ScoreMap {
	return s.scoreMap
}

// Score computes the weighted result for answers. Questions missing from
// answers are skipped and do not count toward MaxScore.
func (s *Scorer) Score(answers map[string]string) ScoreResult {
	result := ScoreResult{
		Breakdown:       make(map[string]BreakdownEntry),
		Insights:        []string{},
		ScoreMapVersion: s.scoreMap.version,
	}

	for _, q := range s.scoreMap.questions {
		answer := answers[q.Key]
		if answer == "" {
			continue
		}
		raw, _ := s.scoreMap.Lookup(q.Key, answer)
		weighted := raw * q.Weight / 100
		result.Breakdown[q.Key] = BreakdownEntry{
			Answer:        answer,
			RawScore:      raw,
			WeightedScore: weighted,
			Weight:        q.Weight,
		}
		result.TotalScore += weighted
		result.MaxScore += q.Weight
	}

	percentage := NeutralScore
	if result.MaxScore > 0 {
		percentage = result.TotalScore / result.MaxScore * 100
	}
	result.PercentageScore = int(math.Round(percentage))
	result.Score = SignedScore(result.PercentageScore)
	result.Classification, result.Category = Classify(float64(result.PercentageScore))
	result.NPS = ClassifyNPS(answers[QuestionRecommend])

	if s.insights != nil {
		if msgs := s.insights.Generate(answers, result.PercentageScore); msgs != nil {
			result.Insights = msgs
		}
	}
	return result
}
