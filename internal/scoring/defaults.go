package scoring

// DefaultVersion labels the built-in question set.
const DefaultVersion = "v1"

// Question keys used by the survey form.
const (
	QuestionSatisfaction = "satisfaction"
	QuestionQuality      = "quality"
	QuestionValue        = "value"
	QuestionRecommend    = "recommend"
	QuestionImprovements = "improvements"
	QuestionUsage        = "usage"
)

// NothingToImprove is the improvements answer that carries no focus area.
const NothingToImprove = "Nothing - It's Perfect"

// DefaultQuestions returns a fresh copy of the built-in weighted questions.
func DefaultQuestions() []Question {
	return []Question{
		{
			Key:    QuestionSatisfaction,
			Weight: 30,
			Answers: map[string]float64{
				"Very Satisfied":    100,
				"Satisfied":         75,
				"Neutral":           50,
				"Dissatisfied":      25,
				"Very Dissatisfied": 0,
			},
		},
		{
			Key:    QuestionQuality,
			Weight: 25,
			Answers: map[string]float64{
				"Excellent":     100,
				"Good":          75,
				"Average":       50,
				"Below Average": 25,
				"Poor":          0,
			},
		},
		{
			Key:    QuestionValue,
			Weight: 20,
			Answers: map[string]float64{
				"Strongly Agree":    100,
				"Agree":             75,
				"Neutral":           50,
				"Disagree":          25,
				"Strongly Disagree": 0,
			},
		},
		{
			Key:    QuestionRecommend,
			Weight: 15,
			Answers: map[string]float64{
				"Definitely Yes": 100,
				"Probably Yes":   75,
				"Not Sure":       50,
				"Probably Not":   25,
				"Definitely Not": 0,
			},
		},
		{
			Key:    QuestionImprovements,
			Weight: 10,
			Answers: map[string]float64{
				NothingToImprove:             100,
				"Design & Appearance":        60,
				"Functionality & Features":   50,
				"Durability & Build Quality": 40,
				"Price & Value":              50,
				"Customer Support":           60,
			},
		},
	}
}

// DefaultScoreMap builds the built-in registry. Each call returns a new
// value.
func DefaultScoreMap() *ScoreMap {
	m, err := NewScoreMap(DefaultVersion, DefaultQuestions())
	if err != nil {
		panic("scoring: built-in questions are invalid: " + err.Error())
	}
	return m
}
