// Package scoring implements the weighted feedback scorer and its
// configuration registry.
package scoring

import (
	"errors"
	"fmt"
)

// NeutralScore is returned for answers that are present but not mapped, and
// is the percentage reported when no question could be scored.
const NeutralScore = 50.0

// ErrInvalidScoreMap is returned when a ScoreMap definition breaks the
// weight or score range rules.
var ErrInvalidScoreMap = errors.New("invalid score map")

// Question defines one weighted survey question.
type Question struct {
	Key     string
	Weight  float64
	Answers map[string]float64
}

// ScoreMap is an immutable question registry. Use NewScoreMap to build one;
// the zero value scores nothing.
type ScoreMap struct {
	version   string
	questions []Question
	index     map[string]int
}

// NewScoreMap validates and copies the given questions. Question order is
// preserved and determines the order of accumulation.
func NewScoreMap(version string, questions []Question) (*ScoreMap, error) {
	m := &ScoreMap{
		version:   version,
		questions: make([]Question, 0, len(questions)),
		index:     make(map[string]int, len(questions)),
	}
	for _, q := range questions {
		if q.Key == "" {
			return nil, fmt.Errorf("%w: question with empty key", ErrInvalidScoreMap)
		}
		if _, dup := m.index[q.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate question %q", ErrInvalidScoreMap, q.Key)
		}
		if q.Weight <= 0 {
			return nil, fmt.Errorf("%w: question %q has weight %v", ErrInvalidScoreMap, q.Key, q.Weight)
		}
		answers := make(map[string]float64, len(q.Answers))
		for answer, score := range q.Answers {
			if score < 0 || score > 100 {
				return nil, fmt.Errorf("%w: %s/%q scores %v, outside [0,100]", ErrInvalidScoreMap, q.Key, answer, score)
			}
			answers[answer] = score
		}
		m.index[q.Key] = len(m.questions)
		m.questions = append(m.questions, Question{Key: q.Key, Weight: q.Weight, Answers: answers})
	}
	return m, nil
}

// Version returns the label the map was built with.
func (m *ScoreMap) Version() string {
	return m.version
}

// Questions returns the question keys in scoring order.
func (m *ScoreMap) Questions() []string {
	keys := make([]string, len(m.questions))
	for i, q := range m.questions {
		keys[i] = q.Key
	}
	return keys
}

// Weight returns the weight of a question.
func (m *ScoreMap) Weight(question string) (float64, bool) {
	i, ok := m.index[question]
	if !ok {
		return 0, false
	}
	return m.questions[i].Weight, true
}

// Lookup returns the score for an answer. ok is false only when the question
// is unknown; an unmapped answer scores NeutralScore.
func (m *ScoreMap) Lookup(question, answer string) (float64, bool) {
	i, ok := m.index[question]
	if !ok {
		return 0, false
	}
	score, mapped := m.questions[i].Answers[answer]
	if !mapped {
		return NeutralScore, true
	}
	return score, true
}

// Answers returns a copy of the answer table of a question.
func (m *ScoreMap) Answers(question string) map[string]float64 {
	i, ok := m.index[question]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(m.questions[i].Answers))
	for k, v := range m.questions[i].Answers {
		out[k] = v
	}
	return out
}
