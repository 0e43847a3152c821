// Package config provides configuration loading and defaults for sentimeter.
package config

import (
	"sort"

	"github.com/blackwell-systems/sentimeter/internal/scoring"
)

// DefaultConfigDir is the default location for sentimeter configuration.
const DefaultConfigDir = "~/.config/sentimeter"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "sentimeter.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. SENTIMETER_LOG_LEVEL.
const EnvPrefix = "SENTIMETER"

// DefaultLog holds the default logger settings.
var DefaultLog = Log{
	Level:  "info",
	Format: "console",
	Output: "stderr",
}

// DefaultAnalytics holds the default aggregation settings.
var DefaultAnalytics = Analytics{
	Workers: 4,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultScoring returns the built-in score map in config form.
func DefaultScoring() Scoring {
	qs := scoring.DefaultQuestions()
	s := Scoring{Version: scoring.DefaultVersion, Questions: make([]QuestionConfig, 0, len(qs))}
	for _, q := range qs {
		qc := QuestionConfig{Key: q.Key, Weight: q.Weight}
		for answer, score := range q.Answers {
			qc.Answers = append(qc.Answers, AnswerConfig{Answer: answer, Score: score})
		}
		sort.Slice(qc.Answers, func(i, j int) bool {
			if qc.Answers[i].Score != qc.Answers[j].Score {
				return qc.Answers[i].Score > qc.Answers[j].Score
			}
			return qc.Answers[i].Answer < qc.Answers[j].Answer
		})
		s.Questions = append(s.Questions, qc)
	}
	return s
}

// defaultQuestionsSetting renders DefaultScoring in the generic shape a
// YAML file would decode to, so viper merges both the same way.
func defaultQuestionsSetting() []map[string]any {
	d := DefaultScoring()
	out := make([]map[string]any, 0, len(d.Questions))
	for _, q := range d.Questions {
		answers := make([]map[string]any, 0, len(q.Answers))
		for _, a := range q.Answers {
			answers = append(answers, map[string]any{"answer": a.Answer, "score": a.Score})
		}
		out = append(out, map[string]any{"key": q.Key, "weight": q.Weight, "answers": answers})
	}
	return out
}
