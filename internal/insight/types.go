// Package insight provides the rule table that turns one scored feedback
// record into advisory messages.
package insight

// AnswerRule emits an affirmation when a question's answer is in Positive,
// a warning when it is in Negative, and nothing otherwise.
type AnswerRule struct {
	Question    string
	Positive    []string
	Negative    []string
	Affirmation string
	Warning     string
}

// Input is what every rule sees.
type Input struct {
	Answers    map[string]string
	Percentage int
}

// Rule examines the input and returns at most one message. An empty string
// means the rule has nothing to say.
type Rule func(in Input) string
