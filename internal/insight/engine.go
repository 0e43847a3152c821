package insight

// Generator runs an ordered rule list. Messages come out in rule order.
type Generator struct {
	rules []Rule
}

// NewGenerator creates a generator with the built-in rules: the four
// answer rules, the focus area, usage, then the overall score.
func NewGenerator() *Generator {
	rules := make([]Rule, 0, len(DefaultAnswerRules)+3)
	for _, r := range DefaultAnswerRules {
		rules = append(rules, Answer(r))
	}
	rules = append(rules, FocusArea, Answer(UsageRule), Overall)
	return &Generator{rules: rules}
}

// NewGeneratorWithRules creates a generator over a custom rule list.
func NewGeneratorWithRules(rules ...Rule) *Generator {
	return &Generator{rules: rules}
}

// Generate evaluates every rule once.
func (g *Generator) Generate(answers map[string]string, percentage int) []string {
	in := Input{Answers: answers, Percentage: percentage}
	messages := []string{}
	for _, rule := range g.rules {
		if msg := rule(in); msg != "" {
			messages = append(messages, msg)
		}
	}
	return messages
}
