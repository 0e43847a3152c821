package scoring

// NPSBucket is the net promoter category of a recommend answer.
type NPSBucket string

const (
	Promoter  NPSBucket = "Promoter"
	Passive   NPSBucket = "Passive"
	Detractor NPSBucket = "Detractor"
)

var (
	promoterAnswers  = map[string]bool{"Definitely Yes": true, "Probably Yes": true}
	detractorAnswers = map[string]bool{"Definitely Not": true, "Probably Not": true}
)

// ClassifyNPS buckets a recommend answer. An empty answer has no bucket.
func ClassifyNPS(recommend string) NPSBucket {
	switch {
	case recommend == "":
		return ""
	case promoterAnswers[recommend]:
		return Promoter
	case detractorAnswers[recommend]:
		return Detractor
	default:
		return Passive
	}
}
