package lexical

// defaultWords is a product-review subset of the AFINN-165 word list.
var defaultWords = map[string]int{
	"amazing":       4,
	"awesome":       4,
	"beautiful":     3,
	"best":          3,
	"brilliant":     4,
	"comfortable":   2,
	"convenient":    2,
	"cool":          1,
	"delighted":     3,
	"durable":       2,
	"easy":          1,
	"effective":     2,
	"efficient":     2,
	"elegant":       2,
	"enjoy":         2,
	"enjoyed":       2,
	"excellent":     3,
	"exceptional":   5,
	"fantastic":     4,
	"fast":          1,
	"favorite":      2,
	"fine":          2,
	"fun":           4,
	"glad":          3,
	"good":          3,
	"great":         3,
	"happy":         3,
	"helpful":       2,
	"impressed":     3,
	"impressive":    3,
	"like":          2,
	"liked":         2,
	"love":          3,
	"loved":         3,
	"lovely":        3,
	"nice":          3,
	"outstanding":   5,
	"perfect":       3,
	"pleased":       3,
	"positive":      2,
	"recommend":     2,
	"recommended":   2,
	"reliable":      2,
	"satisfied":     2,
	"smooth":        1,
	"solid":         2,
	"sturdy":        2,
	"superb":        5,
	"thank":         2,
	"thanks":        2,
	"useful":        2,
	"valuable":      2,
	"well":          1,
	"win":           4,
	"wonderful":     4,
	"worth":         2,
	"annoying":      -2,
	"awful":         -3,
	"bad":           -3,
	"boring":        -3,
	"broke":         -1,
	"broken":        -1,
	"buggy":         -2,
	"cheap":         -1,
	"clunky":        -2,
	"complicated":   -2,
	"confusing":     -2,
	"crash":         -2,
	"crashes":       -2,
	"defective":     -2,
	"difficult":     -1,
	"disappointed":  -2,
	"disappointing": -2,
	"dislike":       -2,
	"dissatisfied":  -2,
	"expensive":     -2,
	"fail":          -2,
	"failed":        -2,
	"faulty":        -2,
	"flimsy":        -2,
	"frustrated":    -2,
	"frustrating":   -2,
	"hate":          -3,
	"hated":         -3,
	"horrible":      -3,
	"issue":         -1,
	"issues":        -1,
	"junk":          -3,
	"lack":          -2,
	"lacking":       -2,
	"mediocre":      -3,
	"poor":          -2,
	"problem":       -2,
	"problems":      -2,
	"refund":        -2,
	"slow":          -2,
	"terrible":      -3,
	"ugly":          -3,
	"unhappy":       -2,
	"unreliable":    -2,
	"useless":       -2,
	"waste":         -1,
	"worse":         -3,
	"worst":         -3,
	"wrong":         -2,
}
