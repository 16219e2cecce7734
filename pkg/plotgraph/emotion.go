package plotgraph

import "strings"

// OCC emotions emitted by the storyworld agents, by valence.
var emotionPolarity = map[string]int{
	"joy":           1,
	"hope":          1,
	"pride":         1,
	"admiration":    1,
	"love":          1,
	"gratitude":     1,
	"gratification": 1,
	"relief":        1,
	"satisfaction":  1,
	"happy_for":     1,
	"gloating":      1,

	"distress":        -1,
	"fear":            -1,
	"shame":           -1,
	"reproach":        -1,
	"hate":            -1,
	"anger":           -1,
	"remorse":         -1,
	"disappointment":  -1,
	"fears_confirmed": -1,
	"resentment":      -1,
	"pity":            -1,
}

// EmotionPolarity returns 1 for positive, -1 for negative and 0 for unknown
// emotion names.
func EmotionPolarity(name string) int {
	return emotionPolarity[strings.ToLower(strings.TrimSpace(name))]
}
