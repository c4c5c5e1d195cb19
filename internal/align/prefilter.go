package align

import (
	"path/filepath"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/abelbrown/paraphrase/internal/model"
)

// MinArgumentLength is the shortest argument kept by Prefilter.
const MinArgumentLength = 2

// trivialPredicates carry no lexical content.
var trivialPredicates = map[string]bool{
	"{a0} {a1}":    true,
	"{a1} {a0}":    true,
	"{a0} be {a1}": true,
}

// PrefilterStats counts propositions dropped by Prefilter.
type PrefilterStats struct {
	NotEnglish    int
	ShortArgument int
	Trivial       int
}

// IsEnglish reports whether whatlanggo detects English.
func IsEnglish(s string) bool {
	return whatlanggo.Detect(s).Lang == whatlanggo.Eng
}

// Prefilter drops propositions from non-English sentences, those with an
// argument shorter than MinArgumentLength and those with a predicate that
// only joins its arguments. english defaults to IsEnglish when nil.
func Prefilter(props []model.Proposition, english func(string) bool) ([]model.Proposition, PrefilterStats) {
	if english == nil {
		english = IsEnglish
	}

	var stats PrefilterStats
	out := make([]model.Proposition, 0, len(props))
	for _, p := range props {
		switch {
		case len([]rune(p.Arg0)) < MinArgumentLength || len([]rune(p.Arg1)) < MinArgumentLength:
			stats.ShortArgument++
		case trivialPredicates[p.Pred.String()]:
			stats.Trivial++
		case !english(p.Sentence):
			stats.NotEnglish++
		default:
			out = append(out, p)
		}
	}
	return out, stats
}

// DateFromPath returns the date label of an input file: its base name up
// to the first dot, e.g. "props/2016_01_05.prop" -> "2016_01_05".
func DateFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}
