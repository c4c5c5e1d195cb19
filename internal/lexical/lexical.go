// Package lexical decides whether two arguments or two predicates are equal
// or aligned, using fuzzy string similarity and WordNet synonym overlap.
package lexical

import (
	"strings"
	"sync"

	"github.com/bbalet/stopwords"

	"github.com/abelbrown/paraphrase/internal/assign"
	"github.com/abelbrown/paraphrase/internal/fuzzy"
	"github.com/abelbrown/paraphrase/internal/template"
	"github.com/abelbrown/paraphrase/internal/wordnet"
)

// Thresholds holds the tunable cut-offs of the judges.
type Thresholds struct {
	ArgumentEqual        int     `toml:"argument_equal"`
	ArgumentEqualNumeric int     `toml:"argument_equal_numeric"`
	PredicateEqual       int     `toml:"predicate_equal"`
	PartialMatch         int     `toml:"partial_match"`
	MeanAlignment        float64 `toml:"mean_alignment"`
}

// DefaultThresholds returns the cut-offs the corpus was built with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ArgumentEqual:        90,
		ArgumentEqualNumeric: 85,
		PredicateEqual:       90,
		PartialMatch:         100,
		MeanAlignment:        0.75,
	}
}

// copulas are inserted after {a0} when comparing predicates.
var copulas = []string{"be", "have"}

// Numerals are content words: "5 girls" and "9 kids" are different
// arguments.
func init() {
	stopwords.DontStripDigits()
}

// Judge answers equality and alignment questions. It is safe for concurrent
// use; synonym sets are memoized per word.
type Judge struct {
	Lex        wordnet.Lexicon
	Thresholds Thresholds

	mu    sync.RWMutex
	cache map[string]map[string]bool
}

// NewJudge creates a judge with the default thresholds.
func NewJudge(lex wordnet.Lexicon) *Judge {
	return &Judge{Lex: lex, Thresholds: DefaultThresholds()}
}

// AreEqualArguments reports near-identical argument strings. Numerals are
// spelled out before the second, looser comparison so that "2 girls" and
// "two girls" match.
func (j *Judge) AreEqualArguments(x, y string) bool {
	if fuzzy.Ratio(x, y) >= j.Thresholds.ArgumentEqual {
		return true
	}
	return fuzzy.Ratio(NumeralsToWords(x), NumeralsToWords(y)) >= j.Thresholds.ArgumentEqualNumeric
}

// AreEqualPredicates reports near-identical templates, including the case
// where one side drops a "be" or "have" right after {a0}.
func (j *Judge) AreEqualPredicates(p1, p2 string) bool {
	if fuzzy.Ratio(p1, p2) >= j.Thresholds.PredicateEqual {
		return true
	}
	t1, t2 := template.Template(p1), template.Template(p2)
	for _, word := range copulas {
		if string(t1.InsertAfterA0(word)) == p2 || string(t2.InsertAfterA0(word)) == p1 {
			return true
		}
	}
	return false
}

// AreAlignedPredicates reports whether the bare predicate words of p1 and p2
// share a WordNet synonym that is not a stop word.
func (j *Judge) AreAlignedPredicates(p1, p2 string) bool {
	w1 := template.Template(p1).Strip()
	w2 := template.Template(p2).Strip()
	if w1 == "" || w2 == "" {
		return false
	}
	return overlap(j.synonyms(w1), j.synonyms(w2)) > 0
}

// AreAlignedArguments reports whether x and y refer to the same thing:
// a word-bounded substring match, a shared synonym for single content words,
// or a mean word-alignment score above the threshold otherwise.
func (j *Judge) AreAlignedArguments(x, y string) bool {
	if fuzzy.PartialRatio(" "+x+" ", " "+y+" ") >= j.Thresholds.PartialMatch {
		return true
	}

	xw, yw := ContentWords(x), ContentWords(y)
	if len(xw) == 0 || len(yw) == 0 {
		return false
	}

	xs := make([]map[string]bool, len(xw))
	for i, w := range xw {
		xs[i] = j.synonyms(w)
	}
	ys := make([]map[string]bool, len(yw))
	for i, w := range yw {
		ys[i] = j.synonyms(w)
	}

	if len(xs) == 1 && len(ys) == 1 && overlap(xs[0], ys[0]) > 0 {
		return true
	}

	return assign.MeanOverlap(xs, ys) >= j.Thresholds.MeanAlignment
}

// synonyms returns the non-stop synonym set of a word or phrase.
func (j *Judge) synonyms(word string) map[string]bool {
	j.mu.RLock()
	set, ok := j.cache[word]
	j.mu.RUnlock()
	if ok {
		return set
	}

	set = make(map[string]bool)
	for _, s := range j.Lex.Synonyms(word) {
		if !IsStopWord(s) {
			set[s] = true
		}
	}

	j.mu.Lock()
	if j.cache == nil {
		j.cache = make(map[string]map[string]bool)
	}
	j.cache[word] = set
	j.mu.Unlock()
	return set
}

func overlap(a, b map[string]bool) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

// ContentWords splits s on whitespace and drops stop words.
func ContentWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if !IsStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// IsStopWord reports whether w consists only of English stop words.
// Multi-word synonyms such as "take in" count as stop words only when every
// word is one.
func IsStopWord(w string) bool {
	return strings.TrimSpace(stopwords.CleanString(w, "en", false)) == ""
}
