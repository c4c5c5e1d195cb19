// Package align pairs propositions from different tweets about the same
// event whose arguments match, yielding paraphrastic predicate pairs.
package align

import (
	"strings"

	"github.com/abelbrown/paraphrase/internal/fuzzy"
	"github.com/abelbrown/paraphrase/internal/lexical"
	"github.com/abelbrown/paraphrase/internal/logging"
	"github.com/abelbrown/paraphrase/internal/model"
)

// DefaultSentenceThreshold is the token-sort similarity at which two
// sentences are considered the same text.
const DefaultSentenceThreshold = 70

// Stats counts what happened to the candidate pairs of one batch.
type Stats struct {
	Candidates       int
	SameSource       int
	NearDuplicate    int
	Pronoun          int
	Unmatched        int
	ByCase           map[Case]int
	FreePredicate    int
	AlignedPredicate int
}

// Aligned returns the number of emitted pairs.
func (s Stats) Aligned() int {
	return s.FreePredicate + s.AlignedPredicate
}

// Pairer enumerates proposition pairs and keeps the aligned ones.
type Pairer struct {
	Judge             *lexical.Judge
	Pronouns          lexical.Pronouns
	SentenceThreshold int
	// English decides which sentences Prefilter keeps; nil means IsEnglish.
	English func(string) bool
}

// NewPairer returns a pairer with the default pronoun list and threshold.
func NewPairer(j *lexical.Judge) *Pairer {
	return &Pairer{
		Judge:             j,
		Pronouns:          lexical.DefaultPronouns(),
		SentenceThreshold: DefaultSentenceThreshold,
	}
}

// Pair visits every ordered pair of propositions with different sources
// and returns the aligned ones labelled with date. The output is not
// deduplicated; see Dedup.
func (p *Pairer) Pair(date string, props []model.Proposition) ([]model.AlignedPair, Stats) {
	stats := Stats{ByCase: make(map[Case]int)}
	var out []model.AlignedPair

	for i, left := range props {
		for j, right := range props {
			if i == j {
				continue
			}
			stats.Candidates++

			if left.SourceID == right.SourceID {
				stats.SameSource++
				continue
			}
			if p.nearDuplicate(left, right) {
				stats.NearDuplicate++
				continue
			}
			if p.Pronouns.Any(left.Arg0, left.Arg1, right.Arg0, right.Arg1) {
				stats.Pronoun++
				continue
			}

			c := Classify(p.flags(left, right))
			if c == NoCase {
				stats.Unmatched++
				continue
			}

			stats.ByCase[c]++
			if c.FreePredicate() {
				stats.FreePredicate++
			} else {
				stats.AlignedPredicate++
			}

			if c.Swapped() {
				right = right.Reversed()
			}
			out = append(out, model.AlignedPair{Date: date, Left: left, Right: right})
		}
	}

	logging.Debug("paired propositions", "date", date, "props", len(props),
		"free_pred", stats.FreePredicate, "aligned_pred", stats.AlignedPredicate)
	return out, stats
}

// nearDuplicate reports pairs that restate rather than paraphrase: the
// predicates contain one another and the arguments contain one another in
// either orientation, or the sentences are nearly the same text.
func (p *Pairer) nearDuplicate(left, right model.Proposition) bool {
	predicates := contains(left.Pred.String(), right.Pred.String())
	straight := contains(left.Arg0, right.Arg0) && contains(left.Arg1, right.Arg1)
	crossed := contains(left.Arg0, right.Arg1) && contains(left.Arg1, right.Arg0)
	if predicates && (straight || crossed) {
		return true
	}
	return fuzzy.TokenSortRatio(left.Sentence, right.Sentence) >= p.SentenceThreshold
}

// contains reports substring containment in either direction.
func contains(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func (p *Pairer) flags(left, right model.Proposition) Flags {
	j := p.Judge
	f := Flags{
		EqualA0A0: j.AreEqualArguments(left.Arg0, right.Arg0),
		EqualA1A1: j.AreEqualArguments(left.Arg1, right.Arg1),
		EqualA0A1: j.AreEqualArguments(left.Arg0, right.Arg1),
		EqualA1A0: j.AreEqualArguments(left.Arg1, right.Arg0),
		PredEqual: j.AreEqualPredicates(left.Pred.String(), right.Pred.String()),
	}
	if f.PredEqual {
		// No case fires; skip the WordNet lookups.
		return f
	}
	f.AlignedA0A0 = f.EqualA0A0 || j.AreAlignedArguments(left.Arg0, right.Arg0)
	f.AlignedA1A1 = f.EqualA1A1 || j.AreAlignedArguments(left.Arg1, right.Arg1)
	f.AlignedA0A1 = f.EqualA0A1 || j.AreAlignedArguments(left.Arg0, right.Arg1)
	f.AlignedA1A0 = f.EqualA1A0 || j.AreAlignedArguments(left.Arg1, right.Arg0)
	f.PredAligned = j.AreAlignedPredicates(left.Pred.String(), right.Pred.String())
	return f
}
